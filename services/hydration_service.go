package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/paccolajoao/yazio-consumer/models"
)

// In-flight request cap shared by both fetch phases.
const maxConcurrentFetches = 10

var (
	ErrInvalidRange = errors.New("start date must be on or before end date")
	ErrAuthFailed   = errors.New("yazio rejected the credential on every request")
)

// HydrationService orchestrates the full acquisition pipeline: parallel day
// fetch over a date range, deduplicated parallel product fetch, and per-item
// resolution into canonical day logs.
type HydrationService struct {
	client *YazioClient

	// OnProgress, when set, receives phase progress (stage, done, total).
	OnProgress func(stage string, done, total int)
}

func NewHydrationService(client *YazioClient) *HydrationService {
	return &HydrationService{client: client}
}

// GetDaysData fetches and hydrates the closed range [start, end]. Individual
// date or product failures are absorbed; the result only shrinks. The two
// errors it can return are an invalid range (checked before any network
// activity) and a credential rejected uniformly across a whole phase.
func (s *HydrationService) GetDaysData(ctx context.Context, token models.AuthToken, start, end time.Time) ([]models.DayLog, error) {
	start = dayStart(start)
	end = dayStart(end)
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}

	days, err := s.fetchDays(ctx, token, dates)
	if err != nil {
		return nil, err
	}

	productIDs := collectProductIDs(days)
	log.Printf("fetching details for %d unique products", len(productIDs))

	products, err := s.fetchProducts(ctx, token, productIDs)
	if err != nil {
		return nil, err
	}

	logs := make([]models.DayLog, 0, len(days))
	for _, day := range days {
		items := make([]models.ConsumedItem, 0, len(day.Items))
		for _, raw := range day.Items {
			items = append(items, resolveItem(raw, products))
		}
		logs = append(logs, models.DayLog{Date: day.Date, Items: items})
	}

	sort.Slice(logs, func(i, j int) bool { return logs[i].Date.Before(logs[j].Date) })
	return logs, nil
}

// fetchDays runs phase one. Results are merged under a mutex; completion
// order is irrelevant since the caller re-sorts by date.
func (s *HydrationService) fetchDays(ctx context.Context, token models.AuthToken, dates []time.Time) ([]dayResult, error) {
	var (
		mu           sync.Mutex
		days         []dayResult
		unauthorized int
		done         int
	)

	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentFetches)
	for _, date := range dates {
		date := date
		g.Go(func() error {
			result := s.client.FetchDay(ctx, token, date)

			mu.Lock()
			done++
			s.reportProgress("days", done, len(dates))
			switch result.Status {
			case fetchOK:
				days = append(days, result)
			case fetchUnauthorized:
				unauthorized++
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures live in the results

	if len(dates) > 0 && unauthorized == len(dates) {
		return nil, ErrAuthFailed
	}
	return days, nil
}

// fetchProducts runs phase two over the deduplicated id set.
func (s *HydrationService) fetchProducts(ctx context.Context, token models.AuthToken, ids []string) (map[string]models.Product, error) {
	var (
		mu           sync.Mutex
		products     = make(map[string]models.Product, len(ids))
		unauthorized int
		done         int
	)

	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentFetches)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			result := s.client.FetchProduct(ctx, token, id)

			mu.Lock()
			done++
			s.reportProgress("products", done, len(ids))
			switch result.Status {
			case fetchOK:
				products[result.Product.ID] = result.Product
			case fetchUnauthorized:
				unauthorized++
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if len(ids) > 0 && unauthorized == len(ids) {
		return nil, ErrAuthFailed
	}
	return products, nil
}

func collectProductIDs(days []dayResult) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, day := range days {
		for _, id := range day.ProductIDs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// resolveItem combines fetched product detail with item-embedded fallback
// data. An id missing from the map degrades to whatever the item itself
// carries; incomplete data beats no data.
func resolveItem(item map[string]any, products map[string]models.Product) models.ConsumedItem {
	pid := extractProductID(item)

	product, ok := products[pid]
	if !ok {
		embedded, _ := item["product"].(map[string]any)
		name := stringField(embedded, "name", stringField(item, "name", models.UnknownProductName))

		nutrients := item["nutrients"]
		if nutrients == nil && embedded != nil {
			nutrients = embedded["nutrients"]
		}

		id := pid
		if id == "" {
			id = models.UnknownProductID
		}
		product = models.Product{
			ID:        id,
			Name:      name,
			Nutrients: ExtractNutrients(nutrients, nil),
		}
	}

	amount, ok := toFloat(item["amount"])
	if !ok {
		amount, _ = toFloat(item["serving_amount"])
	}

	slot := item["daytime_slot"]
	if slot == nil {
		slot = item["slot"]
	}
	if slot == nil {
		slot = item["daytime"]
	}

	return models.ConsumedItem{
		Product:     product,
		AmountGrams: amount,
		MealSlot:    ResolveMealSlot(slot),
	}
}

func (s *HydrationService) reportProgress(stage string, done, total int) {
	if s.OnProgress != nil {
		s.OnProgress(stage, done, total)
	}
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
