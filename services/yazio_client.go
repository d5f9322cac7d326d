package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/paccolajoao/yazio-consumer/models"
)

const defaultBaseURL = "https://yzapi.yazio.com"

// OAuth client pair of the published desktop exporter; overridable via env.
const (
	defaultClientID     = "1_4hiybetvfksgw40o0sog4s884kwc840wwso8go4k8c04goo4c"
	defaultClientSecret = "6rok2m65xuskgkgogw40wkkk8sw0osg84s8cggsc4woos4s8o"
)

type YazioClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	client       *http.Client
}

// NewYazioClient initializes the client with credentials and HTTP client.
func NewYazioClient() *YazioClient {
	baseURL := os.Getenv("YAZIO_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	clientID := os.Getenv("YAZIO_CLIENT_ID")
	if clientID == "" {
		clientID = defaultClientID
	}
	clientSecret := os.Getenv("YAZIO_CLIENT_SECRET")
	if clientSecret == "" {
		clientSecret = defaultClientSecret
	}
	return &YazioClient{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       &http.Client{Timeout: 20 * time.Second},
	}
}

// fetchStatus is the explicit per-resource outcome. "no data" (404) and
// transport/HTTP failures both drop the resource, but stay distinguishable
// so the coordinator can tell sparse data from a broken credential.
type fetchStatus int

const (
	fetchOK fetchStatus = iota
	fetchNoData
	fetchFailed
	fetchUnauthorized
)

type dayResult struct {
	Date       time.Time
	Status     fetchStatus
	Items      []map[string]any
	ProductIDs []string
}

type productResult struct {
	ID      string
	Status  fetchStatus
	Product models.Product
}

// LoginPassword performs the v9 OAuth password grant and returns the raw
// token payload.
func (s *YazioClient) LoginPassword(ctx context.Context, email, password string) (map[string]any, error) {
	payload := map[string]any{
		"grant_type":    "password",
		"client_id":     s.clientID,
		"client_secret": s.clientSecret,
		"username":      email,
		"password":      password,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v9/oauth/token", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create login request: %w", err)
	}
	setCommonHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Yazio token endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yazio token endpoint error %d: %s", resp.StatusCode, string(body))
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse token JSON: %w", err)
	}
	return data, nil
}

// FetchDay retrieves the raw consumed-item list for one calendar date.
// Failures never propagate as errors; they are logged and encoded in the
// result status so one bad date cannot abort a range fetch.
func (s *YazioClient) FetchDay(ctx context.Context, token models.AuthToken, date time.Time) dayResult {
	dateStr := date.Format("2006-01-02")
	result := dayResult{Date: date, Status: fetchFailed}

	u := fmt.Sprintf("%s/v9/user/consumed-items?date=%s", s.baseURL, url.QueryEscape(dateStr))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		log.Printf("failed to create day request for %s: %v", dateStr, err)
		return result
	}
	setCommonHeaders(req)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("error fetching %s: %v", dateStr, err)
		return result
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decoding
	case http.StatusNotFound:
		result.Status = fetchNoData
		return result
	case http.StatusUnauthorized:
		result.Status = fetchUnauthorized
		return result
	default:
		log.Printf("failed to fetch day %s: status %d", dateStr, resp.StatusCode)
		return result
	}

	var data any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Printf("failed to parse day %s response: %v", dateStr, err)
		return result
	}

	result.Status = fetchOK
	result.Items = decodeDayItems(data)
	for _, item := range result.Items {
		if pid := extractProductID(item); pid != "" {
			result.ProductIDs = append(result.ProductIDs, pid)
		}
	}
	return result
}

// FetchProduct retrieves canonical detail for one product id. Same failure
// policy as FetchDay: a missing product only degrades that id.
func (s *YazioClient) FetchProduct(ctx context.Context, token models.AuthToken, id string) productResult {
	result := productResult{ID: id, Status: fetchFailed}

	u := fmt.Sprintf("%s/v9/products/%s", s.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		log.Printf("failed to create product request for %s: %v", id, err)
		return result
	}
	setCommonHeaders(req)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("error fetching product %s: %v", id, err)
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		result.Status = fetchUnauthorized
		return result
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("failed to fetch product %s: status %d", id, resp.StatusCode)
		return result
	}

	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Printf("failed to parse product %s response: %v", id, err)
		return result
	}

	result.Status = fetchOK
	result.Product = models.Product{
		ID:        stringField(data, "id", id),
		Name:      stringField(data, "name", models.UnknownProductName),
		Nutrients: ExtractNutrients(data["nutrients"], data),
	}
	return result
}

// decodeDayItems normalizes the historical day payload shapes: a bare item
// array, an object with "products" and "simple_products" arrays (their
// union), or anything else (empty).
func decodeDayItems(data any) []map[string]any {
	switch t := data.(type) {
	case []any:
		return itemMaps(t)
	case map[string]any:
		items := itemMaps(asSlice(t["products"]))
		return append(items, itemMaps(asSlice(t["simple_products"]))...)
	default:
		return []map[string]any{}
	}
}

// extractProductID reads the item-level product_id field, falling back to a
// nested product object's id.
func extractProductID(item map[string]any) string {
	if pid, ok := item["product_id"].(string); ok && pid != "" {
		return pid
	}
	if product, ok := item["product"].(map[string]any); ok {
		if pid, ok := product["id"].(string); ok {
			return pid
		}
	}
	return ""
}

func itemMaps(raw []any) []map[string]any {
	items := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if m, ok := entry.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func stringField(data map[string]any, key, fallback string) string {
	if s, ok := data[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func setCommonHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Yazio/Android")
}
