package services

import (
	"math"
	"sort"

	"github.com/paccolajoao/yazio-consumer/models"
)

// Report rows are derived from canonical day logs on every call; nothing here
// stores aggregates. All exported values are rounded to one decimal place.

type LogRow struct {
	Date        string  `json:"date"`
	Meal        string  `json:"meal"`
	ProductName string  `json:"product_name"`
	AmountG     float64 `json:"amount_g"`
	Calories    float64 `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	FatG        float64 `json:"fat_g"`
	CarbsG      float64 `json:"carbs_g"`
}

type MealSummaryRow struct {
	Date     string  `json:"date"`
	Meal     string  `json:"meal"`
	Calories float64 `json:"calories"`
}

type DailySummaryRow struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbsG   float64 `json:"carbs_g"`
}

// BuildNutritionLog flattens every consumed item into one row with its
// absolute nutrient contribution.
func BuildNutritionLog(days []models.DayLog) []LogRow {
	var rows []LogRow
	for _, day := range days {
		dateStr := day.Date.Format("2006-01-02")
		for _, item := range day.Items {
			contrib := item.Contribution()
			rows = append(rows, LogRow{
				Date:        dateStr,
				Meal:        item.MealSlot,
				ProductName: item.Product.Name,
				AmountG:     round1(item.AmountGrams),
				Calories:    round1(contrib.Calories),
				ProteinG:    round1(contrib.Protein),
				FatG:        round1(contrib.Fat),
				CarbsG:      round1(contrib.Carbs),
			})
		}
	}
	return rows
}

// BuildMealSummary groups calorie contributions by (date, meal), sorted by
// date then meal category, both lexicographically.
func BuildMealSummary(days []models.DayLog) []MealSummaryRow {
	type key struct{ date, meal string }
	totals := make(map[key]float64)
	for _, day := range days {
		dateStr := day.Date.Format("2006-01-02")
		for _, item := range day.Items {
			k := key{dateStr, item.MealSlot}
			totals[k] += item.Contribution().Calories
		}
	}

	rows := make([]MealSummaryRow, 0, len(totals))
	for k, cal := range totals {
		rows = append(rows, MealSummaryRow{Date: k.date, Meal: k.meal, Calories: round1(cal)})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].Meal < rows[j].Meal
	})
	return rows
}

// BuildDailySummary emits one totals row per day, in the input order (the
// coordinator already sorted by date).
func BuildDailySummary(days []models.DayLog) []DailySummaryRow {
	rows := make([]DailySummaryRow, 0, len(days))
	for _, day := range days {
		total := day.TotalNutrients()
		rows = append(rows, DailySummaryRow{
			Date:     day.Date.Format("2006-01-02"),
			Calories: round1(total.Calories),
			ProteinG: round1(total.Protein),
			FatG:     round1(total.Fat),
			CarbsG:   round1(total.Carbs),
		})
	}
	return rows
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
