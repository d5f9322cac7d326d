package models

import "time"

// Canonical meal categories. Every raw slot encoding collapses into one of
// these four; MealSnack is the catch-all.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// One consumed entry of a day, already resolved to a full product.
type ConsumedItem struct {
	Product     Product `json:"product"`
	AmountGrams float64 `json:"amount_grams"`
	MealSlot    string  `json:"meal_slot"`
}

// Contribution is the absolute nutrient intake of this entry.
func (i ConsumedItem) Contribution() Nutrients {
	return i.Product.Nutrients.Scale(i.AmountGrams)
}

// DayLog is one calendar date's consumption, normalized and independent of
// the upstream payload shape. Item order follows the upstream response.
type DayLog struct {
	Date  time.Time      `json:"date"`
	Items []ConsumedItem `json:"items"`
}

// TotalNutrients sums the contributions of every item of the day.
func (d DayLog) TotalNutrients() Nutrients {
	var total Nutrients
	for _, item := range d.Items {
		total = total.Add(item.Contribution())
	}
	return total
}
