package services

import (
	"strings"

	"github.com/paccolajoao/yazio-consumer/models"
)

var slotNames = map[string]string{
	"breakfast": models.MealBreakfast,
	"lunch":     models.MealLunch,
	"dinner":    models.MealDinner,
	"snack":     models.MealSnack,
	"snacks":    models.MealSnack,
}

var slotNumbers = map[int]string{
	0: models.MealBreakfast,
	1: models.MealLunch,
	2: models.MealDinner,
	3: models.MealSnack,
}

// ResolveMealSlot maps a raw slot token to one of the four canonical meal
// categories. The upstream encoding is not stable (strings in any casing,
// small integers, sometimes missing), so anything unrecognized lands in the
// snack bucket rather than erroring.
func ResolveMealSlot(raw any) string {
	switch t := raw.(type) {
	case string:
		if slot, ok := slotNames[strings.ToLower(t)]; ok {
			return slot
		}
	case float64: // JSON numbers decode as float64
		if slot, ok := slotNumbers[int(t)]; ok && t == float64(int(t)) {
			return slot
		}
	case int:
		if slot, ok := slotNumbers[t]; ok {
			return slot
		}
	}
	return models.MealSnack
}
