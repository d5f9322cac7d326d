package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/paccolajoao/yazio-consumer/models"
)

// The v9 API has shipped at least two nutrient payload shapes over the years:
// flat keys ("energy": 0.52), nested groups addressed with dotted paths
// ("nutrient.protein"), and {"value": n} wrappers. Each canonical field tries
// its candidates in order and keeps the first one that yields a number.
var nutrientCandidates = []struct {
	set  func(*models.Nutrients, float64)
	keys []string
}{
	{func(n *models.Nutrients, v float64) { n.Calories = v }, []string{"energy", "calories", "energy.energy"}},
	{func(n *models.Nutrients, v float64) { n.Protein = v }, []string{"protein", "nutrient.protein"}},
	{func(n *models.Nutrients, v float64) { n.Fat = v }, []string{"fat", "nutrient.fat"}},
	{func(n *models.Nutrients, v float64) { n.Carbs = v }, []string{"carbohydrates", "carbohydrate", "carbs", "nutrient.carb"}},
}

// ExtractNutrients maps a raw nutrient payload of any historical shape into a
// fully-populated per-gram record. Fields that cannot be resolved stay 0.0;
// the function never fails. If data is not a mapping at all, the context
// mapping's "nutrients" sub-field is tried before giving up.
func ExtractNutrients(data any, context map[string]any) models.Nutrients {
	payload, ok := data.(map[string]any)
	if !ok {
		if context != nil {
			if nested, ok := context["nutrients"].(map[string]any); ok {
				payload = nested
			}
		}
		if payload == nil {
			return models.Nutrients{}
		}
	}

	var out models.Nutrients
	for _, field := range nutrientCandidates {
		field.set(&out, resolveNutrient(payload, field.keys))
	}
	return out
}

func resolveNutrient(payload map[string]any, keys []string) float64 {
	for _, key := range keys {
		if v, ok := lookupPath(payload, key); ok {
			if f, ok := coerceNutrientValue(v); ok {
				return f
			}
		}
		// The dotted candidate may also exist as a literal key.
		if v, ok := payload[key]; ok {
			if f, ok := toFloat(v); ok {
				return f
			}
		}
	}
	return 0.0
}

// lookupPath walks a dot-separated path through nested mappings.
func lookupPath(payload map[string]any, path string) (any, bool) {
	var current any = payload
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// coerceNutrientValue handles both bare numeric leaves and {"value": n}
// wrapper objects.
func coerceNutrientValue(v any) (float64, bool) {
	if m, ok := v.(map[string]any); ok {
		f, _ := toFloat(m["value"])
		return f, true
	}
	return toFloat(v)
}

// toFloat coerces numeric leaves. Negative and non-finite values are rejected
// so the returned record always satisfies the non-negative invariant.
func toFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0.0, false
		}
		f = parsed
	default:
		return 0.0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0.0, false
	}
	return f, true
}
