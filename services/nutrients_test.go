package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paccolajoao/yazio-consumer/models"
)

func TestExtractNutrientsFlatKeys(t *testing.T) {
	payload := map[string]any{
		"energy":        0.52,
		"protein":       0.08,
		"fat":           0.03,
		"carbohydrates": 0.12,
	}

	n := ExtractNutrients(payload, nil)

	assert.Equal(t, 0.52, n.Calories)
	assert.Equal(t, 0.08, n.Protein)
	assert.Equal(t, 0.03, n.Fat)
	assert.Equal(t, 0.12, n.Carbs)
}

func TestExtractNutrientsSynonyms(t *testing.T) {
	payload := map[string]any{
		"calories":     1.2,
		"protein":      0.2,
		"fat":          0.1,
		"carbohydrate": 0.4,
	}

	n := ExtractNutrients(payload, nil)

	assert.Equal(t, 1.2, n.Calories)
	assert.Equal(t, 0.4, n.Carbs)

	payload = map[string]any{"carbs": 0.4}
	assert.Equal(t, 0.4, ExtractNutrients(payload, nil).Carbs)
}

func TestExtractNutrientsDottedPaths(t *testing.T) {
	payload := map[string]any{
		"nutrient": map[string]any{
			"protein": 0.08,
			"fat":     0.03,
			"carb":    0.12,
		},
	}

	n := ExtractNutrients(payload, nil)

	assert.Equal(t, 0.08, n.Protein)
	assert.Equal(t, 0.03, n.Fat)
	assert.Equal(t, 0.12, n.Carbs)
}

func TestExtractNutrientsValueWrapper(t *testing.T) {
	payload := map[string]any{
		"energy":  map[string]any{"value": 0.52},
		"protein": map[string]any{"value": 0.08},
	}

	n := ExtractNutrients(payload, nil)

	assert.Equal(t, 0.52, n.Calories)
	assert.Equal(t, 0.08, n.Protein)
}

func TestExtractNutrientsEquivalentShapes(t *testing.T) {
	shapes := []map[string]any{
		{"protein": 0.08},
		{"protein": map[string]any{"value": 0.08}},
		{"nutrient": map[string]any{"protein": 0.08}},
		{"protein": "0.08"},
	}

	for _, shape := range shapes {
		assert.Equal(t, 0.08, ExtractNutrients(shape, nil).Protein, "shape %v", shape)
	}
}

func TestExtractNutrientsContextFallback(t *testing.T) {
	context := map[string]any{
		"nutrients": map[string]any{"energy": 0.9},
	}

	n := ExtractNutrients(nil, context)
	assert.Equal(t, 0.9, n.Calories)

	n = ExtractNutrients("not a map", context)
	assert.Equal(t, 0.9, n.Calories)
}

func TestExtractNutrientsUnresolvable(t *testing.T) {
	assert.Equal(t, models.Nutrients{}, ExtractNutrients(nil, nil))
	assert.Equal(t, models.Nutrients{}, ExtractNutrients([]any{1, 2}, nil))
	assert.Equal(t, models.Nutrients{}, ExtractNutrients(map[string]any{"unrelated": 1.0}, nil))
	assert.Equal(t, models.Nutrients{}, ExtractNutrients(nil, map[string]any{"nutrients": "bogus"}))
}

func TestExtractNutrientsBadValuesNeverNegative(t *testing.T) {
	payload := map[string]any{
		"energy":        "not a number",
		"protein":       -1.5,
		"fat":           nil,
		"carbohydrates": map[string]any{"value": "abc"},
	}

	n := ExtractNutrients(payload, nil)

	for _, v := range []float64{n.Calories, n.Protein, n.Fat, n.Carbs} {
		assert.GreaterOrEqual(t, v, 0.0)
	}
	assert.Equal(t, models.Nutrients{}, n)
}

func TestExtractNutrientsCoercionFailureTriesNextCandidate(t *testing.T) {
	// "energy" is unusable, the "calories" synonym should win.
	payload := map[string]any{
		"energy":   "garbage",
		"calories": 2.0,
	}

	assert.Equal(t, 2.0, ExtractNutrients(payload, nil).Calories)
}
