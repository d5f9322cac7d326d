package models

// Nutrients holds nutrient amounts per gram of a product.
// The upstream v9 API returns fractional per-base-unit values, so absolute
// contributions are rate * grams with no /100 step. That reading comes from
// the upstream payloads themselves and has not been confirmed by Yazio docs.
type Nutrients struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// Scale multiplies every field by the consumed amount in grams.
func (n Nutrients) Scale(grams float64) Nutrients {
	return Nutrients{
		Calories: n.Calories * grams,
		Protein:  n.Protein * grams,
		Fat:      n.Fat * grams,
		Carbs:    n.Carbs * grams,
	}
}

// Add returns the elementwise sum of two records.
func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Fat:      n.Fat + o.Fat,
		Carbs:    n.Carbs + o.Carbs,
	}
}
