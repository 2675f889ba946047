package response_models

// NutritionTotals carries unrounded sums; presentation rounding is the
// caller's concern.
type NutritionTotals struct {
	Mass     float64 `json:"mass"`
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Fats     float64 `json:"fats"`
	Carbs    float64 `json:"carbs"`
}

type MealNutrition struct {
	Meal    int               `json:"meal"`
	Records []RecordNutrition `json:"records"`
	Totals  NutritionTotals   `json:"totals"`
}

type RecordNutrition struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Totals      NutritionTotals `json:"totals"`
}

type DayReport struct {
	DayNumber int             `json:"day_number"`
	Meals     []MealNutrition `json:"meals"`
	Totals    NutritionTotals `json:"totals"`
}

type ShoppingItem struct {
	ProductID   string   `json:"product_id"`
	ProductName string   `json:"product_name"`
	TotalMass   float64  `json:"total_mass"`
	Pieces      *float64 `json:"pieces,omitempty"`
}

type ShoppingReport struct {
	Headcount int            `json:"headcount"`
	Items     []ShoppingItem `json:"items"`
}

type PackingPortion struct {
	GroupSeq int     `json:"group_seq"`
	Persons  int     `json:"persons"`
	Mass     float64 `json:"mass"`
}

type PackingItem struct {
	ProductID   string           `json:"product_id"`
	ProductName string           `json:"product_name"`
	Mass        float64          `json:"mass"` // per person
	Portions    []PackingPortion `json:"portions"`
}

type PackingMeal struct {
	Meal  int           `json:"meal"`
	Items []PackingItem `json:"items"`
}

type PackingDay struct {
	DayNumber int           `json:"day_number"`
	Meals     []PackingMeal `json:"meals"`
}

type PackingReport struct {
	Days []PackingDay `json:"days"`
}
