package response_models

type MealRecordResponse struct {
	ID          string  `json:"id"`
	DayNumber   int     `json:"day_number"`
	Meal        int     `json:"meal"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Mass        float64 `json:"mass"`
}

type ProductResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Calories      float64  `json:"calories"`
	Proteins      float64  `json:"proteins"`
	Fats          float64  `json:"fats"`
	Carbs         float64  `json:"carbs"`
	GramsPerPiece *float64 `json:"grams_per_piece,omitempty"`
	Archived      bool     `json:"archived"`
}
