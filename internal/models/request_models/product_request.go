package request_models

type ProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Calories      float64  `json:"calories" binding:"min=0"`
	Proteins      float64  `json:"proteins" binding:"min=0"`
	Fats          float64  `json:"fats" binding:"min=0"`
	Carbs         float64  `json:"carbs" binding:"min=0"`
	GramsPerPiece *float64 `json:"grams_per_piece"`
}
