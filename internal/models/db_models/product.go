package db_models

// Product is a global catalog entry. Nutrient values are per 100 grams.
// GramsPerPiece, when set, enables entering quantities by piece count.
type Product struct {
	BaseModel
	Name          string `gorm:"index"`
	Calories      float64
	Proteins      float64
	Fats          float64
	Carbs         float64
	GramsPerPiece *float64
	Archived      bool `gorm:"default:false"`
}
