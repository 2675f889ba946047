package db_models

import "github.com/google/uuid"

// Meal slot numbers, ordered as they appear within a day.
const (
	MealBreakfast = 0
	MealLunch     = 1
	MealDinner    = 2
	MealSnacks    = 3
)

func ValidMeal(meal int) bool {
	return meal >= MealBreakfast && meal <= MealSnacks
}

// MealRecord assigns a mass of one product to (trip, day, meal slot).
// Adding the same product to the same slot merges by summing mass; the
// cycle operation instead inserts copies additively.
type MealRecord struct {
	BaseModel
	TripID    uuid.UUID `gorm:"type:uuid;index"`
	DayNumber int       // 1-based within the trip's date range
	Meal      int
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	Mass      float64   // grams

	Product Product `gorm:"foreignKey:ProductID"`
}
