package db_models

import (
	"github.com/google/uuid"

	"mealtrip/pkg/utils"
)

// Trip is a planned multi-day outing. FromDate and TillDate are unix
// seconds of UTC midnight; the range is inclusive on both ends.
type Trip struct {
	BaseModel
	Name       string
	FromDate   int64
	TillDate   int64
	OwnerID    uuid.UUID `gorm:"type:uuid;index"`
	Archived   bool      `gorm:"default:false"`
	LastUpdate int64

	Groups      []Group      `gorm:"foreignKey:TripID"`
	MealRecords []MealRecord `gorm:"foreignKey:TripID"`
}

// DayCount is the number of itinerary days, 1 for a single-day trip.
func (t *Trip) DayCount() int {
	return utils.DayCount(t.FromDate, t.TillDate)
}

// Group is a party of persons travelling together on one trip. Groups
// are replaced wholesale on trip edit, never patched individually.
type Group struct {
	BaseModel
	TripID  uuid.UUID `gorm:"type:uuid;index"`
	Persons int
	Seq     int // 0-based position within the trip
}

// Headcount sums persons across all groups of a trip.
func Headcount(groups []Group) int {
	total := 0
	for _, g := range groups {
		total += g.Persons
	}
	return total
}
