package db_models

import "github.com/google/uuid"

// Access levels for a shared trip. Write dominates Read.
const (
	AccessRead  = 1
	AccessWrite = 2
)

// TripAccess grants one user one level on one trip. The owner and
// administrators never need a row here.
type TripAccess struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;index:idx_trip_access_user_trip,unique"`
	TripID uuid.UUID `gorm:"type:uuid;index:idx_trip_access_user_trip,unique"`
	Level  int
}
