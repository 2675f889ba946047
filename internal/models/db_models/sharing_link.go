package db_models

import "github.com/google/uuid"

// SharingLink is an expiring token that converts into a TripAccess
// grant on redemption. One live link exists per (trip, issuer); reuse
// refreshes ExpiresAt. Redemption never deletes the link, so several
// users can redeem the same token until it expires.
type SharingLink struct {
	BaseModel
	Token     string    `gorm:"uniqueIndex"`
	TripID    uuid.UUID `gorm:"type:uuid;index"`
	UserID    uuid.UUID `gorm:"type:uuid;index"` // issuing user
	Level     int
	ExpiresAt int64
}

func (l *SharingLink) Expired(nowUnix int64) bool {
	return l.ExpiresAt <= nowUnix
}
