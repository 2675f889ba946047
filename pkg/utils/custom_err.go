package utils

import "errors"

var (
	ErrTripNotFound       = errors.New("trip not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrRecordNotFound     = errors.New("meal record not found")
	ErrLinkNotFound       = errors.New("sharing link not found or expired")
	ErrAccountNotFound    = errors.New("account not found")
	ErrForbidden          = errors.New("insufficient access level")
	ErrInvalidDates       = errors.New("trip dates are invalid")
	ErrDayOutOfRange      = errors.New("day number outside the trip date range")
	ErrCycleBounds        = errors.New("cycle bounds must be positive ordered ranges")
	ErrCycleOverlap       = errors.New("cycle source and destination ranges overlap or touch")
	ErrCycleRange         = errors.New("cycle range exceeds the trip day count")
	ErrProductArchived    = errors.New("product is archived")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDatabaseError      = errors.New("database error")
)
