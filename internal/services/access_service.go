package services

import (
	"context"

	"github.com/google/uuid"

	dbm "mealtrip/internal/models/db_models"
	"mealtrip/internal/repositories"
	"mealtrip/pkg/utils"
)

// Principal identifies the authenticated caller. It is threaded
// explicitly into every service call instead of living in request
// globals.
type Principal struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// CanAccess is the single authorization decision point. Administrators
// and the trip owner pass every level; anyone else needs a grant at or
// above the required level. Pure: safe to call repeatedly within one
// request.
func CanAccess(trip *dbm.Trip, userID uuid.UUID, isAdmin bool, grant *dbm.TripAccess, level int) bool {
	if isAdmin || trip.OwnerID == userID {
		return true
	}
	return grant != nil && grant.Level >= level
}

type AccessServiceInterface interface {
	// Authorize loads the trip and checks the principal against the
	// required level. Callers without any grant get ErrTripNotFound so
	// that probing ids does not confirm a trip exists; callers holding
	// a lower grant get ErrForbidden.
	Authorize(ctx context.Context, tripID uuid.UUID, p Principal, level int) (*dbm.Trip, error)
}

type AccessService struct {
	tripRepo   repositories.TripRepository
	accessRepo repositories.AccessRepository
}

func NewAccessService(tripRepo repositories.TripRepository, accessRepo repositories.AccessRepository) AccessServiceInterface {
	return &AccessService{
		tripRepo:   tripRepo,
		accessRepo: accessRepo,
	}
}

func (a *AccessService) Authorize(ctx context.Context, tripID uuid.UUID, p Principal, level int) (*dbm.Trip, error) {
	trip, err := a.tripRepo.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}

	grant, err := a.accessRepo.GetGrant(ctx, p.UserID, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	if !CanAccess(trip, p.UserID, p.IsAdmin, grant, level) {
		if grant == nil {
			return nil, utils.ErrTripNotFound
		}
		return nil, utils.ErrForbidden
	}

	// Archived trips stay readable for whoever could read them, but
	// reject mutations until unarchived.
	if trip.Archived {
		if !p.IsAdmin && trip.OwnerID != p.UserID {
			return nil, utils.ErrTripNotFound
		}
		if level >= dbm.AccessWrite {
			return nil, utils.ErrForbidden
		}
	}

	return trip, nil
}
