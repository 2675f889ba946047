package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbm "mealtrip/internal/models/db_models"
	"mealtrip/internal/repositories"
	"mealtrip/internal/services"
	"mealtrip/pkg/utils"
)

// seedTrip stores a 10-day trip and returns it with its owner id.
func seedTrip(t *testing.T, store *repositories.MemoryStore, ownerID uuid.UUID, groups ...int) *dbm.Trip {
	t.Helper()

	from, err := utils.ParseDate("2026-07-01")
	require.NoError(t, err)
	till, err := utils.ParseDate("2026-07-10")
	require.NoError(t, err)

	gs := make([]dbm.Group, 0, len(groups))
	for _, persons := range groups {
		gs = append(gs, dbm.Group{Persons: persons})
	}

	trip := &dbm.Trip{
		Name:     "Test trek",
		FromDate: from,
		TillDate: till,
		OwnerID:  ownerID,
	}
	require.NoError(t, store.CreateTrip(context.Background(), trip, gs))
	return trip
}

func grantAccess(t *testing.T, store *repositories.MemoryStore, tripID, userID uuid.UUID, level int) {
	t.Helper()

	link := &dbm.SharingLink{
		Token:     uuid.New().String(),
		TripID:    tripID,
		UserID:    userID,
		Level:     level,
		ExpiresAt: utils.NowUnixSeconds() + 3600,
	}
	require.NoError(t, store.CreateLink(context.Background(), link))
	gotTrip, _, err := store.RedeemToken(context.Background(), link.Token, userID, utils.NowUnixSeconds())
	require.NoError(t, err)
	require.Equal(t, tripID, gotTrip)
}

func TestCanAccessOwnerAndAdmin(t *testing.T) {
	owner := uuid.New()
	admin := uuid.New()
	trip := &dbm.Trip{OwnerID: owner}

	assert.True(t, services.CanAccess(trip, owner, false, nil, dbm.AccessWrite))
	assert.True(t, services.CanAccess(trip, admin, true, nil, dbm.AccessWrite))
	assert.False(t, services.CanAccess(trip, uuid.New(), false, nil, dbm.AccessRead))
}

func TestCanAccessGrantLevels(t *testing.T) {
	trip := &dbm.Trip{OwnerID: uuid.New()}
	user := uuid.New()

	readGrant := &dbm.TripAccess{UserID: user, TripID: trip.ID, Level: dbm.AccessRead}
	writeGrant := &dbm.TripAccess{UserID: user, TripID: trip.ID, Level: dbm.AccessWrite}

	assert.True(t, services.CanAccess(trip, user, false, readGrant, dbm.AccessRead))
	assert.False(t, services.CanAccess(trip, user, false, readGrant, dbm.AccessWrite))
	assert.True(t, services.CanAccess(trip, user, false, writeGrant, dbm.AccessRead))
	assert.True(t, services.CanAccess(trip, user, false, writeGrant, dbm.AccessWrite))
}

func TestAuthorizeHidesTripsFromStrangers(t *testing.T) {
	store := repositories.NewMemoryStore()
	access := services.NewAccessService(store, store)
	owner := uuid.New()
	trip := seedTrip(t, store, owner)

	// A stranger probing the id must not learn the trip exists.
	_, err := access.Authorize(context.Background(), trip.ID, services.Principal{UserID: uuid.New()}, dbm.AccessRead)
	assert.ErrorIs(t, err, utils.ErrTripNotFound)

	// A read-grant holder asking for write gets a distinct forbidden.
	reader := uuid.New()
	grantAccess(t, store, trip.ID, reader, dbm.AccessRead)
	_, err = access.Authorize(context.Background(), trip.ID, services.Principal{UserID: reader}, dbm.AccessWrite)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = access.Authorize(context.Background(), trip.ID, services.Principal{UserID: reader}, dbm.AccessRead)
	assert.NoError(t, err)
}

func TestAuthorizeUnknownTrip(t *testing.T) {
	store := repositories.NewMemoryStore()
	access := services.NewAccessService(store, store)

	_, err := access.Authorize(context.Background(), uuid.New(), services.Principal{UserID: uuid.New()}, dbm.AccessRead)
	assert.ErrorIs(t, err, utils.ErrTripNotFound)
}

func TestAuthorizeArchivedTrip(t *testing.T) {
	store := repositories.NewMemoryStore()
	access := services.NewAccessService(store, store)
	owner := uuid.New()
	trip := seedTrip(t, store, owner)
	require.NoError(t, store.SetTripArchived(context.Background(), trip.ID, true))

	// Owner keeps read access but cannot mutate until unarchived.
	_, err := access.Authorize(context.Background(), trip.ID, services.Principal{UserID: owner}, dbm.AccessRead)
	assert.NoError(t, err)
	_, err = access.Authorize(context.Background(), trip.ID, services.Principal{UserID: owner}, dbm.AccessWrite)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	// A write-grant holder no longer sees the archived trip at all.
	writer := uuid.New()
	grantAccess(t, store, trip.ID, writer, dbm.AccessWrite)
	_, err = access.Authorize(context.Background(), trip.ID, services.Principal{UserID: writer}, dbm.AccessRead)
	assert.ErrorIs(t, err, utils.ErrTripNotFound)

	// Admins still read it.
	_, err = access.Authorize(context.Background(), trip.ID, services.Principal{UserID: uuid.New(), IsAdmin: true}, dbm.AccessRead)
	assert.NoError(t, err)
}
