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

func newSharingEnv(t *testing.T) (*repositories.MemoryStore, services.SharingServiceInterface, uuid.UUID, *dbm.Trip) {
	t.Helper()

	store := repositories.NewMemoryStore()
	sharing := services.NewSharingService(store, store)
	owner := uuid.New()
	trip := seedTrip(t, store, owner)
	return store, sharing, owner, trip
}

func TestIssueReusesLiveLink(t *testing.T) {
	_, sharing, owner, trip := newSharingEnv(t)
	p := services.Principal{UserID: owner}

	first, err := sharing.Issue(context.Background(), trip.ID, p, "write")
	require.NoError(t, err)
	require.NotEmpty(t, first.Token)
	assert.Contains(t, first.ShareableLink, first.Token)

	second, err := sharing.Issue(context.Background(), trip.ID, p, "write")
	require.NoError(t, err)
	assert.Equal(t, first.Token, second.Token, "re-issuing must reuse the live link")
}

func TestIssueRequiresOwnerOrAdmin(t *testing.T) {
	store, sharing, _, trip := newSharingEnv(t)

	// Stranger: the trip's existence stays hidden.
	_, err := sharing.Issue(context.Background(), trip.ID, services.Principal{UserID: uuid.New()}, "read")
	assert.ErrorIs(t, err, utils.ErrTripNotFound)

	// Grant holders know the trip but still cannot issue.
	reader := uuid.New()
	grantAccess(t, store, trip.ID, reader, dbm.AccessRead)
	_, err = sharing.Issue(context.Background(), trip.ID, services.Principal{UserID: reader}, "read")
	assert.ErrorIs(t, err, utils.ErrForbidden)

	// Admins may issue for any trip.
	_, err = sharing.Issue(context.Background(), trip.ID, services.Principal{UserID: uuid.New(), IsAdmin: true}, "read")
	assert.NoError(t, err)
}

func TestIssueRejectsBadLevel(t *testing.T) {
	_, sharing, owner, trip := newSharingEnv(t)

	_, err := sharing.Issue(context.Background(), trip.ID, services.Principal{UserID: owner}, "admin")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestRedeemIsIdempotent(t *testing.T) {
	store, sharing, owner, trip := newSharingEnv(t)

	link, err := sharing.Issue(context.Background(), trip.ID, services.Principal{UserID: owner}, "write")
	require.NoError(t, err)

	user := uuid.New()
	for i := 0; i < 2; i++ {
		result, err := sharing.Redeem(context.Background(), link.Token, user)
		require.NoError(t, err)
		assert.Equal(t, trip.ID.String(), result.TripID)
		assert.Equal(t, "write", result.Level)
	}

	grants, err := store.ListGrantsByUser(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, grants, 1, "double redemption must produce exactly one grant")
	assert.Equal(t, dbm.AccessWrite, grants[0].Level)
}

func TestRedeemByMultipleUsers(t *testing.T) {
	store, sharing, owner, trip := newSharingEnv(t)

	link, err := sharing.Issue(context.Background(), trip.ID, services.Principal{UserID: owner}, "write")
	require.NoError(t, err)

	// The token survives redemption so several users can use it.
	for _, user := range []uuid.UUID{uuid.New(), uuid.New()} {
		_, err := sharing.Redeem(context.Background(), link.Token, user)
		require.NoError(t, err)

		grants, err := store.ListGrantsByUser(context.Background(), user)
		require.NoError(t, err)
		require.Len(t, grants, 1)
		assert.Equal(t, dbm.AccessWrite, grants[0].Level)
	}
}

func TestRedeemNeverDowngrades(t *testing.T) {
	store, sharing, owner, trip := newSharingEnv(t)
	user := uuid.New()
	grantAccess(t, store, trip.ID, user, dbm.AccessWrite)

	readLink, err := sharing.Issue(context.Background(), trip.ID, services.Principal{UserID: owner}, "read")
	require.NoError(t, err)

	result, err := sharing.Redeem(context.Background(), readLink.Token, user)
	require.NoError(t, err)
	assert.Equal(t, "write", result.Level, "redeeming a read link must not downgrade a write grant")

	grants, err := store.ListGrantsByUser(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, dbm.AccessWrite, grants[0].Level)
}

func TestRedeemUpgradesReadToWrite(t *testing.T) {
	store, sharing, owner, trip := newSharingEnv(t)
	user := uuid.New()
	grantAccess(t, store, trip.ID, user, dbm.AccessRead)

	writeLink, err := sharing.Issue(context.Background(), trip.ID, services.Principal{UserID: owner}, "write")
	require.NoError(t, err)

	result, err := sharing.Redeem(context.Background(), writeLink.Token, user)
	require.NoError(t, err)
	assert.Equal(t, "write", result.Level)

	grants, err := store.ListGrantsByUser(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, dbm.AccessWrite, grants[0].Level)
}

func TestRedeemExpiredToken(t *testing.T) {
	store, sharing, owner, trip := newSharingEnv(t)

	expired := &dbm.SharingLink{
		Token:     "expiredtoken",
		TripID:    trip.ID,
		UserID:    owner,
		Level:     dbm.AccessWrite,
		ExpiresAt: utils.NowUnixSeconds() - 60,
	}
	require.NoError(t, store.CreateLink(context.Background(), expired))

	_, err := sharing.Redeem(context.Background(), "expiredtoken", uuid.New())
	assert.ErrorIs(t, err, utils.ErrLinkNotFound)
}

func TestRedeemSweepsAllExpiredLinks(t *testing.T) {
	store, sharing, owner, trip := newSharingEnv(t)

	// One expired link from another issuer, one live link.
	otherIssuer := uuid.New()
	expired := &dbm.SharingLink{
		Token:     "stale",
		TripID:    trip.ID,
		UserID:    otherIssuer,
		Level:     dbm.AccessRead,
		ExpiresAt: utils.NowUnixSeconds() - 60,
	}
	require.NoError(t, store.CreateLink(context.Background(), expired))

	live, err := sharing.Issue(context.Background(), trip.ID, services.Principal{UserID: owner}, "read")
	require.NoError(t, err)

	// Redeeming the live token sweeps the unrelated stale link too.
	_, err = sharing.Redeem(context.Background(), live.Token, uuid.New())
	require.NoError(t, err)

	_, err = sharing.Redeem(context.Background(), "stale", uuid.New())
	assert.ErrorIs(t, err, utils.ErrLinkNotFound)
}

func TestUnknownTokenRedeem(t *testing.T) {
	_, sharing, _, _ := newSharingEnv(t)

	_, err := sharing.Redeem(context.Background(), "nosuchtoken", uuid.New())
	assert.ErrorIs(t, err, utils.ErrLinkNotFound)
}

func TestForgetDropsOwnGrant(t *testing.T) {
	store, sharing, _, trip := newSharingEnv(t)
	user := uuid.New()
	grantAccess(t, store, trip.ID, user, dbm.AccessRead)

	require.NoError(t, sharing.Forget(context.Background(), trip.ID, user))

	grants, err := store.ListGrantsByUser(context.Background(), user)
	require.NoError(t, err)
	assert.Empty(t, grants)

	// Forgetting twice reports nothing to forget.
	assert.ErrorIs(t, sharing.Forget(context.Background(), trip.ID, user), utils.ErrTripNotFound)
}
