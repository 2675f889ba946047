package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbm "mealtrip/internal/models/db_models"
	"mealtrip/internal/models/request_models"
	"mealtrip/internal/repositories"
	"mealtrip/internal/services"
	"mealtrip/pkg/utils"
)

func newMealEnv(t *testing.T) (*repositories.MemoryStore, services.MealServiceInterface, services.Principal, *dbm.Trip) {
	t.Helper()

	store := repositories.NewMemoryStore()
	access := services.NewAccessService(store, store)
	meals := services.NewMealService(store, store, access)
	owner := uuid.New()
	trip := seedTrip(t, store, owner, 2, 3)
	return store, meals, services.Principal{UserID: owner}, trip
}

func seedProduct(t *testing.T, store *repositories.MemoryStore, name string, gramsPerPiece *float64) *dbm.Product {
	t.Helper()

	product := &dbm.Product{
		Name:          name,
		Calories:      362,
		Proteins:      12,
		Fats:          2.5,
		Carbs:         72,
		GramsPerPiece: gramsPerPiece,
	}
	require.NoError(t, store.CreateProduct(context.Background(), product))
	return product
}

func addRecord(t *testing.T, meals services.MealServiceInterface, p services.Principal, tripID, productID uuid.UUID, day, meal int, mass float64) {
	t.Helper()

	_, err := meals.AddRecord(context.Background(), tripID, p, day, request_models.AddMealRecordRequest{
		ProductID: productID.String(),
		Meal:      meal,
		Mass:      mass,
	})
	require.NoError(t, err)
}

func TestAddRecordMergesSameProduct(t *testing.T) {
	store, meals, p, trip := newMealEnv(t)
	product := seedProduct(t, store, "Buckwheat", nil)

	addRecord(t, meals, p, trip.ID, product.ID, 1, dbm.MealBreakfast, 60)
	addRecord(t, meals, p, trip.ID, product.ID, 1, dbm.MealBreakfast, 40)

	records, err := meals.ListDay(context.Background(), trip.ID, p, 1)
	require.NoError(t, err)
	require.Len(t, records, 1, "same product in the same slot must merge, not duplicate")
	assert.InDelta(t, 100, records[0].Mass, 1e-9)
}

func TestAddRecordDistinctSlots(t *testing.T) {
	store, meals, p, trip := newMealEnv(t)
	product := seedProduct(t, store, "Buckwheat", nil)

	addRecord(t, meals, p, trip.ID, product.ID, 1, dbm.MealBreakfast, 60)
	addRecord(t, meals, p, trip.ID, product.ID, 1, dbm.MealLunch, 60)

	records, err := meals.ListDay(context.Background(), trip.ID, p, 1)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestAddRecordValidation(t *testing.T) {
	store, meals, p, trip := newMealEnv(t)
	product := seedProduct(t, store, "Buckwheat", nil)

	_, err := meals.AddRecord(context.Background(), trip.ID, p, 11, request_models.AddMealRecordRequest{
		ProductID: product.ID.String(), Meal: dbm.MealBreakfast, Mass: 60,
	})
	assert.ErrorIs(t, err, utils.ErrDayOutOfRange, "trip is 10 days, day 11 is out of range")

	_, err = meals.AddRecord(context.Background(), trip.ID, p, 1, request_models.AddMealRecordRequest{
		ProductID: product.ID.String(), Meal: 7, Mass: 60,
	})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = meals.AddRecord(context.Background(), trip.ID, p, 1, request_models.AddMealRecordRequest{
		ProductID: uuid.New().String(), Meal: dbm.MealBreakfast, Mass: 60,
	})
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestAddRecordRejectsArchivedProduct(t *testing.T) {
	store, meals, p, trip := newMealEnv(t)
	product := seedProduct(t, store, "Old ration", nil)
	_, err := store.SetProductArchived(context.Background(), product.ID, true)
	require.NoError(t, err)

	_, err = meals.AddRecord(context.Background(), trip.ID, p, 1, request_models.AddMealRecordRequest{
		ProductID: product.ID.String(), Meal: dbm.MealBreakfast, Mass: 60,
	})
	assert.ErrorIs(t, err, utils.ErrProductArchived)
}

func TestAddRecordRequiresWriteAccess(t *testing.T) {
	store, meals, _, trip := newMealEnv(t)
	product := seedProduct(t, store, "Buckwheat", nil)

	reader := uuid.New()
	grantAccess(t, store, trip.ID, reader, dbm.AccessRead)
	_, err := meals.AddRecord(context.Background(), trip.ID, services.Principal{UserID: reader}, 1, request_models.AddMealRecordRequest{
		ProductID: product.ID.String(), Meal: dbm.MealBreakfast, Mass: 60,
	})
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestRemoveRecord(t *testing.T) {
	store, meals, p, trip := newMealEnv(t)
	product := seedProduct(t, store, "Buckwheat", nil)
	addRecord(t, meals, p, trip.ID, product.ID, 1, dbm.MealBreakfast, 60)

	records, err := meals.ListDay(context.Background(), trip.ID, p, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)

	recordID, err := uuid.Parse(records[0].ID)
	require.NoError(t, err)
	require.NoError(t, meals.RemoveRecord(context.Background(), trip.ID, p, recordID))

	records, err = meals.ListDay(context.Background(), trip.ID, p, 1)
	require.NoError(t, err)
	assert.Empty(t, records)

	assert.ErrorIs(t, meals.RemoveRecord(context.Background(), trip.ID, p, recordID), utils.ErrRecordNotFound)
}

func TestValidateCycle(t *testing.T) {
	cases := []struct {
		name string
		req  request_models.CycleDaysRequest
		want error
	}{
		{"valid", request_models.CycleDaysRequest{SrcStart: 1, SrcEnd: 1, DstStart: 2, DstEnd: 5}, nil},
		{"valid multi-day", request_models.CycleDaysRequest{SrcStart: 1, SrcEnd: 3, DstStart: 4, DstEnd: 9}, nil},
		{"zero bound", request_models.CycleDaysRequest{SrcStart: 0, SrcEnd: 1, DstStart: 2, DstEnd: 5}, utils.ErrCycleBounds},
		{"inverted source", request_models.CycleDaysRequest{SrcStart: 2, SrcEnd: 1, DstStart: 3, DstEnd: 5}, utils.ErrCycleBounds},
		{"inverted destination", request_models.CycleDaysRequest{SrcStart: 1, SrcEnd: 2, DstStart: 5, DstEnd: 3}, utils.ErrCycleBounds},
		{"overlap", request_models.CycleDaysRequest{SrcStart: 1, SrcEnd: 3, DstStart: 2, DstEnd: 5}, utils.ErrCycleOverlap},
		{"touching boundary", request_models.CycleDaysRequest{SrcStart: 1, SrcEnd: 3, DstStart: 3, DstEnd: 5}, utils.ErrCycleOverlap},
		{"destination encloses source", request_models.CycleDaysRequest{SrcStart: 3, SrcEnd: 4, DstStart: 1, DstEnd: 6}, utils.ErrCycleOverlap},
		{"source beyond trip", request_models.CycleDaysRequest{SrcStart: 9, SrcEnd: 11, DstStart: 1, DstEnd: 2}, utils.ErrCycleRange},
		{"destination beyond trip", request_models.CycleDaysRequest{SrcStart: 1, SrcEnd: 2, DstStart: 8, DstEnd: 11}, utils.ErrCycleRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := services.ValidateCycle(tc.req, 10)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestCycleDuplicatesSingleDay(t *testing.T) {
	store, meals, p, trip := newMealEnv(t)
	product := seedProduct(t, store, "Buckwheat", nil)
	addRecord(t, meals, p, trip.ID, product.ID, 1, dbm.MealBreakfast, 60)

	before, err := store.GetTripByID(context.Background(), trip.ID)
	require.NoError(t, err)

	err = meals.Cycle(context.Background(), trip.ID, p, request_models.CycleDaysRequest{
		SrcStart: 1, SrcEnd: 1, DstStart: 2, DstEnd: 5,
	})
	require.NoError(t, err)

	for day := 2; day <= 5; day++ {
		records, err := meals.ListDay(context.Background(), trip.ID, p, day)
		require.NoError(t, err)
		require.Len(t, records, 1, "day %d should carry the copy", day)
		assert.Equal(t, dbm.MealBreakfast, records[0].Meal)
		assert.Equal(t, product.ID.String(), records[0].ProductID)
		assert.InDelta(t, 60, records[0].Mass, 1e-9)
	}

	after, err := store.GetTripByID(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, after.LastUpdate, before.LastUpdate)
	assert.NotZero(t, after.LastUpdate)
}

func TestCycleModularRepetition(t *testing.T) {
	store, meals, p, trip := newMealEnv(t)
	oats := seedProduct(t, store, "Oats", nil)
	rice := seedProduct(t, store, "Rice", nil)
	addRecord(t, meals, p, trip.ID, oats.ID, 1, dbm.MealBreakfast, 80)
	addRecord(t, meals, p, trip.ID, rice.ID, 2, dbm.MealDinner, 90)

	// Period 2 copied onto 4 destination days: pattern day1,day2,day1,day2.
	err := meals.Cycle(context.Background(), trip.ID, p, request_models.CycleDaysRequest{
		SrcStart: 1, SrcEnd: 2, DstStart: 4, DstEnd: 7,
	})
	require.NoError(t, err)

	expect := map[int]string{4: "Oats", 5: "Rice", 6: "Oats", 7: "Rice"}
	for day, name := range expect {
		records, err := meals.ListDay(context.Background(), trip.ID, p, day)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, name, records[0].ProductName)
	}
}

func TestCycleCopiesAreAdditive(t *testing.T) {
	store, meals, p, trip := newMealEnv(t)
	product := seedProduct(t, store, "Buckwheat", nil)
	addRecord(t, meals, p, trip.ID, product.ID, 1, dbm.MealBreakfast, 60)
	addRecord(t, meals, p, trip.ID, product.ID, 3, dbm.MealBreakfast, 50)

	err := meals.Cycle(context.Background(), trip.ID, p, request_models.CycleDaysRequest{
		SrcStart: 1, SrcEnd: 1, DstStart: 3, DstEnd: 3,
	})
	require.NoError(t, err)

	// The copy lands next to the pre-existing destination record; it is
	// never merged the way single additions are.
	records, err := meals.ListDay(context.Background(), trip.ID, p, 3)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestCycleOverwriteClearsDestination(t *testing.T) {
	store, meals, p, trip := newMealEnv(t)
	product := seedProduct(t, store, "Buckwheat", nil)
	stale := seedProduct(t, store, "Rice", nil)
	addRecord(t, meals, p, trip.ID, product.ID, 1, dbm.MealBreakfast, 60)
	addRecord(t, meals, p, trip.ID, stale.ID, 3, dbm.MealDinner, 70)

	err := meals.Cycle(context.Background(), trip.ID, p, request_models.CycleDaysRequest{
		SrcStart: 1, SrcEnd: 1, DstStart: 3, DstEnd: 4, Overwrite: true,
	})
	require.NoError(t, err)

	records, err := meals.ListDay(context.Background(), trip.ID, p, 3)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Buckwheat", records[0].ProductName)
}

func TestCycleRejectionLeavesStorageUntouched(t *testing.T) {
	store, meals, p, trip := newMealEnv(t)
	product := seedProduct(t, store, "Buckwheat", nil)
	addRecord(t, meals, p, trip.ID, product.ID, 1, dbm.MealBreakfast, 60)

	countAll := func() int {
		records, err := store.ListByTrip(context.Background(), trip.ID)
		require.NoError(t, err)
		return len(records)
	}
	before := countAll()

	err := meals.Cycle(context.Background(), trip.ID, p, request_models.CycleDaysRequest{
		SrcStart: 1, SrcEnd: 3, DstStart: 2, DstEnd: 5,
	})
	assert.ErrorIs(t, err, utils.ErrCycleOverlap)

	err = meals.Cycle(context.Background(), trip.ID, p, request_models.CycleDaysRequest{
		SrcStart: 2, SrcEnd: 1, DstStart: 4, DstEnd: 5,
	})
	assert.ErrorIs(t, err, utils.ErrCycleBounds)

	assert.Equal(t, before, countAll())
}
