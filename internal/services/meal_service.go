package services

import (
	"context"

	"github.com/google/uuid"

	dbm "mealtrip/internal/models/db_models"
	"mealtrip/internal/models/request_models"
	"mealtrip/internal/models/response_models"
	"mealtrip/internal/repositories"
	"mealtrip/pkg/utils"
)

type MealServiceInterface interface {
	AddRecord(ctx context.Context, tripID uuid.UUID, p Principal, dayNumber int, req request_models.AddMealRecordRequest) (*response_models.MealRecordResponse, error)
	RemoveRecord(ctx context.Context, tripID uuid.UUID, p Principal, recordID uuid.UUID) error
	ListDay(ctx context.Context, tripID uuid.UUID, p Principal, dayNumber int) ([]response_models.MealRecordResponse, error)
	Cycle(ctx context.Context, tripID uuid.UUID, p Principal, req request_models.CycleDaysRequest) error
}

type MealService struct {
	mealRepo    repositories.MealRepository
	productRepo repositories.ProductRepository
	access      AccessServiceInterface
}

func NewMealService(mealRepo repositories.MealRepository, productRepo repositories.ProductRepository, access AccessServiceInterface) MealServiceInterface {
	return &MealService{
		mealRepo:    mealRepo,
		productRepo: productRepo,
		access:      access,
	}
}

func buildRecordResponse(rec *dbm.MealRecord) *response_models.MealRecordResponse {
	return &response_models.MealRecordResponse{
		ID:          rec.ID.String(),
		DayNumber:   rec.DayNumber,
		Meal:        rec.Meal,
		ProductID:   rec.ProductID.String(),
		ProductName: rec.Product.Name,
		Mass:        rec.Mass,
	}
}

func (m *MealService) AddRecord(ctx context.Context, tripID uuid.UUID, p Principal, dayNumber int, req request_models.AddMealRecordRequest) (*response_models.MealRecordResponse, error) {
	trip, err := m.access.Authorize(ctx, tripID, p, dbm.AccessWrite)
	if err != nil {
		return nil, err
	}
	if dayNumber < 1 || dayNumber > trip.DayCount() {
		return nil, utils.ErrDayOutOfRange
	}
	if !dbm.ValidMeal(req.Meal) {
		return nil, utils.ErrInvalidInput
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	product, err := m.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if product == nil {
		return nil, utils.ErrProductNotFound
	}
	// Archived products stay in historical records but are rejected
	// for new assignments.
	if product.Archived {
		return nil, utils.ErrProductArchived
	}

	rec, err := m.mealRepo.AddRecord(ctx, tripID, dayNumber, req.Meal, productID, req.Mass)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	rec.Product = *product
	return buildRecordResponse(rec), nil
}

func (m *MealService) RemoveRecord(ctx context.Context, tripID uuid.UUID, p Principal, recordID uuid.UUID) error {
	if _, err := m.access.Authorize(ctx, tripID, p, dbm.AccessWrite); err != nil {
		return err
	}

	deleted, err := m.mealRepo.RemoveRecord(ctx, tripID, recordID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !deleted {
		return utils.ErrRecordNotFound
	}
	return nil
}

func (m *MealService) ListDay(ctx context.Context, tripID uuid.UUID, p Principal, dayNumber int) ([]response_models.MealRecordResponse, error) {
	trip, err := m.access.Authorize(ctx, tripID, p, dbm.AccessRead)
	if err != nil {
		return nil, err
	}
	if dayNumber < 1 || dayNumber > trip.DayCount() {
		return nil, utils.ErrDayOutOfRange
	}

	records, err := m.mealRepo.ListByDay(ctx, tripID, dayNumber)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.MealRecordResponse, 0, len(records))
	for i := range records {
		out = append(out, *buildRecordResponse(&records[i]))
	}
	return out, nil
}

// ValidateCycle checks a day-range duplication request against the trip
// day count. All checks run before any mutation; a failure leaves
// storage untouched.
func ValidateCycle(req request_models.CycleDaysRequest, dayCount int) error {
	if req.SrcStart < 1 || req.SrcEnd < 1 || req.DstStart < 1 || req.DstEnd < 1 {
		return utils.ErrCycleBounds
	}
	if req.SrcStart > req.SrcEnd || req.DstStart > req.DstEnd {
		return utils.ErrCycleBounds
	}
	// Ranges must be disjoint, shared boundary values included: a day
	// cannot be both origin and copy target.
	if req.SrcStart <= req.DstEnd && req.DstStart <= req.SrcEnd {
		return utils.ErrCycleOverlap
	}
	if req.SrcEnd > dayCount || req.DstEnd > dayCount {
		return utils.ErrCycleRange
	}
	return nil
}

// Cycle duplicates the source day range onto the destination range with
// modular repetition. Copies are additive inserts; they are never
// merged with records already sitting at the destination.
func (m *MealService) Cycle(ctx context.Context, tripID uuid.UUID, p Principal, req request_models.CycleDaysRequest) error {
	trip, err := m.access.Authorize(ctx, tripID, p, dbm.AccessWrite)
	if err != nil {
		return err
	}
	if err := ValidateCycle(req, trip.DayCount()); err != nil {
		return err
	}

	period := req.SrcEnd - req.SrcStart + 1
	err = m.mealRepo.CycleDays(ctx, tripID, req.SrcStart, period, req.DstStart, req.DstEnd, req.Overwrite)
	if err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
