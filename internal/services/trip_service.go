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

type TripServiceInterface interface {
	CreateTrip(ctx context.Context, p Principal, req request_models.CreateTripRequest) (*response_models.TripResponse, error)
	GetTrip(ctx context.Context, tripID uuid.UUID, p Principal) (*response_models.TripResponse, error)
	UpdateTrip(ctx context.Context, tripID uuid.UUID, p Principal, req request_models.UpdateTripRequest) (*response_models.TripResponse, error)
	DeleteTrip(ctx context.Context, tripID uuid.UUID, p Principal) error
	SetArchived(ctx context.Context, tripID uuid.UUID, p Principal, archived bool) error
	ListTrips(ctx context.Context, p Principal) ([]response_models.TripResponse, error)
}

type TripService struct {
	tripRepo   repositories.TripRepository
	accessRepo repositories.AccessRepository
	access     AccessServiceInterface
}

func NewTripService(tripRepo repositories.TripRepository, accessRepo repositories.AccessRepository, access AccessServiceInterface) TripServiceInterface {
	return &TripService{
		tripRepo:   tripRepo,
		accessRepo: accessRepo,
		access:     access,
	}
}

func parseDateRange(fromStr, tillStr string) (int64, int64, error) {
	from, err := utils.ParseDate(fromStr)
	if err != nil {
		return 0, 0, utils.ErrInvalidDates
	}
	till, err := utils.ParseDate(tillStr)
	if err != nil {
		return 0, 0, utils.ErrInvalidDates
	}
	if from > till {
		return 0, 0, utils.ErrInvalidDates
	}
	return from, till, nil
}

func groupsFromInput(inputs []request_models.GroupInput) ([]dbm.Group, error) {
	groups := make([]dbm.Group, 0, len(inputs))
	for _, in := range inputs {
		if in.Persons < 0 {
			return nil, utils.ErrInvalidInput
		}
		groups = append(groups, dbm.Group{Persons: in.Persons})
	}
	return groups, nil
}

func buildTripResponse(trip *dbm.Trip, shared bool) *response_models.TripResponse {
	out := &response_models.TripResponse{
		ID:         trip.ID.String(),
		Name:       trip.Name,
		FromDate:   utils.FormatDate(trip.FromDate),
		TillDate:   utils.FormatDate(trip.TillDate),
		Days:       trip.DayCount(),
		Archived:   trip.Archived,
		Shared:     shared,
		LastUpdate: utils.FormatRFC3339(trip.LastUpdate),
	}
	for _, g := range trip.Groups {
		out.Groups = append(out.Groups, response_models.GroupResponse{
			ID:      g.ID.String(),
			Persons: g.Persons,
			Seq:     g.Seq,
		})
	}
	return out
}

func (t *TripService) CreateTrip(ctx context.Context, p Principal, req request_models.CreateTripRequest) (*response_models.TripResponse, error) {
	from, till, err := parseDateRange(req.FromDate, req.TillDate)
	if err != nil {
		return nil, err
	}
	groups, err := groupsFromInput(req.Groups)
	if err != nil {
		return nil, err
	}

	trip := dbm.Trip{
		Name:     req.Name,
		FromDate: from,
		TillDate: till,
		OwnerID:  p.UserID,
	}
	if err := t.tripRepo.CreateTrip(ctx, &trip, groups); err != nil {
		return nil, utils.ErrDatabaseError
	}

	trip.Groups = groups
	return buildTripResponse(&trip, false), nil
}

func (t *TripService) GetTrip(ctx context.Context, tripID uuid.UUID, p Principal) (*response_models.TripResponse, error) {
	trip, err := t.access.Authorize(ctx, tripID, p, dbm.AccessRead)
	if err != nil {
		return nil, err
	}
	return buildTripResponse(trip, trip.OwnerID != p.UserID), nil
}

// UpdateTrip edits name, date range and group set. Write access is
// enough; groups are replaced wholesale. Records left outside a
// shrunken range stay stored and simply never render.
func (t *TripService) UpdateTrip(ctx context.Context, tripID uuid.UUID, p Principal, req request_models.UpdateTripRequest) (*response_models.TripResponse, error) {
	trip, err := t.access.Authorize(ctx, tripID, p, dbm.AccessWrite)
	if err != nil {
		return nil, err
	}

	from, till, err := parseDateRange(req.FromDate, req.TillDate)
	if err != nil {
		return nil, err
	}
	groups, err := groupsFromInput(req.Groups)
	if err != nil {
		return nil, err
	}

	trip.Name = req.Name
	trip.FromDate = from
	trip.TillDate = till
	if err := t.tripRepo.UpdateTrip(ctx, trip, groups); err != nil {
		return nil, utils.ErrDatabaseError
	}

	trip.Groups = groups
	return buildTripResponse(trip, trip.OwnerID != p.UserID), nil
}

func (t *TripService) ownerOrAdmin(ctx context.Context, tripID uuid.UUID, p Principal) (*dbm.Trip, error) {
	trip, err := t.tripRepo.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	if !p.IsAdmin && trip.OwnerID != p.UserID {
		return nil, utils.ErrTripNotFound
	}
	return trip, nil
}

func (t *TripService) DeleteTrip(ctx context.Context, tripID uuid.UUID, p Principal) error {
	if _, err := t.ownerOrAdmin(ctx, tripID, p); err != nil {
		return err
	}
	if err := t.tripRepo.DeleteTrip(ctx, tripID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (t *TripService) SetArchived(ctx context.Context, tripID uuid.UUID, p Principal, archived bool) error {
	if _, err := t.ownerOrAdmin(ctx, tripID, p); err != nil {
		return err
	}
	if err := t.tripRepo.SetTripArchived(ctx, tripID, archived); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// ListTrips returns the principal's own trips followed by trips shared
// with them through grants. Shared listings exclude archived trips.
func (t *TripService) ListTrips(ctx context.Context, p Principal) ([]response_models.TripResponse, error) {
	own, err := t.tripRepo.ListTripsByOwner(ctx, p.UserID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	grants, err := t.accessRepo.ListGrantsByUser(ctx, p.UserID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	sharedIDs := make([]uuid.UUID, 0, len(grants))
	for _, g := range grants {
		sharedIDs = append(sharedIDs, g.TripID)
	}
	shared, err := t.tripRepo.ListTripsByIDs(ctx, sharedIDs)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.TripResponse, 0, len(own)+len(shared))
	for i := range own {
		out = append(out, *buildTripResponse(&own[i], false))
	}
	for i := range shared {
		if shared[i].Archived || shared[i].OwnerID == p.UserID {
			continue
		}
		out = append(out, *buildTripResponse(&shared[i], true))
	}
	return out, nil
}
