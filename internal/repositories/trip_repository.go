package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "mealtrip/internal/models/db_models"
)

type TripRepository interface {
	CreateTrip(ctx context.Context, trip *dbm.Trip, groups []dbm.Group) error
	GetTripByID(ctx context.Context, tripID uuid.UUID) (*dbm.Trip, error)
	UpdateTrip(ctx context.Context, trip *dbm.Trip, groups []dbm.Group) error
	SetTripArchived(ctx context.Context, tripID uuid.UUID, archived bool) error
	DeleteTrip(ctx context.Context, tripID uuid.UUID) error
	ListTripsByOwner(ctx context.Context, ownerID uuid.UUID) ([]dbm.Trip, error)
	ListTripsByIDs(ctx context.Context, tripIDs []uuid.UUID) ([]dbm.Trip, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) CreateTrip(ctx context.Context, trip *dbm.Trip, groups []dbm.Group) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trip).Error; err != nil {
			return err
		}
		for i := range groups {
			groups[i].TripID = trip.ID
			groups[i].Seq = i
		}
		if len(groups) > 0 {
			if err := tx.Create(&groups).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *tripRepository) GetTripByID(ctx context.Context, tripID uuid.UUID) (*dbm.Trip, error) {
	var trip dbm.Trip
	err := r.db.WithContext(ctx).
		Where("id = ?", tripID).
		Preload("Groups", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		First(&trip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

// UpdateTrip saves the mutable trip fields and replaces the group set
// wholesale. Groups are never patched in place.
func (r *tripRepository) UpdateTrip(ctx context.Context, trip *dbm.Trip, groups []dbm.Group) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&dbm.Trip{}).
			Where("id = ?", trip.ID).
			Updates(map[string]interface{}{
				"name":      trip.Name,
				"from_date": trip.FromDate,
				"till_date": trip.TillDate,
			}).Error
		if err != nil {
			return err
		}
		if err := tx.Unscoped().Where("trip_id = ?", trip.ID).Delete(&dbm.Group{}).Error; err != nil {
			return err
		}
		for i := range groups {
			groups[i].TripID = trip.ID
			groups[i].Seq = i
		}
		if len(groups) > 0 {
			if err := tx.Create(&groups).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *tripRepository) SetTripArchived(ctx context.Context, tripID uuid.UUID, archived bool) error {
	return r.db.WithContext(ctx).Model(&dbm.Trip{}).
		Where("id = ?", tripID).
		Update("archived", archived).Error
}

func (r *tripRepository) DeleteTrip(ctx context.Context, tripID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("trip_id = ?", tripID).Delete(&dbm.MealRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("trip_id = ?", tripID).Delete(&dbm.Group{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("trip_id = ?", tripID).Delete(&dbm.TripAccess{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("trip_id = ?", tripID).Delete(&dbm.SharingLink{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("id = ?", tripID).Delete(&dbm.Trip{}).Error
	})
}

func (r *tripRepository) ListTripsByOwner(ctx context.Context, ownerID uuid.UUID) ([]dbm.Trip, error) {
	var trips []dbm.Trip
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("from_date ASC").
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripRepository) ListTripsByIDs(ctx context.Context, tripIDs []uuid.UUID) ([]dbm.Trip, error) {
	if len(tripIDs) == 0 {
		return nil, nil
	}
	var trips []dbm.Trip
	err := r.db.WithContext(ctx).
		Where("id IN ?", tripIDs).
		Order("from_date ASC").
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}
