package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "mealtrip/internal/models/db_models"
)

type MealRepository interface {
	// AddRecord merges into an existing (trip, day, meal, product) row by
	// summing mass, or inserts a new row, and touches the trip's
	// last_update in the same transaction.
	AddRecord(ctx context.Context, tripID uuid.UUID, dayNumber int, meal int, productID uuid.UUID, mass float64) (*dbm.MealRecord, error)
	RemoveRecord(ctx context.Context, tripID uuid.UUID, recordID uuid.UUID) (bool, error)
	ListByDay(ctx context.Context, tripID uuid.UUID, dayNumber int) ([]dbm.MealRecord, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]dbm.MealRecord, error)
	// CycleDays copies the period source days starting at srcStart onto
	// [dstStart, dstEnd] with modular repetition, as one transaction.
	// Validation belongs to the caller; this is the mechanical copy.
	CycleDays(ctx context.Context, tripID uuid.UUID, srcStart, period, dstStart, dstEnd int, overwrite bool) error
}

type mealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

func touchTrip(tx *gorm.DB, tripID uuid.UUID) error {
	return tx.Model(&dbm.Trip{}).
		Where("id = ?", tripID).
		Update("last_update", time.Now().Unix()).Error
}

func (r *mealRepository) AddRecord(ctx context.Context, tripID uuid.UUID, dayNumber int, meal int, productID uuid.UUID, mass float64) (*dbm.MealRecord, error) {
	var out *dbm.MealRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing dbm.MealRecord
		err := tx.Where("trip_id = ? AND day_number = ? AND meal = ? AND product_id = ?",
			tripID, dayNumber, meal, productID).
			First(&existing).Error

		switch {
		case err == nil:
			existing.Mass += mass
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			out = &existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			rec := dbm.MealRecord{
				TripID:    tripID,
				DayNumber: dayNumber,
				Meal:      meal,
				ProductID: productID,
				Mass:      mass,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
			out = &rec
		default:
			return err
		}

		return touchTrip(tx, tripID)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mealRepository) RemoveRecord(ctx context.Context, tripID uuid.UUID, recordID uuid.UUID) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().
			Where("id = ? AND trip_id = ?", recordID, tripID).
			Delete(&dbm.MealRecord{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return touchTrip(tx, tripID)
	})
	return deleted, err
}

func (r *mealRepository) ListByDay(ctx context.Context, tripID uuid.UUID, dayNumber int) ([]dbm.MealRecord, error) {
	var records []dbm.MealRecord
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND day_number = ?", tripID, dayNumber).
		Preload("Product").
		Order("meal ASC, created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *mealRepository) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]dbm.MealRecord, error) {
	var records []dbm.MealRecord
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Preload("Product").
		Order("day_number ASC, meal ASC, created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *mealRepository) CycleDays(ctx context.Context, tripID uuid.UUID, srcStart, period, dstStart, dstEnd int, overwrite bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if overwrite {
			err := tx.Unscoped().
				Where("trip_id = ? AND day_number BETWEEN ? AND ?", tripID, dstStart, dstEnd).
				Delete(&dbm.MealRecord{}).Error
			if err != nil {
				return err
			}
		}

		var source []dbm.MealRecord
		err := tx.Where("trip_id = ? AND day_number >= ? AND day_number < ?",
			tripID, srcStart, srcStart+period).
			Find(&source).Error
		if err != nil {
			return err
		}

		byOffset := make(map[int][]dbm.MealRecord)
		for _, rec := range source {
			off := rec.DayNumber - srcStart
			byOffset[off] = append(byOffset[off], rec)
		}

		var copies []dbm.MealRecord
		for d := dstStart; d <= dstEnd; d++ {
			idx := (d - dstStart) % period
			for _, rec := range byOffset[idx] {
				copies = append(copies, dbm.MealRecord{
					TripID:    tripID,
					DayNumber: d,
					Meal:      rec.Meal,
					ProductID: rec.ProductID,
					Mass:      rec.Mass,
				})
			}
		}
		if len(copies) > 0 {
			if err := tx.Create(&copies).Error; err != nil {
				return err
			}
		}

		return touchTrip(tx, tripID)
	})
}
