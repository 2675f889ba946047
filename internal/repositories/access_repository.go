package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "mealtrip/internal/models/db_models"
)

type AccessRepository interface {
	GetGrant(ctx context.Context, userID, tripID uuid.UUID) (*dbm.TripAccess, error)
	ListGrantsByUser(ctx context.Context, userID uuid.UUID) ([]dbm.TripAccess, error)
	DeleteGrant(ctx context.Context, userID, tripID uuid.UUID) (bool, error)

	GetLiveLinkByIssuer(ctx context.Context, tripID, issuerID uuid.UUID, nowUnix int64) (*dbm.SharingLink, error)
	CreateLink(ctx context.Context, link *dbm.SharingLink) error
	RefreshLink(ctx context.Context, linkID uuid.UUID, expiresAt int64) error

	// RedeemToken sweeps every expired link, then resolves token and
	// upserts a grant at max(existing level, link level), all in one
	// transaction. Returns uuid.Nil when the token is absent or was
	// just swept.
	RedeemToken(ctx context.Context, token string, userID uuid.UUID, nowUnix int64) (uuid.UUID, int, error)
}

type accessRepository struct {
	db *gorm.DB
}

func NewAccessRepository(db *gorm.DB) AccessRepository {
	return &accessRepository{db: db}
}

func (r *accessRepository) GetGrant(ctx context.Context, userID, tripID uuid.UUID) (*dbm.TripAccess, error) {
	var grant dbm.TripAccess
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND trip_id = ?", userID, tripID).
		First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &grant, nil
}

func (r *accessRepository) ListGrantsByUser(ctx context.Context, userID uuid.UUID) ([]dbm.TripAccess, error) {
	var grants []dbm.TripAccess
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&grants).Error
	if err != nil {
		return nil, err
	}
	return grants, nil
}

func (r *accessRepository) DeleteGrant(ctx context.Context, userID, tripID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Unscoped().
		Where("user_id = ? AND trip_id = ?", userID, tripID).
		Delete(&dbm.TripAccess{})
	return res.RowsAffected > 0, res.Error
}

func (r *accessRepository) GetLiveLinkByIssuer(ctx context.Context, tripID, issuerID uuid.UUID, nowUnix int64) (*dbm.SharingLink, error) {
	var link dbm.SharingLink
	err := r.db.WithContext(ctx).
		Where("trip_id = ? AND user_id = ? AND expires_at > ?", tripID, issuerID, nowUnix).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *accessRepository) CreateLink(ctx context.Context, link *dbm.SharingLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *accessRepository) RefreshLink(ctx context.Context, linkID uuid.UUID, expiresAt int64) error {
	return r.db.WithContext(ctx).Model(&dbm.SharingLink{}).
		Where("id = ?", linkID).
		Update("expires_at", expiresAt).Error
}

func (r *accessRepository) RedeemToken(ctx context.Context, token string, userID uuid.UUID, nowUnix int64) (uuid.UUID, int, error) {
	tripID := uuid.Nil
	level := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Global lazy sweep: every expired link goes, not just this token.
		err := tx.Unscoped().
			Where("expires_at <= ?", nowUnix).
			Delete(&dbm.SharingLink{}).Error
		if err != nil {
			return err
		}

		var link dbm.SharingLink
		err = tx.Where("token = ?", token).First(&link).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		var grant dbm.TripAccess
		err = tx.Where("user_id = ? AND trip_id = ?", userID, link.TripID).
			First(&grant).Error
		switch {
		case err == nil:
			// Upgrade only, never downgrade.
			if link.Level > grant.Level {
				grant.Level = link.Level
				if err := tx.Save(&grant).Error; err != nil {
					return err
				}
			}
			level = grant.Level
		case errors.Is(err, gorm.ErrRecordNotFound):
			grant = dbm.TripAccess{
				UserID: userID,
				TripID: link.TripID,
				Level:  link.Level,
			}
			if err := tx.Create(&grant).Error; err != nil {
				return err
			}
			level = link.Level
		default:
			return err
		}

		tripID = link.TripID
		return nil
	})
	return tripID, level, err
}
