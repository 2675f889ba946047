package services

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"

	dbm "mealtrip/internal/models/db_models"
	"mealtrip/internal/models/response_models"
	"mealtrip/internal/repositories"
	"mealtrip/pkg/utils"
)

// ShareLinkTTL is how long an issued sharing link stays redeemable.
// Re-issuing before expiry extends the same link by this window.
const ShareLinkTTL = 72 * time.Hour

type SharingServiceInterface interface {
	Issue(ctx context.Context, tripID uuid.UUID, p Principal, level string) (*response_models.ShareLinkResponse, error)
	Redeem(ctx context.Context, token string, userID uuid.UUID) (*response_models.RedeemResponse, error)
	Forget(ctx context.Context, tripID uuid.UUID, userID uuid.UUID) error
}

type SharingService struct {
	tripRepo   repositories.TripRepository
	accessRepo repositories.AccessRepository
}

func NewSharingService(tripRepo repositories.TripRepository, accessRepo repositories.AccessRepository) SharingServiceInterface {
	return &SharingService{
		tripRepo:   tripRepo,
		accessRepo: accessRepo,
	}
}

func parseLevel(level string) (int, error) {
	switch level {
	case "read":
		return dbm.AccessRead, nil
	case "write":
		return dbm.AccessWrite, nil
	default:
		return 0, utils.ErrInvalidInput
	}
}

func levelName(level int) string {
	if level >= dbm.AccessWrite {
		return "write"
	}
	return "read"
}

func shareableLink(token string) string {
	return os.Getenv("SHARE_BASE_URL") + "/share/redeem/" + token
}

// Issue hands out a link for (trip, issuer). Only the owner or an
// administrator may issue. A still-live link is reused with a refreshed
// expiry so a trip never accumulates parallel tokens per issuer.
func (s *SharingService) Issue(ctx context.Context, tripID uuid.UUID, p Principal, level string) (*response_models.ShareLinkResponse, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	trip, err := s.tripRepo.GetTripByID(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	if !p.IsAdmin && trip.OwnerID != p.UserID {
		grant, err := s.accessRepo.GetGrant(ctx, p.UserID, tripID)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		if grant == nil {
			return nil, utils.ErrTripNotFound
		}
		return nil, utils.ErrForbidden
	}

	now := time.Now()
	expiresAt := now.Add(ShareLinkTTL).Unix()

	link, err := s.accessRepo.GetLiveLinkByIssuer(ctx, tripID, p.UserID, now.Unix())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	if link != nil {
		if err := s.accessRepo.RefreshLink(ctx, link.ID, expiresAt); err != nil {
			return nil, utils.ErrDatabaseError
		}
		return &response_models.ShareLinkResponse{
			Token:         link.Token,
			ShareableLink: shareableLink(link.Token),
			Level:         levelName(link.Level),
			ExpiresAt:     utils.FormatRFC3339(expiresAt),
		}, nil
	}

	token, err := utils.GenerateSecureToken(16)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	newLink := dbm.SharingLink{
		Token:     token,
		TripID:    tripID,
		UserID:    p.UserID,
		Level:     lvl,
		ExpiresAt: expiresAt,
	}
	if err := s.accessRepo.CreateLink(ctx, &newLink); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.ShareLinkResponse{
		Token:         token,
		ShareableLink: shareableLink(token),
		Level:         level,
		ExpiresAt:     utils.FormatRFC3339(expiresAt),
	}, nil
}

// Redeem converts a live token into a durable grant. The repository
// sweeps every expired link first, then upserts at the maximum of the
// existing and incoming level, so redeeming a read link never
// downgrades a write grant. Redemption is idempotent and leaves the
// link in place for other users.
func (s *SharingService) Redeem(ctx context.Context, token string, userID uuid.UUID) (*response_models.RedeemResponse, error) {
	tripID, level, err := s.accessRepo.RedeemToken(ctx, token, userID, time.Now().Unix())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if tripID == uuid.Nil {
		return nil, utils.ErrLinkNotFound
	}

	return &response_models.RedeemResponse{
		TripID: tripID.String(),
		Level:  levelName(level),
	}, nil
}

// Forget drops the caller's own grant on a trip.
func (s *SharingService) Forget(ctx context.Context, tripID uuid.UUID, userID uuid.UUID) error {
	deleted, err := s.accessRepo.DeleteGrant(ctx, userID, tripID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !deleted {
		return utils.ErrTripNotFound
	}
	return nil
}
