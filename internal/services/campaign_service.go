package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/artistlist/artistlist-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	// ErrArtistNotFound is returned when the referenced artist does not exist
	ErrArtistNotFound = errors.New("artist not found")
	// ErrActiveCampaignExists is returned when the artist already has a running ad
	ErrActiveCampaignExists = errors.New("artist already has an active ad campaign")
	// ErrInvalidAdDuration is returned when neither a day count nor an end date was given
	ErrInvalidAdDuration = errors.New("either ad_days or ad_end_date must be provided")
	// ErrAdNotFound is returned when an artist has no ad records
	ErrAdNotFound = errors.New("ad not found")
)

// CampaignArtistStore is the artist persistence surface the campaign service needs
type CampaignArtistStore interface {
	GetByID(id string) (*models.Artist, error)
	ActivateAd(id string, until time.Time) (bool, error)
}

// CampaignAdStore is the ad persistence surface the campaign service needs
type CampaignAdStore interface {
	Create(ad *models.Ad) error
	GetByArtistID(artistID string) ([]*models.Ad, error)
}

// AdLedger records the pending charge for a new campaign
type AdLedger interface {
	RecordAdCharge(artistID, userEmail string, days int) (*models.Transaction, error)
}

type CampaignService struct {
	artistRepo CampaignArtistStore
	adRepo     CampaignAdStore
	ledger     AdLedger
}

func NewCampaignService(artistRepo CampaignArtistStore, adRepo CampaignAdStore, ledger AdLedger) *CampaignService {
	return &CampaignService{
		artistRepo: artistRepo,
		adRepo:     adRepo,
		ledger:     ledger,
	}
}

// CreateAd starts a new ad campaign for an artist. The artist must not have
// a running campaign; that is enforced by a single conditional update on the
// artist record, so two near-simultaneous requests cannot both win.
func (s *CampaignService) CreateAd(userEmail string, req *models.CreateAdRequest) (*models.CreateAdResponse, error) {
	artist, err := s.artistRepo.GetByID(req.ArtistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArtistNotFound
		}
		return nil, fmt.Errorf("failed to fetch artist: %w", err)
	}

	adsUntil, err := resolveAdsUntil(req, time.Now())
	if err != nil {
		return nil, err
	}

	activated, err := s.artistRepo.ActivateAd(artist.ID, adsUntil)
	if err != nil {
		return nil, fmt.Errorf("failed to activate ad on artist: %w", err)
	}
	if !activated {
		return nil, ErrActiveCampaignExists
	}

	// The ledger insert is best-effort: a failure here must not take the
	// campaign down with it.
	days := daysLeft(adsUntil, time.Now())
	if req.AdDays != nil {
		days = *req.AdDays
	}
	if _, err := s.ledger.RecordAdCharge(artist.ID, userEmail, days); err != nil {
		logrus.Warnf("Failed to record ad charge for artist %s: %v", artist.ID, err)
	}

	ad := &models.Ad{
		ArtistID:  artist.ID,
		Title:     req.Title,
		AdDays:    req.AdDays,
		AdEndDate: adsUntil,
		Status:    models.AdStatusRunning,
	}
	if err := s.adRepo.Create(ad); err != nil {
		// The artist is left flagged active with no running ad; the expiry
		// reconciliation job repairs exactly this state.
		return nil, fmt.Errorf("failed to create ad record: %w", err)
	}

	return &models.CreateAdResponse{ID: ad.ID}, nil
}

// GetAdsByArtist retrieves an artist's campaign history, newest first
func (s *CampaignService) GetAdsByArtist(artistID string) ([]*models.AdResponse, error) {
	ads, err := s.adRepo.GetByArtistID(artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ads: %w", err)
	}
	if len(ads) == 0 {
		return nil, ErrAdNotFound
	}

	responses := make([]*models.AdResponse, len(ads))
	for i, ad := range ads {
		responses[i] = &models.AdResponse{
			ID:         ad.ID,
			ArtistID:   ad.ArtistID,
			Title:      ad.Title,
			AdDays:     ad.AdDays,
			AdEndDate:  ad.AdEndDate,
			Status:     ad.Status,
			ClickCount: ad.ClickCount,
			CreatedAt:  ad.CreatedAt.Format(time.RFC3339),
		}
	}
	return responses, nil
}

// resolveAdsUntil normalizes the two mutually exclusive request shapes into
// the single expiry instant. An explicit end date wins over a day count, and
// the result must lie in the future: activating an artist with an already
// expired ads_until would break the promotion invariant and price the
// campaign at a negative day count.
func resolveAdsUntil(req *models.CreateAdRequest, now time.Time) (time.Time, error) {
	switch {
	case req.AdEndDate != nil:
		until := endOfDay(*req.AdEndDate)
		if !until.After(now) {
			return time.Time{}, fmt.Errorf("%w: ad_end_date must be in the future", ErrInvalidAdDuration)
		}
		return until, nil
	case req.AdDays != nil:
		if *req.AdDays < 1 {
			return time.Time{}, fmt.Errorf("%w: ad_days must be at least 1", ErrInvalidAdDuration)
		}
		return endOfDay(now.AddDate(0, 0, *req.AdDays)), nil
	default:
		return time.Time{}, ErrInvalidAdDuration
	}
}

// endOfDay moves t to the last instant of its calendar day so a campaign
// always covers the whole final day.
func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// daysLeft is the pricing basis when no explicit day count was requested
func daysLeft(until, now time.Time) int {
	return int(math.Ceil(until.Sub(now).Hours() / 24))
}
