package services

import (
	"fmt"
	"time"

	"github.com/artistlist/artistlist-backend/internal/models"

	"github.com/sirupsen/logrus"
)

// ReconcileAdStore is the ad persistence surface the reconciliation job needs
type ReconcileAdStore interface {
	FindExpiredRunning(now time.Time) ([]*models.Ad, error)
	MarkCompleted(id string) error
}

// ReconcileArtistStore is the artist persistence surface the reconciliation job needs
type ReconcileArtistStore interface {
	FindOrphaned(now time.Time) ([]*models.Artist, error)
	ClearAdState(id string, resetAdClicks bool) (bool, error)
}

// ReconcileDetail describes the outcome for one ad or artist in a sweep
type ReconcileDetail struct {
	AdID     string `json:"adId,omitempty"`
	ArtistID string `json:"artistId,omitempty"`
	Title    string `json:"title,omitempty"`
	Status   string `json:"status,omitempty"`
	Name     string `json:"name,omitempty"`
	Action   string `json:"action,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ReconcileResult aggregates one sweep of the reconciliation job. Timestamp
// is the instant the sweep evaluated expiry against; it is reported as a
// top-level response field, not inside the results object.
type ReconcileResult struct {
	Processed int               `json:"processed"`
	Updated   int               `json:"updated"`
	Errors    int               `json:"errors"`
	Details   []ReconcileDetail `json:"details"`
	Timestamp time.Time         `json:"-"`
}

// ReconcileService closes out ad campaigns whose end date has passed and
// repairs artist records whose promotion flags went stale. Each item is
// handled independently so one bad record never aborts the sweep, and a
// sweep that finds nothing to do changes nothing, so back-to-back runs are
// idempotent.
type ReconcileService struct {
	adRepo     ReconcileAdStore
	artistRepo ReconcileArtistStore
}

func NewReconcileService(adRepo ReconcileAdStore, artistRepo ReconcileArtistStore) *ReconcileService {
	return &ReconcileService{
		adRepo:     adRepo,
		artistRepo: artistRepo,
	}
}

// Reconcile runs both passes and reports what happened
func (s *ReconcileService) Reconcile() (*ReconcileResult, error) {
	now := time.Now()
	result := &ReconcileResult{Details: []ReconcileDetail{}, Timestamp: now}

	// Pass 1: expire running ads whose end date is in the past
	expiredAds, err := s.adRepo.FindExpiredRunning(now)
	if err != nil {
		return nil, fmt.Errorf("failed to query expired ads: %w", err)
	}
	logrus.Infof("Found %d expired ads to process", len(expiredAds))

	for _, ad := range expiredAds {
		result.Processed++
		if err := s.expireAd(ad); err != nil {
			logrus.Errorf("Error processing expired ad %s: %v", ad.ID, err)
			result.Errors++
			result.Details = append(result.Details, ReconcileDetail{
				AdID:     ad.ID,
				ArtistID: ad.ArtistID,
				Title:    ad.Title,
				Error:    err.Error(),
			})
			continue
		}
		result.Updated++
		result.Details = append(result.Details, ReconcileDetail{
			AdID:     ad.ID,
			ArtistID: ad.ArtistID,
			Title:    ad.Title,
			Status:   string(models.AdStatusCompleted),
		})
	}

	// Pass 2: repair artists still flagged promoted with a stale or missing
	// expiry. These come from partial failures in campaign creation.
	orphanedArtists, err := s.artistRepo.FindOrphaned(now)
	if err != nil {
		return nil, fmt.Errorf("failed to query orphaned artists: %w", err)
	}
	logrus.Infof("Found %d orphaned artists to fix", len(orphanedArtists))

	for _, artist := range orphanedArtists {
		if _, err := s.artistRepo.ClearAdState(artist.ID, false); err != nil {
			logrus.Errorf("Error fixing orphaned artist %s: %v", artist.ID, err)
			result.Errors++
			result.Details = append(result.Details, ReconcileDetail{
				ArtistID: artist.ID,
				Name:     artist.Name,
				Error:    err.Error(),
			})
			continue
		}
		result.Updated++
		result.Details = append(result.Details, ReconcileDetail{
			ArtistID: artist.ID,
			Name:     artist.Name,
			Action:   "fixed_orphaned_artist",
		})
	}

	logrus.Infof("Reconciliation completed: %d processed, %d updated, %d errors",
		result.Processed, result.Updated, result.Errors)
	return result, nil
}

// expireAd closes one campaign: the ad becomes completed, the owning artist
// loses its promotion flags and the campaign click counter is reset.
func (s *ReconcileService) expireAd(ad *models.Ad) error {
	if err := s.adRepo.MarkCompleted(ad.ID); err != nil {
		return fmt.Errorf("failed to complete ad: %w", err)
	}
	cleared, err := s.artistRepo.ClearAdState(ad.ArtistID, true)
	if err != nil {
		return fmt.Errorf("failed to clear artist ad state: %w", err)
	}
	if !cleared {
		return fmt.Errorf("artist %s not found", ad.ArtistID)
	}
	return nil
}
