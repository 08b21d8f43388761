package services

import (
	"errors"
	"fmt"

	"github.com/artistlist/artistlist-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ClickArtistStore is the artist persistence surface visit recording needs
type ClickArtistStore interface {
	GetByID(id string) (*models.Artist, error)
	IncrementClicks(id string, adActive bool) error
}

// ClickAdStore is the ad persistence surface visit recording needs
type ClickAdStore interface {
	IncrementRunningClick(artistID string) error
}

// ClickService records public profile visits. It runs on every profile view
// and must stay cheap: two increment statements at most.
type ClickService struct {
	artistRepo ClickArtistStore
	adRepo     ClickAdStore
}

func NewClickService(artistRepo ClickArtistStore, adRepo ClickAdStore) *ClickService {
	return &ClickService{
		artistRepo: artistRepo,
		adRepo:     adRepo,
	}
}

// RecordVisit counts one profile visit. The lifetime counter always moves;
// the ad-attributed counters move only when the artist was flagged promoted
// at the time of the read. A promoted artist with no running ad record is an
// inconsistency the reconciliation job repairs; it never fails the visit.
func (s *ClickService) RecordVisit(artistID string) error {
	artist, err := s.artistRepo.GetByID(artistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrArtistNotFound
		}
		return fmt.Errorf("failed to fetch artist: %w", err)
	}

	if err := s.artistRepo.IncrementClicks(artist.ID, artist.IsAdActive); err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}

	if artist.IsAdActive {
		if err := s.adRepo.IncrementRunningClick(artist.ID); err != nil {
			logrus.Warnf("Failed to attribute click to running ad of artist %s: %v", artist.ID, err)
		}
	}

	return nil
}
