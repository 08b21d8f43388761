package repository

import (
	"time"

	"github.com/artistlist/artistlist-backend/internal/models"

	"gorm.io/gorm"
)

type AdRepository struct {
	db *gorm.DB
}

func NewAdRepository(db *gorm.DB) *AdRepository {
	return &AdRepository{db: db}
}

// Create creates a new ad record
func (r *AdRepository) Create(ad *models.Ad) error {
	return r.db.Create(ad).Error
}

// GetByArtistID retrieves all ads ever created for an artist, newest first
func (r *AdRepository) GetByArtistID(artistID string) ([]*models.Ad, error) {
	var ads []*models.Ad
	err := r.db.Where("artist_id = ?", artistID).
		Order("created_at DESC").
		Find(&ads).Error
	return ads, err
}

// FindExpiredRunning returns running ads whose end date is strictly in the
// past. The strict comparison keeps campaigns created after the query
// snapshot out of the batch.
func (r *AdRepository) FindExpiredRunning(now time.Time) ([]*models.Ad, error) {
	var ads []*models.Ad
	err := r.db.
		Where("status = ? AND ad_end_date < ?", models.AdStatusRunning, now).
		Find(&ads).Error
	return ads, err
}

// MarkCompleted transitions an ad to completed. The transition is terminal.
func (r *AdRepository) MarkCompleted(id string) error {
	return r.db.Model(&models.Ad{}).
		Where("id = ?", id).
		Update("status", models.AdStatusCompleted).Error
}

// IncrementRunningClick bumps the click counter on the artist's running ad.
// Matching zero rows is not an error: visit recording tolerates the flag
// and the ad record being momentarily out of step.
func (r *AdRepository) IncrementRunningClick(artistID string) error {
	return r.db.Model(&models.Ad{}).
		Where("artist_id = ? AND status = ?", artistID, models.AdStatusRunning).
		UpdateColumn("click_count", gorm.Expr("click_count + 1")).Error
}
