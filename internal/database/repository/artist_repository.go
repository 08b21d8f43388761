package repository

import (
	"time"

	"github.com/artistlist/artistlist-backend/internal/models"

	"gorm.io/gorm"
)

type ArtistRepository struct {
	db *gorm.DB
}

func NewArtistRepository(db *gorm.DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// Create creates a new artist profile
func (r *ArtistRepository) Create(artist *models.Artist) error {
	return r.db.Create(artist).Error
}

// GetByID retrieves an artist by ID
func (r *ArtistRepository) GetByID(id string) (*models.Artist, error) {
	var artist models.Artist
	err := r.db.First(&artist, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

// GetByUserID retrieves all artists owned by a user
func (r *ArtistRepository) GetByUserID(userID string) ([]*models.Artist, error) {
	var artists []*models.Artist
	err := r.db.Where("user_id = ?", userID).Find(&artists).Error
	return artists, err
}

// ActivateAd flips is_ad_active from false to true and stores the expiry
// instant in one conditional update. It reports false when the artist
// already had an active ad, which is how concurrent campaign creations for
// the same artist are fenced.
func (r *ArtistRepository) ActivateAd(id string, until time.Time) (bool, error) {
	res := r.db.Model(&models.Artist{}).
		Where("id = ? AND is_ad_active = ?", id, false).
		Updates(map[string]interface{}{
			"is_ad_active": true,
			"ads_until":    until,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ClearAdState resets an artist's promotion flags. The ad click counter is
// only zeroed when a campaign actually completed; orphan repair leaves it
// untouched.
func (r *ArtistRepository) ClearAdState(id string, resetAdClicks bool) (bool, error) {
	updates := map[string]interface{}{
		"is_ad_active": false,
		"ads_until":    nil,
	}
	if resetAdClicks {
		updates["ads_click_count"] = 0
	}
	res := r.db.Model(&models.Artist{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IncrementClicks bumps the lifetime visit counter, and the ad-attributed
// counter as well when the profile is currently promoted. Both increments
// happen in the database so concurrent visits never lose updates.
func (r *ArtistRepository) IncrementClicks(id string, adActive bool) error {
	updates := map[string]interface{}{
		"click_count": gorm.Expr("click_count + 1"),
	}
	if adActive {
		updates["ads_click_count"] = gorm.Expr("ads_click_count + 1")
	}
	return r.db.Model(&models.Artist{}).Where("id = ?", id).UpdateColumns(updates).Error
}

// FindOrphaned returns artists flagged as promoted whose expiry is stale or
// missing. These are leftovers of partial failures and are repaired by the
// reconciliation job.
func (r *ArtistRepository) FindOrphaned(now time.Time) ([]*models.Artist, error) {
	var artists []*models.Artist
	err := r.db.
		Where("is_ad_active = ?", true).
		Where("ads_until < ? OR ads_until IS NULL", now).
		Find(&artists).Error
	return artists, err
}

// ListPromoted returns artists with a live promotion, soonest expiry first
func (r *ArtistRepository) ListPromoted(now time.Time) ([]*models.Artist, error) {
	var artists []*models.Artist
	err := r.db.
		Where("is_ad_active = ? AND ads_until > ?", true, now).
		Order("ads_until ASC").
		Find(&artists).Error
	return artists, err
}

// ListPublic returns public artist profiles with pagination
func (r *ArtistRepository) ListPublic(page, pageSize int) ([]*models.Artist, int64, error) {
	var artists []*models.Artist
	var total int64

	query := r.db.Model(&models.Artist{}).Where("is_public = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&artists).Error
	return artists, total, err
}

// CountActiveByUser counts a user's artists with a live promotion
func (r *ArtistRepository) CountActiveByUser(userID string, now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Artist{}).
		Where("user_id = ? AND is_ad_active = ? AND ads_until > ?", userID, true, now).
		Count(&count).Error
	return count, err
}
