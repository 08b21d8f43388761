package models

import (
	"time"
)

// AdStatus represents the lifecycle state of an ad campaign
type AdStatus string

const (
	AdStatusRunning   AdStatus = "running"
	AdStatusCompleted AdStatus = "completed"
)

// Ad represents a time-bounded paid promotion of one artist's profile.
// At most one running ad exists per artist at any time; the transition to
// completed happens only through the expiry reconciliation job.
type Ad struct {
	ID       string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ArtistID string `json:"artist_id" gorm:"not null;index;type:uuid"`
	Title    string `json:"title" gorm:"type:varchar(255);not null"`

	// AdDays is only set when the campaign was requested by day count.
	// AdEndDate is always set, normalized to the last instant of its day.
	AdDays    *int      `json:"ad_days"`
	AdEndDate time.Time `json:"ad_end_date" gorm:"not null;index"`
	Status    AdStatus  `json:"status" gorm:"type:varchar(20);not null;default:'running';index"`

	ClickCount int64     `json:"click_count" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Ad model
func (Ad) TableName() string {
	return "ads"
}

// CreateAdRequest represents the request to start a new ad campaign.
// AdDays and AdEndDate are mutually exclusive request shapes; exactly one
// must be provided.
type CreateAdRequest struct {
	ArtistID  string     `json:"artist_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Title     string     `json:"title" binding:"required" example:"Summer Promo"`
	AdDays    *int       `json:"ad_days" example:"7"`
	AdEndDate *time.Time `json:"ad_end_date" example:"2025-08-21T00:00:00Z"`
}

// CreateAdResponse represents the response after starting a campaign
type CreateAdResponse struct {
	ID string `json:"id" example:"550e8400-e29b-41d4-a716-446655440002"`
}

// AdResponse represents the response for ad queries
type AdResponse struct {
	ID         string    `json:"id"`
	ArtistID   string    `json:"artist_id"`
	Title      string    `json:"title"`
	AdDays     *int      `json:"ad_days"`
	AdEndDate  time.Time `json:"ad_end_date"`
	Status     AdStatus  `json:"status"`
	ClickCount int64     `json:"click_count"`
	CreatedAt  string    `json:"created_at"`
}
