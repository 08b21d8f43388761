package models

import (
	"time"
)

// Artist represents an artist profile listed on the marketplace
type Artist struct {
	ID       string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID   string `json:"user_id" gorm:"not null;index;type:uuid"`
	Name     string `json:"name" gorm:"type:varchar(255);not null"`
	Concept  string `json:"concept" gorm:"type:varchar(255)"`
	Location string `json:"location" gorm:"type:varchar(255)"`
	Bio      string `json:"bio" gorm:"type:text"`
	IsPublic bool   `json:"is_public" gorm:"default:false;index"`

	// Promotion state. IsAdActive is true only while a running ad exists;
	// AdsUntil is the expiry instant of that ad and is null otherwise.
	IsAdActive    bool       `json:"is_ad_active" gorm:"default:false;index"`
	AdsUntil      *time.Time `json:"ads_until" gorm:"index"`
	ClickCount    int64      `json:"click_count" gorm:"default:0"`
	AdsClickCount int64      `json:"ads_click_count" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Ads []Ad `json:"ads,omitempty" gorm:"foreignKey:ArtistID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Artist model
func (Artist) TableName() string {
	return "artists"
}

// CreateArtistRequest represents the request to create a new artist profile
type CreateArtistRequest struct {
	Name     string `json:"name" binding:"required" example:"Neon Tide"`
	Concept  string `json:"concept" example:"synthwave duo"`
	Location string `json:"location" example:"Budapest"`
	Bio      string `json:"bio" example:"Two synths, one drum machine."`
	IsPublic *bool  `json:"is_public"`
}

// ArtistResponse represents the response for artist operations
type ArtistResponse struct {
	ID            string     `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID        string     `json:"user_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	Name          string     `json:"name" example:"Neon Tide"`
	Concept       string     `json:"concept" example:"synthwave duo"`
	Location      string     `json:"location" example:"Budapest"`
	Bio           string     `json:"bio"`
	IsPublic      bool       `json:"is_public" example:"true"`
	IsAdActive    bool       `json:"is_ad_active" example:"false"`
	AdsUntil      *time.Time `json:"ads_until"`
	ClickCount    int64      `json:"click_count" example:"42"`
	AdsClickCount int64      `json:"ads_click_count" example:"7"`
	CreatedAt     string     `json:"created_at" example:"2025-01-09T10:30:00Z"`
}
