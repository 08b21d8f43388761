package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/artistlist/artistlist-backend/internal/database/repository"
	"github.com/artistlist/artistlist-backend/internal/models"
	"github.com/artistlist/artistlist-backend/internal/services"
	"github.com/artistlist/artistlist-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ArtistHandler struct {
	artistRepo   *repository.ArtistRepository
	clickService *services.ClickService
}

func NewArtistHandler(db *gorm.DB) *ArtistHandler {
	artistRepo := repository.NewArtistRepository(db)
	adRepo := repository.NewAdRepository(db)

	return &ArtistHandler{
		artistRepo:   artistRepo,
		clickService: services.NewClickService(artistRepo, adRepo),
	}
}

// CreateArtist godoc
// @Summary Create a new artist profile
// @Description Create a new artist profile for the authenticated user
// @Tags artists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateArtistRequest true "Create artist request"
// @Success 201 {object} models.ArtistResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/artists [post]
func (h *ArtistHandler) CreateArtist(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req models.CreateArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	artist := &models.Artist{
		UserID:   userID,
		Name:     req.Name,
		Concept:  req.Concept,
		Location: req.Location,
		Bio:      req.Bio,
	}
	if req.IsPublic != nil {
		artist.IsPublic = *req.IsPublic
	}

	if err := h.artistRepo.Create(artist); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create artist", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toArtistResponse(artist))
}

// GetArtist godoc
// @Summary Get artist profile
// @Description Get a public artist profile by ID
// @Tags artists
// @Accept json
// @Produce json
// @Param id path string true "Artist ID"
// @Success 200 {object} models.ArtistResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/artists/{id} [get]
func (h *ArtistHandler) GetArtist(c *gin.Context) {
	artistID := c.Param("id")

	artist, err := h.artistRepo.GetByID(artistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Artist not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get artist", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toArtistResponse(artist))
}

// ListArtists godoc
// @Summary List public artists
// @Description List public artist profiles with pagination
// @Tags artists
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/artists [get]
func (h *ArtistHandler) ListArtists(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))

	artists, total, err := h.artistRepo.ListPublic(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list artists", "details": err.Error()})
		return
	}

	responses := make([]*models.ArtistResponse, len(artists))
	for i, artist := range artists {
		responses[i] = toArtistResponse(artist)
	}

	c.JSON(http.StatusOK, gin.H{
		"artists":    responses,
		"pagination": utils.CalculatePaginationInfo(int(total), page, pageSize),
	})
}

// ListMyArtists godoc
// @Summary List the caller's artists
// @Description List all artist profiles owned by the authenticated user
// @Tags artists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/artists/mine [get]
func (h *ArtistHandler) ListMyArtists(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	artists, err := h.artistRepo.GetByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list artists", "details": err.Error()})
		return
	}

	responses := make([]*models.ArtistResponse, len(artists))
	for i, artist := range artists {
		responses[i] = toArtistResponse(artist)
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"artists": responses,
	})
}

// GetPromotedArtists godoc
// @Summary Get promoted artists
// @Description Get artists with a live ad campaign, soonest expiry first
// @Tags artists
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/artists/promoted [get]
func (h *ArtistHandler) GetPromotedArtists(c *gin.Context) {
	artists, err := h.artistRepo.ListPromoted(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Failed to get promoted artists", "details": err.Error()})
		return
	}

	responses := make([]*models.ArtistResponse, len(artists))
	for i, artist := range artists {
		responses[i] = toArtistResponse(artist)
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"artists": responses,
	})
}

// RecordClick godoc
// @Summary Record a profile visit
// @Description Count one public visit on an artist profile
// @Tags artists
// @Accept json
// @Produce json
// @Param id path string true "Artist ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/artists/{id}/click [get]
func (h *ArtistHandler) RecordClick(c *gin.Context) {
	artistID := c.Param("id")

	if err := h.clickService.RecordVisit(artistID); err != nil {
		if errors.Is(err, services.ErrArtistNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Artist not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Failed to record visit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Visit recorded"})
}

// toArtistResponse converts an Artist model to its response DTO
func toArtistResponse(artist *models.Artist) *models.ArtistResponse {
	return &models.ArtistResponse{
		ID:            artist.ID,
		UserID:        artist.UserID,
		Name:          artist.Name,
		Concept:       artist.Concept,
		Location:      artist.Location,
		Bio:           artist.Bio,
		IsPublic:      artist.IsPublic,
		IsAdActive:    artist.IsAdActive,
		AdsUntil:      artist.AdsUntil,
		ClickCount:    artist.ClickCount,
		AdsClickCount: artist.AdsClickCount,
		CreatedAt:     artist.CreatedAt.Format(time.RFC3339),
	}
}
