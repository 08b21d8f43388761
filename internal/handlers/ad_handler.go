package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/artistlist/artistlist-backend/internal/database/repository"
	"github.com/artistlist/artistlist-backend/internal/models"
	"github.com/artistlist/artistlist-backend/internal/services"
	"github.com/artistlist/artistlist-backend/internal/services/excel"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdHandler struct {
	campaignService *services.CampaignService
	excelService    *excel.Service
	artistRepo      *repository.ArtistRepository
	userRepo        *repository.UserRepository
	txRepo          *repository.TransactionRepository
}

func NewAdHandler(db *gorm.DB, rabbitMQService *services.RabbitMQService, exportsDir string) *AdHandler {
	artistRepo := repository.NewArtistRepository(db)
	adRepo := repository.NewAdRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	userRepo := repository.NewUserRepository(db)

	billingService := services.NewBillingService(txRepo, rabbitMQService)
	campaignService := services.NewCampaignService(artistRepo, adRepo, billingService)
	excelService := excel.NewExcelService(artistRepo, adRepo, exportsDir)

	return &AdHandler{
		campaignService: campaignService,
		excelService:    excelService,
		artistRepo:      artistRepo,
		userRepo:        userRepo,
		txRepo:          txRepo,
	}
}

// CreateAd godoc
// @Summary Start an ad campaign
// @Description Start a new ad campaign for an artist. Duration is given either as a day count or as an explicit end date.
// @Tags ads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateAdRequest true "Create ad request"
// @Success 201 {object} models.CreateAdResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/ads [post]
func (h *AdHandler) CreateAd(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req models.CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	userEmail := ""
	if user, err := h.userRepo.GetByID(userID); err == nil {
		userEmail = user.Email
		if userEmail == "" {
			userEmail = user.Username
		}
	}

	response, err := h.campaignService.CreateAd(userEmail, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrArtistNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Artist not found"})
		case errors.Is(err, services.ErrActiveCampaignExists):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "message": "You already have a running ad campaign for this artist"})
		case errors.Is(err, services.ErrInvalidAdDuration):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Failed to create ad", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "message": "Ad added", "id": response.ID})
}

// GetAdsByArtist godoc
// @Summary Get an artist's ads
// @Description Get all ad records for an artist, newest first
// @Tags ads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param artistId path string true "Artist ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/ads/{artistId} [get]
func (h *AdHandler) GetAdsByArtist(c *gin.Context) {
	artistID := c.Param("artistId")

	ads, err := h.campaignService.GetAdsByArtist(artistID)
	if err != nil {
		if errors.Is(err, services.ErrAdNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Ad not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Failed to get ads", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Ads fetched", "ads": ads})
}

// GetActiveAdsCount godoc
// @Summary Count the caller's live campaigns
// @Description Count the authenticated user's artists with an active, unexpired ad
// @Tags ads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/ads/active-count [get]
func (h *AdHandler) GetActiveAdsCount(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	count, err := h.artistRepo.CountActiveByUser(userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Failed to count active ads", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "activeAdsCount": count})
}

// GetArtistTransactions godoc
// @Summary Get an artist's ledger entries
// @Description Get the billing ledger entries recorded for an artist's campaigns, newest first
// @Tags ads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param artistId path string true "Artist ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/ads/{artistId}/transactions [get]
func (h *AdHandler) GetArtistTransactions(c *gin.Context) {
	artistID := c.Param("artistId")

	transactions, err := h.txRepo.GetByArtistID(artistID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Failed to get transactions", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "transactions": transactions})
}

// ExportAdsReport godoc
// @Summary Export an artist's campaign report
// @Description Export an artist's ad history and click analytics as an Excel file
// @Tags ads
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param artistId path string true "Artist ID"
// @Success 200 {file} binary
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/ads/{artistId}/export [get]
func (h *AdHandler) ExportAdsReport(c *gin.Context) {
	artistID := c.Param("artistId")

	result, err := h.excelService.ExportAdsReport(artistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Artist not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Failed to export ads report", "details": err.Error()})
		return
	}

	c.FileAttachment(result.FilePath, result.Filename)
}
