package handlers

import (
	"net/http"
	"time"

	"github.com/artistlist/artistlist-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Reconciler runs one expiry reconciliation sweep
type Reconciler interface {
	Reconcile() (*services.ReconcileResult, error)
}

type CronHandler struct {
	reconciler Reconciler
}

func NewCronHandler(reconciler Reconciler) *CronHandler {
	return &CronHandler{
		reconciler: reconciler,
	}
}

// CheckExpiredAds godoc
// @Summary Run the expiry reconciliation
// @Description Close out expired ad campaigns and repair stale artist flags. Intended for an external scheduler; also usable manually for diagnostics.
// @Tags cron
// @Accept json
// @Produce json
// @Param X-Cron-Secret header string false "Shared cron secret"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/cron/check-expired-ads [post]
func (h *CronHandler) CheckExpiredAds(c *gin.Context) {
	results, err := h.reconciler.Reconcile()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":      false,
			"message": "Error processing expired ads",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"message":   "Expired ads check completed",
		"timestamp": results.Timestamp.Format(time.RFC3339),
		"results":   results,
	})
}
