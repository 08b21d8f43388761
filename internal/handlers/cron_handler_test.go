package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/artistlist/artistlist-backend/internal/middleware"
	"github.com/artistlist/artistlist-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type reconcilerStub struct {
	result *services.ReconcileResult
	err    error
	calls  int
}

func (r *reconcilerStub) Reconcile() (*services.ReconcileResult, error) {
	r.calls++
	return r.result, r.err
}

func setupCronRouter(stub *reconcilerStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewCronHandler(stub)
	router.POST("/api/v1/cron/check-expired-ads", middleware.CronSecret(), handler.CheckExpiredAds)
	return router
}

func TestCheckExpiredAds(t *testing.T) {
	sweptAt := time.Date(2026, 8, 29, 3, 0, 0, 0, time.UTC)
	stub := &reconcilerStub{
		result: &services.ReconcileResult{
			Processed: 2,
			Updated:   2,
			Errors:    0,
			Details: []services.ReconcileDetail{
				{AdID: "ad-1", ArtistID: "artist-1", Status: "completed"},
				{ArtistID: "artist-2", Action: "fixed_orphaned_artist"},
			},
			Timestamp: sweptAt,
		},
	}
	router := setupCronRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cron/check-expired-ads", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, stub.calls)

	var body struct {
		OK        bool                      `json:"ok"`
		Message   string                    `json:"message"`
		Timestamp string                    `json:"timestamp"`
		Results   *services.ReconcileResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.OK)
	require.Equal(t, "Expired ads check completed", body.Message)
	// The payload carries the sweep's own instant, not the response time
	require.Equal(t, sweptAt.Format(time.RFC3339), body.Timestamp)
	require.Equal(t, 2, body.Results.Updated)
	require.Len(t, body.Results.Details, 2)
}

func TestCheckExpiredAdsReconcileFailure(t *testing.T) {
	stub := &reconcilerStub{err: errors.New("database unavailable")}
	router := setupCronRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cron/check-expired-ads", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, false, body["ok"])
}

func TestCheckExpiredAdsSecretRequired(t *testing.T) {
	t.Setenv("CRON_SECRET", "sweep-me")

	stub := &reconcilerStub{result: &services.ReconcileResult{}}
	router := setupCronRouter(stub)

	// Missing header
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cron/check-expired-ads", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, 0, stub.calls)

	// Wrong secret
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/cron/check-expired-ads", nil)
	req.Header.Set("X-Cron-Secret", "wrong")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, 0, stub.calls)

	// Correct secret
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/cron/check-expired-ads", nil)
	req.Header.Set("X-Cron-Secret", "sweep-me")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, stub.calls)
}
