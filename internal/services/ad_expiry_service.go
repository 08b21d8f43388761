package services

import (
	"time"

	"github.com/artistlist/artistlist-backend/internal/database/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AdExpiryService runs the expiry reconciliation on a fixed interval. The
// same sweep is reachable through the cron HTTP trigger for external
// schedulers and manual diagnostics.
type AdExpiryService struct {
	reconcileService *ReconcileService
	interval         time.Duration
	stopChan         chan bool
}

func NewAdExpiryService(db *gorm.DB) *AdExpiryService {
	adRepo := repository.NewAdRepository(db)
	artistRepo := repository.NewArtistRepository(db)
	return &AdExpiryService{
		reconcileService: NewReconcileService(adRepo, artistRepo),
		interval:         24 * time.Hour,
		stopChan:         make(chan bool),
	}
}

// Start starts the ad expiry service
func (s *AdExpiryService) Start() {
	go s.run()
	logrus.Info("Ad expiry service started")
}

// Stop stops the ad expiry service
func (s *AdExpiryService) Stop() {
	s.stopChan <- true
	logrus.Info("Ad expiry service stopped")
}

// run runs the sweep loop
func (s *AdExpiryService) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run initial sweep
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopChan:
			return
		}
	}
}

// sweep performs one reconciliation run
func (s *AdExpiryService) sweep() {
	logrus.Info("Starting expired ads sweep...")

	result, err := s.reconcileService.Reconcile()
	if err != nil {
		logrus.Errorf("Failed to reconcile expired ads: %v", err)
		return
	}

	logrus.Infof("Expired ads sweep completed: %d processed, %d updated, %d errors",
		result.Processed, result.Updated, result.Errors)
}

// SetInterval sets the sweep interval
func (s *AdExpiryService) SetInterval(interval time.Duration) {
	s.interval = interval
}
