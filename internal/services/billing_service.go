package services

import (
	"fmt"
	"time"

	"github.com/artistlist/artistlist-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// TransactionStore is the ledger persistence surface
type TransactionStore interface {
	Create(tx *models.Transaction) error
}

// BillingService writes pending ledger entries for new campaigns and
// forwards them to the billing queue. Settlement is handled downstream.
type BillingService struct {
	txRepo    TransactionStore
	publisher *RabbitMQService
}

func NewBillingService(txRepo TransactionStore, publisher *RabbitMQService) *BillingService {
	return &BillingService{
		txRepo:    txRepo,
		publisher: publisher,
	}
}

// RecordAdCharge inserts a pending ledger entry for a campaign of the given
// length. The queue publish is best-effort; the persisted entry is the
// source of truth.
func (s *BillingService) RecordAdCharge(artistID, userEmail string, days int) (*models.Transaction, error) {
	tx := &models.Transaction{
		Type:      models.TransactionTypeAd,
		Amount:    models.DailyAdFee.Mul(decimal.NewFromInt(int64(days))),
		Status:    models.TransactionStatusPending,
		ArtistID:  artistID,
		UserEmail: userEmail,
		CreatedAt: time.Now(),
	}

	if err := s.txRepo.Create(tx); err != nil {
		return nil, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	if s.publisher != nil {
		err := s.publisher.PublishMessage(BillingLedgerQueue, map[string]interface{}{
			"transaction_id": tx.ID,
			"type":           tx.Type,
			"amount":         tx.Amount.String(),
			"status":         tx.Status,
			"artist_id":      tx.ArtistID,
			"user_email":     tx.UserEmail,
			"created_at":     tx.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			logrus.Warnf("Failed to publish ledger entry %s: %v", tx.ID, err)
		}
	}

	return tx, nil
}
