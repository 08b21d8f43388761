package repository

import (
	"github.com/artistlist/artistlist-backend/internal/models"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create creates a new ledger entry
func (r *TransactionRepository) Create(tx *models.Transaction) error {
	return r.db.Create(tx).Error
}

// GetByArtistID retrieves all ledger entries for an artist, newest first
func (r *TransactionRepository) GetByArtistID(artistID string) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := r.db.Where("artist_id = ?", artistID).
		Order("created_at DESC").
		Find(&txs).Error
	return txs, err
}
