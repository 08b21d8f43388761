package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents what a ledger entry was charged for
type TransactionType string

const (
	TransactionTypeAd TransactionType = "ad"
)

// TransactionStatus represents the settlement state of a ledger entry
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// DailyAdFee is the flat promotion rate per campaign day.
var DailyAdFee = decimal.NewFromInt(5)

// Transaction represents a billing-ledger entry. Entries are written as
// pending when a campaign is created; settlement happens elsewhere.
type Transaction struct {
	ID        string            `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Type      TransactionType   `json:"type" gorm:"type:varchar(20);not null;index"`
	Amount    decimal.Decimal   `json:"amount" gorm:"type:numeric(12,2);not null"`
	Status    TransactionStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	ArtistID  string            `json:"artist_id" gorm:"not null;index;type:uuid"`
	UserEmail string            `json:"user_email" gorm:"type:varchar(255)"`
	CreatedAt time.Time         `json:"created_at"`
}

// TableName specifies the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
