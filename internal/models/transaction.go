package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction represents a single ledger entry
type Transaction struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Date          time.Time       `json:"date"`
	Type          string          `json:"type"`
	CategoryID    *int64          `json:"category_id,omitempty"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Activity      string          `json:"activity,omitempty"`
	InstallmentID *int64          `json:"installment_id,omitempty"`
	// GenerationMarker tags transactions emitted by the recurrence
	// engine so the batch path can detect an existing emission for an
	// item/month without parsing description text.
	GenerationMarker *string   `json:"generation_marker,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
