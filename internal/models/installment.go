package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment statuses
const (
	InstallmentActive    = "active"
	InstallmentCompleted = "completed"
	InstallmentOverdue   = "overdue"
)

// Installment represents an installment purchase plan
type Installment struct {
	ID                int64           `json:"id"`
	UserID            int64           `json:"user_id"`
	ItemName          string          `json:"item_name"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	DownPayment       decimal.Decimal `json:"down_payment"`
	MonthlyPayment    decimal.Decimal `json:"monthly_payment"`
	TotalPayments     int             `json:"total_payments"`
	CompletedPayments int             `json:"completed_payments"`
	RemainingAmount   decimal.Decimal `json:"remaining_amount"`
	NextDueDate       time.Time       `json:"next_due_date"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	Provider          string          `json:"provider"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
