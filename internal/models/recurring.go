package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recurring item kinds
const (
	RecurringIncome  = "income"
	RecurringExpense = "expense"
)

// Recurring frequencies
const (
	FrequencyWeekly   = "weekly"
	FrequencyBiWeekly = "bi-weekly"
	FrequencyMonthly  = "monthly"
)

// ValidFrequency reports whether f is a supported frequency.
func ValidFrequency(f string) bool {
	return f == FrequencyWeekly || f == FrequencyBiWeekly || f == FrequencyMonthly
}

// RecurringItem represents a recurring income or expense definition.
// DayOfMonth (1-28) schedules monthly items and anchors the first
// occurrence of weekly/bi-weekly items. LastGeneratedDate is nil until
// the first transaction is emitted for the item.
type RecurringItem struct {
	ID                int64           `json:"id"`
	UserID            int64           `json:"user_id"`
	Kind              string          `json:"kind"`
	Name              string          `json:"name"`
	Amount            decimal.Decimal `json:"amount"`
	Frequency         string          `json:"frequency"`
	DayOfMonth        int             `json:"day_of_month"`
	CategoryID        *int64          `json:"category_id,omitempty"`
	IsActive          bool            `json:"is_active"`
	LastGeneratedDate *time.Time      `json:"last_generated_date,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
