package models

import "github.com/shopspring/decimal"

// Holding represents a portfolio position
type Holding struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Symbol    string          `json:"symbol"`
	Units     decimal.Decimal `json:"units"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Currency  string          `json:"currency"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

// HoldingValuation is a holding restated in the base currency
type HoldingValuation struct {
	Holding   Holding         `json:"holding"`
	BookValue decimal.Decimal `json:"book_value"` // units * unit_cost, original currency
	BaseValue decimal.Decimal `json:"base_value"` // book value in the base currency
}
