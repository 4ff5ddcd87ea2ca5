package models

import "github.com/shopspring/decimal"

// Asset represents a balance-sheet asset row
type Asset struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Name      string          `json:"name"`
	Kind      string          `json:"kind"` // cash, property, vehicle, other
	Value     decimal.Decimal `json:"value"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

// Liability represents a balance-sheet liability row
type Liability struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Name      string          `json:"name"`
	Kind      string          `json:"kind"` // loan, credit-card, other
	Value     decimal.Decimal `json:"value"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}
