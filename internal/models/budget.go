package models

import "github.com/shopspring/decimal"

// Budget represents a monthly spending limit for a category
type Budget struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	CategoryID   int64           `json:"category_id"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

// BudgetReport pairs a budget with actual spend for one month
type BudgetReport struct {
	Budget       Budget          `json:"budget"`
	CategoryName string          `json:"category_name"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	OverLimit    bool            `json:"over_limit"`
}
