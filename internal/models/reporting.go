package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySummary represents income and expense totals for one month
type MonthlySummary struct {
	Year             int             `json:"year"`
	Month            time.Month      `json:"month"`
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"`
	NetBalance       decimal.Decimal `json:"net_balance"`
	RecurringIncome  decimal.Decimal `json:"recurring_income"`  // monthly equivalents of active items
	RecurringExpense decimal.Decimal `json:"recurring_expense"` // monthly equivalents of active items
}

// InstallmentBurden represents installment load relative to income
type InstallmentBurden struct {
	MonthlyObligation decimal.Decimal `json:"monthly_obligation"`
	TotalRemaining    decimal.Decimal `json:"total_remaining"`
	OverdueCount      int             `json:"overdue_count"`
	NextDueDate       *time.Time      `json:"next_due_date,omitempty"`
	BurdenRatio       decimal.Decimal `json:"burden_ratio"` // MonthlyObligation / monthly income, 0 when income unknown
}

// NetWorth represents the balance-sheet projection
type NetWorth struct {
	Assets               decimal.Decimal `json:"assets"`
	Liabilities          decimal.Decimal `json:"liabilities"`
	InstallmentRemaining decimal.Decimal `json:"installment_remaining"`
	NetWorth             decimal.Decimal `json:"net_worth"`
}

// Bill sources for the calendar projection
const (
	BillSourceInstallment = "installment"
	BillSourceRecurring   = "recurring"
)

// CalendarEntry represents one upcoming bill in a month
type CalendarEntry struct {
	Date    time.Time       `json:"date"`
	Source  string          `json:"source"`
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	Overdue bool            `json:"overdue"`
}
