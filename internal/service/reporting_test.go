package service

import (
	"testing"
	"time"

	"github.com/avetrov/finance-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestBuildCalendarMergesSources(t *testing.T) {
	installments := []models.Installment{
		{ItemName: "Laptop", Status: models.InstallmentActive, MonthlyPayment: decimal.NewFromInt(100), NextDueDate: date(2024, time.March, 20)},
		{ItemName: "Old TV", Status: models.InstallmentCompleted, MonthlyPayment: decimal.NewFromInt(40), NextDueDate: date(2024, time.March, 5)},
		{ItemName: "Car", Status: models.InstallmentActive, MonthlyPayment: decimal.NewFromInt(300), NextDueDate: date(2024, time.April, 1)},
	}
	recurring := []models.RecurringItem{
		{Name: "Rent", Kind: models.RecurringExpense, IsActive: true, Amount: decimal.NewFromInt(800), DayOfMonth: 1},
		{Name: "Salary", Kind: models.RecurringIncome, IsActive: true, Amount: decimal.NewFromInt(3000), DayOfMonth: 25},
		{Name: "Dormant", Kind: models.RecurringExpense, IsActive: false, Amount: decimal.NewFromInt(10), DayOfMonth: 5},
	}

	entries := BuildCalendar(installments, recurring, 2024, time.March, date(2024, time.March, 25))

	// completed plans, other months, income and inactive items are out
	require.Len(t, entries, 2)
	require.Equal(t, "Rent", entries[0].Name)
	require.Equal(t, models.BillSourceRecurring, entries[0].Source)
	require.Equal(t, date(2024, time.March, 1), entries[0].Date)
	require.Equal(t, "Laptop", entries[1].Name)
	require.Equal(t, models.BillSourceInstallment, entries[1].Source)
	require.True(t, entries[1].Overdue)
}

func TestBuildCalendarSortedByDate(t *testing.T) {
	installments := []models.Installment{
		{ItemName: "B", Status: models.InstallmentActive, MonthlyPayment: decimal.NewFromInt(10), NextDueDate: date(2024, time.March, 10)},
		{ItemName: "A", Status: models.InstallmentActive, MonthlyPayment: decimal.NewFromInt(10), NextDueDate: date(2024, time.March, 10)},
	}
	entries := BuildCalendar(installments, nil, 2024, time.March, date(2024, time.March, 1))
	require.Equal(t, "A", entries[0].Name)
	require.Equal(t, "B", entries[1].Name)
	require.False(t, entries[0].Overdue)
}
