package service

import (
	"context"
	"sort"
	"time"

	"github.com/avetrov/finance-service/internal/models"
	"github.com/shopspring/decimal"
)

// MonthlySummary reports income and expense totals for one month,
// alongside the monthly equivalents of the user's active recurring
// items.
func (s *Service) MonthlySummary(ctx context.Context, userID int64, year int, month time.Month) (*models.MonthlySummary, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	income, err := s.repo.SumByType(ctx, userID, models.TransactionIncome, from, to)
	if err != nil {
		return nil, err
	}
	expense, err := s.repo.SumByType(ctx, userID, models.TransactionExpense, from, to)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListActiveRecurring(ctx, userID)
	if err != nil {
		return nil, err
	}
	recIncome, recExpense := decimal.Zero, decimal.Zero
	for _, item := range items {
		eq := MonthlyEquivalent(item)
		if item.Kind == models.RecurringIncome {
			recIncome = recIncome.Add(eq)
		} else {
			recExpense = recExpense.Add(eq)
		}
	}

	return &models.MonthlySummary{
		Year:             year,
		Month:            month,
		Income:           income,
		Expense:          expense,
		NetBalance:       income.Sub(expense),
		RecurringIncome:  recIncome,
		RecurringExpense: recExpense,
	}, nil
}

// InstallmentBurden reports the installment load relative to the
// month's income.
func (s *Service) InstallmentBurden(ctx context.Context, userID int64, year int, month time.Month) (*models.InstallmentBurden, error) {
	list, err := s.repo.ListInstallments(ctx, userID)
	if err != nil {
		return nil, err
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	income, err := s.repo.SumByType(ctx, userID, models.TransactionIncome, from, to)
	if err != nil {
		return nil, err
	}

	obligation := MonthlyObligation(list)
	ratio := decimal.Zero
	if income.IsPositive() {
		ratio = obligation.Div(income)
	}

	return &models.InstallmentBurden{
		MonthlyObligation: obligation,
		TotalRemaining:    TotalRemaining(list),
		OverdueCount:      OverdueCount(list),
		NextDueDate:       EarliestDue(list),
		BurdenRatio:       ratio,
	}, nil
}

// NetWorth projects the balance sheet: assets minus liabilities minus
// outstanding installment balances.
func (s *Service) NetWorth(ctx context.Context, userID int64) (*models.NetWorth, error) {
	assets, err := s.repo.SumAssets(ctx, userID)
	if err != nil {
		return nil, err
	}
	liabilities, err := s.repo.SumLiabilities(ctx, userID)
	if err != nil {
		return nil, err
	}
	installments, err := s.repo.ListInstallments(ctx, userID)
	if err != nil {
		return nil, err
	}
	remaining := TotalRemaining(installments)

	return &models.NetWorth{
		Assets:               assets,
		Liabilities:          liabilities,
		InstallmentRemaining: remaining,
		NetWorth:             assets.Sub(liabilities).Sub(remaining),
	}, nil
}

// BillsCalendar merges installment due dates and recurring item
// schedules into one month view.
func (s *Service) BillsCalendar(ctx context.Context, userID int64, year int, month time.Month, today time.Time) ([]models.CalendarEntry, error) {
	installments, err := s.repo.ListInstallments(ctx, userID)
	if err != nil {
		return nil, err
	}
	recurring, err := s.repo.ListActiveRecurring(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildCalendar(installments, recurring, year, month, today), nil
}

// BuildCalendar is the pure projection behind BillsCalendar. Recurring
// items are projected onto their day-of-month anchor in the requested
// month; only expense items appear, since income is not a bill.
func BuildCalendar(installments []models.Installment, recurring []models.RecurringItem, year int, month time.Month, today time.Time) []models.CalendarEntry {
	monthRef := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var entries []models.CalendarEntry

	for _, in := range installments {
		if in.Status == models.InstallmentCompleted {
			continue
		}
		if !sameCalendarMonth(in.NextDueDate, monthRef) {
			continue
		}
		entries = append(entries, models.CalendarEntry{
			Date:    dateOnly(in.NextDueDate),
			Source:  models.BillSourceInstallment,
			Name:    in.ItemName,
			Amount:  in.MonthlyPayment,
			Overdue: dateOnly(in.NextDueDate).Before(dateOnly(today)),
		})
	}

	for _, item := range recurring {
		if !item.IsActive || item.Kind != models.RecurringExpense {
			continue
		}
		entries = append(entries, models.CalendarEntry{
			Date:   monthAnchor(item.DayOfMonth, monthRef),
			Source: models.BillSourceRecurring,
			Name:   item.Name,
			Amount: item.Amount,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries
}
