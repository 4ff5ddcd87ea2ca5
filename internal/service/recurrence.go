package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avetrov/finance-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// RecurringStore provides persistence for recurring item definitions.
type RecurringStore interface {
	ListActiveRecurring(ctx context.Context, userID int64) ([]models.RecurringItem, error)
	StampLastGenerated(ctx context.Context, id int64, at time.Time) error
}

// TransactionStore provides persistence for ledger transactions on
// behalf of the recurrence engine and the installment ledger.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	HasGeneratedTransaction(ctx context.Context, userID int64, marker string, from, to time.Time) (bool, error)
	DeleteByInstallment(ctx context.Context, userID, installmentID int64) error
}

// RecurrenceEngine decides when recurring income and expense items are
// due and materializes them as transactions. All date decisions take an
// explicit reference instant so tests stay deterministic.
type RecurrenceEngine struct {
	items RecurringStore
	txs   TransactionStore
	log   *logrus.Logger
}

// NewRecurrenceEngine initializes a recurrence engine
func NewRecurrenceEngine(items RecurringStore, txs TransactionStore, log *logrus.Logger) *RecurrenceEngine {
	return &RecurrenceEngine{items: items, txs: txs, log: log}
}

// ShouldGenerate reports whether a transaction is due for item at today.
// Monthly items are due once the current day reaches the item's
// day-of-month (clipped to the month length) and at most once per
// calendar month. Weekly and bi-weekly items are due on the first
// occurrence once the day-of-month anchor is reached, then every time
// 7 (respectively 14) whole days have elapsed since the last generation.
func ShouldGenerate(item models.RecurringItem, today time.Time) bool {
	if !item.IsActive {
		return false
	}
	switch item.Frequency {
	case models.FrequencyMonthly:
		due := item.DayOfMonth
		if max := daysInMonth(today.Year(), today.Month()); due > max {
			due = max
		}
		if today.Day() < due {
			return false
		}
		last := item.LastGeneratedDate
		if last == nil {
			return true
		}
		return last.Year() < today.Year() ||
			(last.Year() == today.Year() && last.Month() < today.Month())
	case models.FrequencyWeekly:
		return intervalDue(item, today, 7)
	case models.FrequencyBiWeekly:
		return intervalDue(item, today, 14)
	}
	return false
}

func intervalDue(item models.RecurringItem, today time.Time, days int) bool {
	if item.LastGeneratedDate == nil {
		// first occurrence anchors to the day-of-month
		return today.Day() >= item.DayOfMonth
	}
	elapsed := dateOnly(today).Sub(dateOnly(*item.LastGeneratedDate))
	return elapsed >= time.Duration(days)*24*time.Hour
}

// EffectiveDate computes the calendar date a generated transaction
// should carry. Monthly items and first occurrences anchor to the
// item's day-of-month in today's month (clipped). Subsequent weekly and
// bi-weekly occurrences use today itself, so their schedule can drift
// later when the engine is not invoked exactly on time. That matches
// the behavior users already rely on and is kept as is.
func EffectiveDate(item models.RecurringItem, today time.Time) time.Time {
	if item.Frequency == models.FrequencyMonthly || item.LastGeneratedDate == nil {
		return monthAnchor(item.DayOfMonth, today)
	}
	return dateOnly(today)
}

// RecordGenerated stamps the item's last-generated date and returns the
// updated item. The caller persists it. This stamp is the per-item
// duplicate guard.
func RecordGenerated(item models.RecurringItem, at time.Time) models.RecurringItem {
	t := at
	item.LastGeneratedDate = &t
	return item
}

// MonthlyEquivalent converts an item's amount to a monthly figure for
// aggregate reporting. Fixed multipliers, not a calendar average.
func MonthlyEquivalent(item models.RecurringItem) decimal.Decimal {
	switch item.Frequency {
	case models.FrequencyWeekly:
		return item.Amount.Mul(decimal.NewFromInt(4))
	case models.FrequencyBiWeekly:
		return item.Amount.Mul(decimal.NewFromInt(2))
	default:
		return item.Amount
	}
}

// GenerationMarker returns the tag stored on transactions emitted for
// this item, used by the batch path to detect an existing emission for
// the target month.
func GenerationMarker(item models.RecurringItem) string {
	return fmt.Sprintf("recurring:%d", item.ID)
}

// GenerateDue evaluates every active recurring item for the user and
// emits a transaction for each item that is due, stamping its
// last-generated date afterwards. Items are processed one at a time; a
// failure on one item is logged and does not abort the rest of the
// batch, and nothing already written is rolled back.
//
// Two duplicate guards apply independently: the item's last-generated
// date, and a lookup for an already-emitted transaction carrying the
// item's generation marker within the target month. The interactive
// record-now path only updates the first of these, so the batch cannot
// rely on the marker lookup alone.
func (e *RecurrenceEngine) GenerateDue(ctx context.Context, userID int64, today time.Time) (int, error) {
	items, err := e.items.ListActiveRecurring(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list recurring items: %w", err)
	}

	from, to := monthBounds(today)
	generated := 0
	for _, item := range items {
		if !ShouldGenerate(item, today) {
			continue
		}

		marker := GenerationMarker(item)
		exists, err := e.txs.HasGeneratedTransaction(ctx, userID, marker, from, to)
		if err != nil {
			e.log.Errorf("Failed to check existing generation for item %d: %v", item.ID, err)
			continue
		}
		if exists {
			continue
		}

		tx := e.draftTransaction(item, today)
		tx.GenerationMarker = &marker
		if err := e.txs.CreateTransaction(ctx, tx); err != nil {
			e.log.Errorf("Failed to emit transaction for item %d: %v", item.ID, err)
			continue
		}
		if err := e.items.StampLastGenerated(ctx, item.ID, today); err != nil {
			e.log.Errorf("Failed to stamp last generated for item %d: %v", item.ID, err)
			continue
		}
		generated++
	}

	if generated > 0 {
		e.log.Infof("Generated %d recurring transactions for user %d", generated, userID)
	}
	return generated, nil
}

// RecordNow emits a transaction for a single item if it is due, and
// stamps its last-generated date. Returns a nil transaction when the
// item is not due; that is a no-op, not an error. Unlike the batch
// path, the emitted transaction carries no generation marker.
func (e *RecurrenceEngine) RecordNow(ctx context.Context, item models.RecurringItem, today time.Time) (models.RecurringItem, *models.Transaction, error) {
	if !ShouldGenerate(item, today) {
		return item, nil, nil
	}

	tx := e.draftTransaction(item, today)
	if err := e.txs.CreateTransaction(ctx, tx); err != nil {
		return item, nil, fmt.Errorf("failed to emit transaction: %w", err)
	}
	if err := e.items.StampLastGenerated(ctx, item.ID, today); err != nil {
		return item, nil, fmt.Errorf("failed to stamp last generated: %w", err)
	}
	return RecordGenerated(item, today), tx, nil
}

func (e *RecurrenceEngine) draftTransaction(item models.RecurringItem, today time.Time) *models.Transaction {
	txType := models.TransactionExpense
	if item.Kind == models.RecurringIncome {
		txType = models.TransactionIncome
	}
	return &models.Transaction{
		UserID:      item.UserID,
		Date:        EffectiveDate(item, today),
		Type:        txType,
		CategoryID:  item.CategoryID,
		Description: fmt.Sprintf("Auto-generated: %s", item.Name),
		Amount:      item.Amount,
	}
}
