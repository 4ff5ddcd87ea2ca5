package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avetrov/finance-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// InstallmentStore provides persistence for installment plans.
type InstallmentStore interface {
	CreateInstallment(ctx context.Context, in *models.Installment) error
	GetInstallment(ctx context.Context, userID, id int64) (*models.Installment, error)
	ListInstallments(ctx context.Context, userID int64) ([]models.Installment, error)
	UpdateInstallment(ctx context.Context, in *models.Installment) error
	DeleteInstallment(ctx context.Context, userID, id int64) error
}

// InstallmentInput carries the fields a user supplies when creating a plan.
type InstallmentInput struct {
	ItemName          string          `json:"item_name"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	DownPayment       decimal.Decimal `json:"down_payment"`
	MonthlyPayment    decimal.Decimal `json:"monthly_payment"`
	TotalPayments     int             `json:"total_payments"`
	CompletedPayments int             `json:"completed_payments"`
	NextDueDate       time.Time       `json:"next_due_date"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	Provider          string          `json:"provider"`
}

// InstallmentLedger maintains amortization bookkeeping for installment
// plans and materializes completed payments as expense transactions.
type InstallmentLedger struct {
	store InstallmentStore
	txs   TransactionStore
	log   *logrus.Logger
}

// NewInstallmentLedger initializes an installment ledger
func NewInstallmentLedger(store InstallmentStore, txs TransactionStore, log *logrus.Logger) *InstallmentLedger {
	return &InstallmentLedger{store: store, txs: txs, log: log}
}

// RemainingAmount computes the outstanding balance from the plan's
// inputs. The formula is recomputed from scratch each time so repeated
// payments cannot accumulate rounding drift.
func RemainingAmount(in models.Installment) decimal.Decimal {
	paid := in.MonthlyPayment.Mul(decimal.NewFromInt(int64(in.CompletedPayments)))
	return in.TotalAmount.Sub(in.DownPayment).Sub(paid)
}

// DeriveStatus re-derives the plan status: completed once all payments
// are made, otherwise overdue when the next due date has passed,
// otherwise active.
func DeriveStatus(in models.Installment, today time.Time) string {
	if in.CompletedPayments >= in.TotalPayments {
		return models.InstallmentCompleted
	}
	if dateOnly(in.NextDueDate).Before(dateOnly(today)) {
		return models.InstallmentOverdue
	}
	return models.InstallmentActive
}

// Create validates the input, clamps a pre-seeded completed-payments
// count into range, derives the remaining amount and status, and
// persists the plan.
func (l *InstallmentLedger) Create(ctx context.Context, userID int64, input InstallmentInput, today time.Time) (*models.Installment, error) {
	if !input.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("total amount must be positive")
	}
	if !input.MonthlyPayment.IsPositive() {
		return nil, fmt.Errorf("monthly payment must be positive")
	}
	if input.TotalPayments < 1 {
		return nil, fmt.Errorf("total payments must be at least 1")
	}
	if input.DownPayment.IsNegative() {
		return nil, fmt.Errorf("down payment cannot be negative")
	}

	completed := input.CompletedPayments
	if completed < 0 {
		completed = 0
	}
	if completed > input.TotalPayments {
		completed = input.TotalPayments
	}

	in := &models.Installment{
		UserID:            userID,
		ItemName:          input.ItemName,
		TotalAmount:       input.TotalAmount,
		DownPayment:       input.DownPayment,
		MonthlyPayment:    input.MonthlyPayment,
		TotalPayments:     input.TotalPayments,
		CompletedPayments: completed,
		NextDueDate:       dateOnly(input.NextDueDate),
		InterestRate:      input.InterestRate,
		Provider:          input.Provider,
	}
	in.RemainingAmount = RemainingAmount(*in)
	in.Status = DeriveStatus(*in, today)

	if err := l.store.CreateInstallment(ctx, in); err != nil {
		return nil, err
	}
	l.log.Infof("Installment created for user %d: %s (%d payments)", userID, in.ItemName, in.TotalPayments)
	return in, nil
}

// MarkPaymentComplete records one payment on the plan: increments the
// completed count, recomputes the remaining amount, advances the next
// due date by one clipped calendar month (unless the plan just
// completed, in which case the date keeps its last value), re-derives
// the status, and emits one expense transaction linked to the plan.
//
// Returns the plan unchanged when it is already completed.
//
// The plan update and the transaction emission are two separate writes.
// When the emission fails the plan update stands; the failure is logged
// and the ledger and the plan can disagree by one payment row until the
// user records the expense manually.
func (l *InstallmentLedger) MarkPaymentComplete(ctx context.Context, userID, id int64, today time.Time) (*models.Installment, error) {
	in, err := l.store.GetInstallment(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Status == models.InstallmentCompleted {
		return in, nil
	}

	in.CompletedPayments++
	if in.CompletedPayments > in.TotalPayments {
		in.CompletedPayments = in.TotalPayments
	}
	in.RemainingAmount = RemainingAmount(*in)
	if in.CompletedPayments < in.TotalPayments {
		in.NextDueDate = addClippedMonth(in.NextDueDate)
	}
	in.Status = DeriveStatus(*in, today)

	if err := l.store.UpdateInstallment(ctx, in); err != nil {
		return nil, err
	}

	instID := in.ID
	tx := &models.Transaction{
		UserID:        userID,
		Date:          dateOnly(today),
		Type:          models.TransactionExpense,
		Description:   fmt.Sprintf("%s payment %d/%d", in.ItemName, in.CompletedPayments, in.TotalPayments),
		Amount:        in.MonthlyPayment,
		InstallmentID: &instID,
	}
	if err := l.txs.CreateTransaction(ctx, tx); err != nil {
		l.log.Errorf("Failed to emit payment transaction for installment %d: %v", in.ID, err)
	}

	l.log.Infof("Payment %d/%d recorded for installment %d", in.CompletedPayments, in.TotalPayments, in.ID)
	return in, nil
}

// RefreshStatuses flips every non-completed plan whose due date has
// passed to overdue and returns the ids it changed. Running it again
// with the same reference day changes nothing; callers run it once per
// session, not per request.
func (l *InstallmentLedger) RefreshStatuses(ctx context.Context, userID int64, today time.Time) ([]int64, error) {
	list, err := l.store.ListInstallments(ctx, userID)
	if err != nil {
		return nil, err
	}

	var flipped []int64
	for i := range list {
		in := &list[i]
		if in.Status == models.InstallmentCompleted || in.Status == models.InstallmentOverdue {
			continue
		}
		if !dateOnly(in.NextDueDate).Before(dateOnly(today)) {
			continue
		}
		in.Status = models.InstallmentOverdue
		if err := l.store.UpdateInstallment(ctx, in); err != nil {
			l.log.Errorf("Failed to mark installment %d overdue: %v", in.ID, err)
			continue
		}
		flipped = append(flipped, in.ID)
	}
	return flipped, nil
}

// Delete removes the plan and, first, every transaction linked to it.
// The cascade order matters: deleting the plan before its transactions
// would orphan the payment rows.
func (l *InstallmentLedger) Delete(ctx context.Context, userID, id int64) error {
	if err := l.txs.DeleteByInstallment(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete linked transactions: %w", err)
	}
	if err := l.store.DeleteInstallment(ctx, userID, id); err != nil {
		return err
	}
	l.log.Infof("Installment %d deleted for user %d", id, userID)
	return nil
}

// List returns all plans for the user.
func (l *InstallmentLedger) List(ctx context.Context, userID int64) ([]models.Installment, error) {
	return l.store.ListInstallments(ctx, userID)
}

// MonthlyObligation sums the monthly payment of every non-completed plan.
func MonthlyObligation(list []models.Installment) decimal.Decimal {
	total := decimal.Zero
	for _, in := range list {
		if in.Status != models.InstallmentCompleted {
			total = total.Add(in.MonthlyPayment)
		}
	}
	return total
}

// TotalRemaining sums the remaining balance of every non-completed plan.
func TotalRemaining(list []models.Installment) decimal.Decimal {
	total := decimal.Zero
	for _, in := range list {
		if in.Status != models.InstallmentCompleted {
			total = total.Add(in.RemainingAmount)
		}
	}
	return total
}

// EarliestDue returns the soonest next due date among non-completed
// plans, or nil when every plan is completed.
func EarliestDue(list []models.Installment) *time.Time {
	var earliest *time.Time
	for _, in := range list {
		if in.Status == models.InstallmentCompleted {
			continue
		}
		d := in.NextDueDate
		if earliest == nil || d.Before(*earliest) {
			earliest = &d
		}
	}
	return earliest
}

// OverdueCount counts plans currently overdue.
func OverdueCount(list []models.Installment) int {
	n := 0
	for _, in := range list {
		if in.Status == models.InstallmentOverdue {
			n++
		}
	}
	return n
}
