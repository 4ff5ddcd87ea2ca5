package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/avetrov/finance-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func laptopPlan() InstallmentInput {
	return InstallmentInput{
		ItemName:       "Laptop",
		TotalAmount:    decimal.NewFromInt(1200),
		DownPayment:    decimal.NewFromInt(200),
		MonthlyPayment: decimal.NewFromInt(100),
		TotalPayments:  10,
		NextDueDate:    date(2024, time.January, 15),
	}
}

func newTestLedger() (*InstallmentLedger, *fakeInstallmentStore, *fakeTransactionStore) {
	store := newFakeInstallmentStore()
	txs := newFakeTransactionStore()
	return NewInstallmentLedger(store, txs, testLogger()), store, txs
}

func TestCreateValidation(t *testing.T) {
	ledger, _, _ := newTestLedger()
	today := date(2024, time.January, 1)

	tests := []struct {
		name   string
		mutate func(*InstallmentInput)
	}{
		{"zero total amount", func(in *InstallmentInput) { in.TotalAmount = decimal.Zero }},
		{"zero monthly payment", func(in *InstallmentInput) { in.MonthlyPayment = decimal.Zero }},
		{"zero total payments", func(in *InstallmentInput) { in.TotalPayments = 0 }},
		{"negative down payment", func(in *InstallmentInput) { in.DownPayment = decimal.NewFromInt(-1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := laptopPlan()
			tt.mutate(&input)
			_, err := ledger.Create(context.Background(), 1, input, today)
			require.Error(t, err)
		})
	}
}

func TestCreateDerivesState(t *testing.T) {
	ledger, _, _ := newTestLedger()
	in, err := ledger.Create(context.Background(), 1, laptopPlan(), date(2024, time.January, 1))
	require.NoError(t, err)

	require.True(t, in.RemainingAmount.Equal(decimal.NewFromInt(1000)))
	require.Equal(t, models.InstallmentActive, in.Status)
	require.Equal(t, 0, in.CompletedPayments)
}

func TestCreateClampsPreseed(t *testing.T) {
	ledger, _, _ := newTestLedger()

	input := laptopPlan()
	input.CompletedPayments = 15 // inconsistent pre-seed, clamped not rejected
	in, err := ledger.Create(context.Background(), 1, input, date(2024, time.January, 1))
	require.NoError(t, err)
	require.Equal(t, 10, in.CompletedPayments)
	require.Equal(t, models.InstallmentCompleted, in.Status)

	input = laptopPlan()
	input.CompletedPayments = -3
	in, err = ledger.Create(context.Background(), 1, input, date(2024, time.January, 1))
	require.NoError(t, err)
	require.Equal(t, 0, in.CompletedPayments)
}

func TestCreateOverdueWhenPastDue(t *testing.T) {
	ledger, _, _ := newTestLedger()
	in, err := ledger.Create(context.Background(), 1, laptopPlan(), date(2024, time.February, 1))
	require.NoError(t, err)
	require.Equal(t, models.InstallmentOverdue, in.Status)
}

func TestMarkPaymentComplete(t *testing.T) {
	ledger, _, txs := newTestLedger()
	in, err := ledger.Create(context.Background(), 1, laptopPlan(), date(2024, time.January, 1))
	require.NoError(t, err)

	updated, err := ledger.MarkPaymentComplete(context.Background(), 1, in.ID, date(2024, time.January, 15))
	require.NoError(t, err)
	require.Equal(t, 1, updated.CompletedPayments)
	require.True(t, updated.RemainingAmount.Equal(decimal.NewFromInt(900)))
	require.Equal(t, date(2024, time.February, 15), updated.NextDueDate)
	require.Equal(t, models.InstallmentActive, updated.Status)

	// exactly one expense transaction, linked to the plan
	require.Len(t, txs.created, 1)
	tx := txs.created[0]
	require.Equal(t, models.TransactionExpense, tx.Type)
	require.True(t, tx.Amount.Equal(decimal.NewFromInt(100)))
	require.Equal(t, "Laptop payment 1/10", tx.Description)
	require.NotNil(t, tx.InstallmentID)
	require.Equal(t, in.ID, *tx.InstallmentID)
}

func TestMarkPaymentRemainingHasNoDrift(t *testing.T) {
	ledger, _, _ := newTestLedger()
	in, err := ledger.Create(context.Background(), 1, laptopPlan(), date(2024, time.January, 1))
	require.NoError(t, err)

	var updated *models.Installment
	for i := 1; i <= 5; i++ {
		updated, err = ledger.MarkPaymentComplete(context.Background(), 1, in.ID, date(2024, time.Month(i), 15))
		require.NoError(t, err)
		want := decimal.NewFromInt(1000 - int64(i)*100)
		require.True(t, updated.RemainingAmount.Equal(want), "payment %d: got %s", i, updated.RemainingAmount)
	}
}

func TestMarkLastPaymentKeepsDueDate(t *testing.T) {
	ledger, _, _ := newTestLedger()
	input := laptopPlan()
	input.CompletedPayments = 9
	in, err := ledger.Create(context.Background(), 1, input, date(2024, time.January, 1))
	require.NoError(t, err)

	updated, err := ledger.MarkPaymentComplete(context.Background(), 1, in.ID, date(2024, time.January, 15))
	require.NoError(t, err)
	require.Equal(t, models.InstallmentCompleted, updated.Status)
	require.Equal(t, 10, updated.CompletedPayments)
	// no further payment is due, the date keeps its last value
	require.Equal(t, in.NextDueDate, updated.NextDueDate)
}

func TestMarkPaymentCompletedPlanIsNoop(t *testing.T) {
	ledger, store, txs := newTestLedger()
	input := laptopPlan()
	input.CompletedPayments = 10
	in, err := ledger.Create(context.Background(), 1, input, date(2024, time.January, 1))
	require.NoError(t, err)

	before := store.updates
	updated, err := ledger.MarkPaymentComplete(context.Background(), 1, in.ID, date(2024, time.March, 1))
	require.NoError(t, err)
	require.Equal(t, 10, updated.CompletedPayments)
	require.Equal(t, before, store.updates)
	require.Empty(t, txs.created)
}

func TestMarkPaymentDueDateClipped(t *testing.T) {
	ledger, _, _ := newTestLedger()
	input := laptopPlan()
	input.NextDueDate = date(2024, time.January, 31)
	in, err := ledger.Create(context.Background(), 1, input, date(2024, time.January, 1))
	require.NoError(t, err)

	updated, err := ledger.MarkPaymentComplete(context.Background(), 1, in.ID, date(2024, time.January, 31))
	require.NoError(t, err)
	require.Equal(t, date(2024, time.February, 29), updated.NextDueDate)
}

func TestMarkPaymentEmissionFailureKeepsPlanUpdate(t *testing.T) {
	// the plan update and the transaction emission are separate writes;
	// a failed emission must not undo the bookkeeping
	ledger, store, txs := newTestLedger()
	in, err := ledger.Create(context.Background(), 1, laptopPlan(), date(2024, time.January, 1))
	require.NoError(t, err)

	txs.createErr = fmt.Errorf("insert rejected")
	updated, err := ledger.MarkPaymentComplete(context.Background(), 1, in.ID, date(2024, time.January, 15))
	require.NoError(t, err)
	require.Equal(t, 1, updated.CompletedPayments)
	require.Equal(t, 1, store.plans[in.ID].CompletedPayments)
	require.Empty(t, txs.created)
}

func TestRefreshStatusesIdempotent(t *testing.T) {
	ledger, store, _ := newTestLedger()

	overdue := laptopPlan()
	overdue.NextDueDate = date(2024, time.January, 10)
	current := laptopPlan()
	current.ItemName = "Phone"
	current.NextDueDate = date(2024, time.March, 10)

	a, err := ledger.Create(context.Background(), 1, overdue, date(2024, time.January, 1))
	require.NoError(t, err)
	_, err = ledger.Create(context.Background(), 1, current, date(2024, time.January, 1))
	require.NoError(t, err)

	today := date(2024, time.February, 1)
	flipped, err := ledger.RefreshStatuses(context.Background(), 1, today)
	require.NoError(t, err)
	require.Equal(t, []int64{a.ID}, flipped)
	require.Equal(t, models.InstallmentOverdue, store.plans[a.ID].Status)

	// a second pass with the same reference day changes nothing
	before := store.updates
	flipped, err = ledger.RefreshStatuses(context.Background(), 1, today)
	require.NoError(t, err)
	require.Empty(t, flipped)
	require.Equal(t, before, store.updates)
}

func TestDeleteCascadeOrder(t *testing.T) {
	ledger, store, txs := newTestLedger()
	var ops []string
	store.ops = &ops
	txs.ops = &ops

	in, err := ledger.Create(context.Background(), 1, laptopPlan(), date(2024, time.January, 1))
	require.NoError(t, err)

	require.NoError(t, ledger.Delete(context.Background(), 1, in.ID))
	require.Equal(t, []string{
		fmt.Sprintf("delete-transactions:%d", in.ID),
		fmt.Sprintf("delete-installment:%d", in.ID),
	}, ops)
}

func TestAggregates(t *testing.T) {
	feb15 := date(2024, time.February, 15)
	mar1 := date(2024, time.March, 1)
	list := []models.Installment{
		{Status: models.InstallmentActive, MonthlyPayment: decimal.NewFromInt(100), RemainingAmount: decimal.NewFromInt(900), NextDueDate: mar1},
		{Status: models.InstallmentOverdue, MonthlyPayment: decimal.NewFromInt(50), RemainingAmount: decimal.NewFromInt(200), NextDueDate: feb15},
		{Status: models.InstallmentCompleted, MonthlyPayment: decimal.NewFromInt(75), RemainingAmount: decimal.Zero, NextDueDate: date(2024, time.January, 1)},
	}

	require.True(t, MonthlyObligation(list).Equal(decimal.NewFromInt(150)))
	require.True(t, TotalRemaining(list).Equal(decimal.NewFromInt(1100)))
	require.Equal(t, 1, OverdueCount(list))

	earliest := EarliestDue(list)
	require.NotNil(t, earliest)
	require.Equal(t, feb15, *earliest)
}

func TestAggregatesAllCompleted(t *testing.T) {
	list := []models.Installment{
		{Status: models.InstallmentCompleted, MonthlyPayment: decimal.NewFromInt(75)},
	}
	require.True(t, MonthlyObligation(list).IsZero())
	require.Nil(t, EarliestDue(list))
	require.Equal(t, 0, OverdueCount(list))
}
