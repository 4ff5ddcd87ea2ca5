package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avetrov/finance-service/internal/models"
)

// fakeRecurringStore implements RecurringStore in memory.
type fakeRecurringStore struct {
	items    []models.RecurringItem
	stamped  map[int64]time.Time
	stampErr error
}

func newFakeRecurringStore(items ...models.RecurringItem) *fakeRecurringStore {
	return &fakeRecurringStore{items: items, stamped: map[int64]time.Time{}}
}

func (f *fakeRecurringStore) ListActiveRecurring(_ context.Context, userID int64) ([]models.RecurringItem, error) {
	var out []models.RecurringItem
	for _, item := range f.items {
		if item.UserID == userID && item.IsActive {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeRecurringStore) StampLastGenerated(_ context.Context, id int64, at time.Time) error {
	if f.stampErr != nil {
		return f.stampErr
	}
	f.stamped[id] = at
	for i := range f.items {
		if f.items[i].ID == id {
			t := at
			f.items[i].LastGeneratedDate = &t
		}
	}
	return nil
}

// fakeTransactionStore implements TransactionStore in memory.
type fakeTransactionStore struct {
	created   []models.Transaction
	markers   map[string]bool
	createErr error
	ops       *[]string
}

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{markers: map[string]bool{}}
}

func (f *fakeTransactionStore) CreateTransaction(_ context.Context, tx *models.Transaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	tx.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *tx)
	if tx.GenerationMarker != nil {
		f.markers[*tx.GenerationMarker] = true
	}
	return nil
}

func (f *fakeTransactionStore) HasGeneratedTransaction(_ context.Context, _ int64, marker string, _, _ time.Time) (bool, error) {
	return f.markers[marker], nil
}

func (f *fakeTransactionStore) DeleteByInstallment(_ context.Context, _, installmentID int64) error {
	if f.ops != nil {
		*f.ops = append(*f.ops, fmt.Sprintf("delete-transactions:%d", installmentID))
	}
	return nil
}

// fakeInstallmentStore implements InstallmentStore in memory.
type fakeInstallmentStore struct {
	plans   map[int64]*models.Installment
	nextID  int64
	updates int
	ops     *[]string
}

func newFakeInstallmentStore() *fakeInstallmentStore {
	return &fakeInstallmentStore{plans: map[int64]*models.Installment{}}
}

func (f *fakeInstallmentStore) CreateInstallment(_ context.Context, in *models.Installment) error {
	f.nextID++
	in.ID = f.nextID
	cp := *in
	f.plans[in.ID] = &cp
	return nil
}

func (f *fakeInstallmentStore) GetInstallment(_ context.Context, userID, id int64) (*models.Installment, error) {
	in, ok := f.plans[id]
	if !ok || in.UserID != userID {
		return nil, fmt.Errorf("record not found")
	}
	cp := *in
	return &cp, nil
}

func (f *fakeInstallmentStore) ListInstallments(_ context.Context, userID int64) ([]models.Installment, error) {
	var out []models.Installment
	for id := int64(1); id <= f.nextID; id++ {
		if in, ok := f.plans[id]; ok && in.UserID == userID {
			out = append(out, *in)
		}
	}
	return out, nil
}

func (f *fakeInstallmentStore) UpdateInstallment(_ context.Context, in *models.Installment) error {
	cp := *in
	f.plans[in.ID] = &cp
	f.updates++
	return nil
}

func (f *fakeInstallmentStore) DeleteInstallment(_ context.Context, _, id int64) error {
	delete(f.plans, id)
	if f.ops != nil {
		*f.ops = append(*f.ops, fmt.Sprintf("delete-installment:%d", id))
	}
	return nil
}
