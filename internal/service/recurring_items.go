package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avetrov/finance-service/internal/models"
)

func validateRecurringItem(item *models.RecurringItem) error {
	if item.Kind != models.RecurringIncome && item.Kind != models.RecurringExpense {
		return fmt.Errorf("invalid recurring kind: %q", item.Kind)
	}
	if !item.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	if !models.ValidFrequency(item.Frequency) {
		return fmt.Errorf("invalid frequency: %q", item.Frequency)
	}
	if item.DayOfMonth < 1 || item.DayOfMonth > 28 {
		return fmt.Errorf("day of month must be between 1 and 28")
	}
	return nil
}

// CreateRecurringItem validates and persists a recurring definition
func (s *Service) CreateRecurringItem(ctx context.Context, userID int64, item *models.RecurringItem) (*models.RecurringItem, error) {
	item.UserID = userID
	item.LastGeneratedDate = nil
	if err := validateRecurringItem(item); err != nil {
		return nil, err
	}
	if err := s.repo.CreateRecurringItem(ctx, item); err != nil {
		return nil, err
	}
	s.log.Infof("Recurring %s created for user %d: %s", item.Kind, userID, item.Name)
	return item, nil
}

// ListRecurringItems returns the user's recurring items of one kind
func (s *Service) ListRecurringItems(ctx context.Context, userID int64, kind string) ([]models.RecurringItem, error) {
	return s.repo.ListRecurringItems(ctx, userID, kind)
}

// UpdateRecurringItem validates and updates a recurring definition.
// The last-generated stamp is not editable through this path.
func (s *Service) UpdateRecurringItem(ctx context.Context, userID int64, item *models.RecurringItem) (*models.RecurringItem, error) {
	item.UserID = userID
	if err := validateRecurringItem(item); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateRecurringItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteRecurringItem deletes a recurring definition. Transactions
// already generated from it are kept.
func (s *Service) DeleteRecurringItem(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteRecurringItem(ctx, userID, id)
}

// GenerateRecurring runs the batch generation pass for the user
func (s *Service) GenerateRecurring(ctx context.Context, userID int64, today time.Time) (int, error) {
	return s.rec.GenerateDue(ctx, userID, today)
}

// RecordRecurringNow emits a transaction for one item if it is due
func (s *Service) RecordRecurringNow(ctx context.Context, userID, id int64, today time.Time) (*models.Transaction, error) {
	item, err := s.repo.GetRecurringItem(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	_, tx, err := s.rec.RecordNow(ctx, *item, today)
	return tx, err
}
