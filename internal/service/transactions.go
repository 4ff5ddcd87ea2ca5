package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avetrov/finance-service/internal/models"
)

func validateTransaction(tx *models.Transaction) error {
	if tx.Type != models.TransactionIncome && tx.Type != models.TransactionExpense {
		return fmt.Errorf("invalid transaction type: %q", tx.Type)
	}
	if !tx.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	if tx.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}

// CreateTransaction validates and persists a transaction for the user
func (s *Service) CreateTransaction(ctx context.Context, userID int64, tx *models.Transaction) (*models.Transaction, error) {
	tx.UserID = userID
	if err := validateTransaction(tx); err != nil {
		return nil, err
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	s.log.Infof("Transaction created for user %d: %s %s", userID, tx.Type, tx.Amount)
	return tx, nil
}

// ListTransactions returns the user's transactions, optionally limited
// to one month.
func (s *Service) ListTransactions(ctx context.Context, userID int64, year int, month time.Month) ([]models.Transaction, error) {
	var from, to time.Time
	if year != 0 {
		from = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 1, 0)
	}
	return s.repo.ListTransactions(ctx, userID, from, to)
}

// UpdateTransaction validates and updates a transaction owned by the user
func (s *Service) UpdateTransaction(ctx context.Context, userID int64, tx *models.Transaction) (*models.Transaction, error) {
	tx.UserID = userID
	if err := validateTransaction(tx); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// DeleteTransaction deletes a transaction owned by the user
func (s *Service) DeleteTransaction(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteTransaction(ctx, userID, id)
}
