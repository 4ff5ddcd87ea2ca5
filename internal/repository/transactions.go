package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/avetrov/finance-service/internal/models"
	"github.com/shopspring/decimal"
)

// CreateTransaction creates a new transaction in the database
func (r *Repository) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO transactions
			(user_id, date, type, category_id, description, amount, activity, installment_id, generation_marker, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		tx.UserID, tx.Date, tx.Type, tx.CategoryID, tx.Description,
		tx.Amount, tx.Activity, tx.InstallmentID, tx.GenerationMarker).
		Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListTransactions returns the user's transactions within [from, to),
// newest first. Zero bounds list everything.
func (r *Repository) ListTransactions(ctx context.Context, userID int64, from, to time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, date, type, category_id, description, amount, activity, installment_id, generation_marker, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date < $3)
		ORDER BY date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID, nullTime(from), nullTime(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var list []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Date, &t.Type, &t.CategoryID, &t.Description,
			&t.Amount, &t.Activity, &t.InstallmentID, &t.GenerationMarker, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// UpdateTransaction updates a transaction owned by the user
func (r *Repository) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	query := `
		UPDATE transactions
		SET date = $1, type = $2, category_id = $3, description = $4, amount = $5, activity = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7 AND user_id = $8`
	res, err := r.db.ExecContext(ctx, query,
		tx.Date, tx.Type, tx.CategoryID, tx.Description, tx.Amount, tx.Activity, tx.ID, tx.UserID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return requireRow(res, "update transaction")
}

// DeleteTransaction deletes a transaction owned by the user
func (r *Repository) DeleteTransaction(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return requireRow(res, "delete transaction")
}

// HasGeneratedTransaction reports whether a transaction carrying the
// given generation marker already exists for the user within [from, to).
func (r *Repository) HasGeneratedTransaction(ctx context.Context, userID int64, marker string, from, to time.Time) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM transactions
			WHERE user_id = $1 AND generation_marker = $2 AND date >= $3 AND date < $4
		)`
	if err := r.db.QueryRowContext(ctx, query, userID, marker, from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check generated transaction: %w", err)
	}
	return exists, nil
}

// DeleteByInstallment removes every transaction linked to the given
// installment. Called before the installment row itself is deleted.
func (r *Repository) DeleteByInstallment(ctx context.Context, userID, installmentID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE user_id = $1 AND installment_id = $2`, userID, installmentID)
	if err != nil {
		return fmt.Errorf("failed to delete installment transactions: %w", err)
	}
	return nil
}

// SumByType returns the user's transaction total for one type within
// [from, to).
func (r *Repository) SumByType(ctx context.Context, userID int64, txType string, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND type = $2 AND date >= $3 AND date < $4`
	if err := r.db.QueryRowContext(ctx, query, userID, txType, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return sum, nil
}

// SumExpensesByCategory returns the user's expense total for one
// category within [from, to).
func (r *Repository) SumExpensesByCategory(ctx context.Context, userID, categoryID int64, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND category_id = $2 AND type = 'expense' AND date >= $3 AND date < $4`
	if err := r.db.QueryRowContext(ctx, query, userID, categoryID, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum category expenses: %w", err)
	}
	return sum, nil
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
