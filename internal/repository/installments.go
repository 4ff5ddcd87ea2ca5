package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avetrov/finance-service/internal/models"
)

// CreateInstallment creates an installment plan
func (r *Repository) CreateInstallment(ctx context.Context, in *models.Installment) error {
	query := `
		INSERT INTO installments
			(user_id, item_name, total_amount, down_payment, monthly_payment, total_payments,
			 completed_payments, remaining_amount, next_due_date, interest_rate, provider, status,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		in.UserID, in.ItemName, in.TotalAmount, in.DownPayment, in.MonthlyPayment,
		in.TotalPayments, in.CompletedPayments, in.RemainingAmount, in.NextDueDate,
		in.InterestRate, in.Provider, in.Status).
		Scan(&in.ID, &in.CreatedAt, &in.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create installment: %w", err)
	}
	return nil
}

// GetInstallment retrieves one plan owned by the user
func (r *Repository) GetInstallment(ctx context.Context, userID, id int64) (*models.Installment, error) {
	in := &models.Installment{}
	query := `
		SELECT id, user_id, item_name, total_amount, down_payment, monthly_payment, total_payments,
		       completed_payments, remaining_amount, next_due_date, interest_rate, provider, status,
		       created_at, updated_at
		FROM installments
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&in.ID, &in.UserID, &in.ItemName, &in.TotalAmount, &in.DownPayment, &in.MonthlyPayment,
		&in.TotalPayments, &in.CompletedPayments, &in.RemainingAmount, &in.NextDueDate,
		&in.InterestRate, &in.Provider, &in.Status, &in.CreatedAt, &in.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get installment: %w", err)
	}
	return in, nil
}

// ListInstallments returns the user's plans, soonest due first
func (r *Repository) ListInstallments(ctx context.Context, userID int64) ([]models.Installment, error) {
	query := `
		SELECT id, user_id, item_name, total_amount, down_payment, monthly_payment, total_payments,
		       completed_payments, remaining_amount, next_due_date, interest_rate, provider, status,
		       created_at, updated_at
		FROM installments
		WHERE user_id = $1
		ORDER BY next_due_date, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}
	defer rows.Close()

	var list []models.Installment
	for rows.Next() {
		var in models.Installment
		if err := rows.Scan(&in.ID, &in.UserID, &in.ItemName, &in.TotalAmount, &in.DownPayment,
			&in.MonthlyPayment, &in.TotalPayments, &in.CompletedPayments, &in.RemainingAmount,
			&in.NextDueDate, &in.InterestRate, &in.Provider, &in.Status,
			&in.CreatedAt, &in.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		list = append(list, in)
	}
	return list, rows.Err()
}

// UpdateInstallment persists bookkeeping changes to a plan
func (r *Repository) UpdateInstallment(ctx context.Context, in *models.Installment) error {
	query := `
		UPDATE installments
		SET item_name = $1, total_amount = $2, down_payment = $3, monthly_payment = $4,
		    total_payments = $5, completed_payments = $6, remaining_amount = $7,
		    next_due_date = $8, interest_rate = $9, provider = $10, status = $11,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $12 AND user_id = $13`
	res, err := r.db.ExecContext(ctx, query,
		in.ItemName, in.TotalAmount, in.DownPayment, in.MonthlyPayment,
		in.TotalPayments, in.CompletedPayments, in.RemainingAmount,
		in.NextDueDate, in.InterestRate, in.Provider, in.Status, in.ID, in.UserID)
	if err != nil {
		return fmt.Errorf("failed to update installment: %w", err)
	}
	return requireRow(res, "update installment")
}

// DeleteInstallment deletes a plan owned by the user. Linked
// transactions must already be gone; the ledger handles the cascade.
func (r *Repository) DeleteInstallment(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM installments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete installment: %w", err)
	}
	return requireRow(res, "delete installment")
}
