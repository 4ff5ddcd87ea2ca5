package repository

import (
	"context"
	"fmt"

	"github.com/avetrov/finance-service/internal/models"
)

// CreateBudget creates a monthly budget for a category
func (r *Repository) CreateBudget(ctx context.Context, b *models.Budget) error {
	query := `
		INSERT INTO budgets (user_id, category_id, monthly_limit, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, b.UserID, b.CategoryID, b.MonthlyLimit).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}
	return nil
}

// ListBudgets returns the user's budgets
func (r *Repository) ListBudgets(ctx context.Context, userID int64) ([]models.Budget, error) {
	query := `
		SELECT id, user_id, category_id, monthly_limit, created_at, updated_at
		FROM budgets
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var list []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.MonthlyLimit, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// UpdateBudget updates a budget owned by the user
func (r *Repository) UpdateBudget(ctx context.Context, b *models.Budget) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE budgets SET category_id = $1, monthly_limit = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3 AND user_id = $4`,
		b.CategoryID, b.MonthlyLimit, b.ID, b.UserID)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	return requireRow(res, "update budget")
}

// DeleteBudget deletes a budget owned by the user
func (r *Repository) DeleteBudget(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return requireRow(res, "delete budget")
}
