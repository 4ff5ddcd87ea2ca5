package repository

import (
	"context"
	"fmt"

	"github.com/avetrov/finance-service/internal/models"
)

// CreateGoal creates a savings goal
func (r *Repository) CreateGoal(ctx context.Context, g *models.Goal) error {
	query := `
		INSERT INTO goals (user_id, name, target_amount, saved_amount, target_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, g.UserID, g.Name, g.TargetAmount, g.SavedAmount, g.TargetDate).
		Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// ListGoals returns the user's savings goals
func (r *Repository) ListGoals(ctx context.Context, userID int64) ([]models.Goal, error) {
	query := `
		SELECT id, user_id, name, target_amount, saved_amount, target_date, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY target_date, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var list []models.Goal
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.SavedAmount, &g.TargetDate, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

// UpdateGoal updates a goal owned by the user
func (r *Repository) UpdateGoal(ctx context.Context, g *models.Goal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE goals SET name = $1, target_amount = $2, saved_amount = $3, target_date = $4, updated_at = CURRENT_TIMESTAMP WHERE id = $5 AND user_id = $6`,
		g.Name, g.TargetAmount, g.SavedAmount, g.TargetDate, g.ID, g.UserID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return requireRow(res, "update goal")
}

// DeleteGoal deletes a goal owned by the user
func (r *Repository) DeleteGoal(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return requireRow(res, "delete goal")
}
