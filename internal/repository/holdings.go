package repository

import (
	"context"
	"fmt"

	"github.com/avetrov/finance-service/internal/models"
)

// CreateHolding creates a portfolio position
func (r *Repository) CreateHolding(ctx context.Context, h *models.Holding) error {
	query := `
		INSERT INTO holdings (user_id, symbol, units, unit_cost, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, h.UserID, h.Symbol, h.Units, h.UnitCost, h.Currency).
		Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create holding: %w", err)
	}
	return nil
}

// ListHoldings returns the user's portfolio positions
func (r *Repository) ListHoldings(ctx context.Context, userID int64) ([]models.Holding, error) {
	query := `
		SELECT id, user_id, symbol, units, unit_cost, currency, created_at, updated_at
		FROM holdings
		WHERE user_id = $1
		ORDER BY symbol`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	var list []models.Holding
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.ID, &h.UserID, &h.Symbol, &h.Units, &h.UnitCost, &h.Currency, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

// UpdateHolding updates a position owned by the user
func (r *Repository) UpdateHolding(ctx context.Context, h *models.Holding) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE holdings SET symbol = $1, units = $2, unit_cost = $3, currency = $4, updated_at = CURRENT_TIMESTAMP WHERE id = $5 AND user_id = $6`,
		h.Symbol, h.Units, h.UnitCost, h.Currency, h.ID, h.UserID)
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}
	return requireRow(res, "update holding")
}

// DeleteHolding deletes a position owned by the user
func (r *Repository) DeleteHolding(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM holdings WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	return requireRow(res, "delete holding")
}
