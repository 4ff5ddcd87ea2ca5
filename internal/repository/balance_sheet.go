package repository

import (
	"context"
	"fmt"

	"github.com/avetrov/finance-service/internal/models"
	"github.com/shopspring/decimal"
)

// CreateAsset creates a balance-sheet asset
func (r *Repository) CreateAsset(ctx context.Context, a *models.Asset) error {
	query := `
		INSERT INTO assets (user_id, name, kind, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, a.UserID, a.Name, a.Kind, a.Value).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}
	return nil
}

// ListAssets returns the user's assets
func (r *Repository) ListAssets(ctx context.Context, userID int64) ([]models.Asset, error) {
	query := `SELECT id, user_id, name, kind, value, created_at, updated_at FROM assets WHERE user_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var list []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Kind, &a.Value, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// UpdateAsset updates an asset owned by the user
func (r *Repository) UpdateAsset(ctx context.Context, a *models.Asset) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE assets SET name = $1, kind = $2, value = $3, updated_at = CURRENT_TIMESTAMP WHERE id = $4 AND user_id = $5`,
		a.Name, a.Kind, a.Value, a.ID, a.UserID)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}
	return requireRow(res, "update asset")
}

// DeleteAsset deletes an asset owned by the user
func (r *Repository) DeleteAsset(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return requireRow(res, "delete asset")
}

// CreateLiability creates a balance-sheet liability
func (r *Repository) CreateLiability(ctx context.Context, l *models.Liability) error {
	query := `
		INSERT INTO liabilities (user_id, name, kind, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, l.UserID, l.Name, l.Kind, l.Value).
		Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create liability: %w", err)
	}
	return nil
}

// ListLiabilities returns the user's liabilities
func (r *Repository) ListLiabilities(ctx context.Context, userID int64) ([]models.Liability, error) {
	query := `SELECT id, user_id, name, kind, value, created_at, updated_at FROM liabilities WHERE user_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liabilities: %w", err)
	}
	defer rows.Close()

	var list []models.Liability
	for rows.Next() {
		var l models.Liability
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.Kind, &l.Value, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan liability: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// UpdateLiability updates a liability owned by the user
func (r *Repository) UpdateLiability(ctx context.Context, l *models.Liability) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE liabilities SET name = $1, kind = $2, value = $3, updated_at = CURRENT_TIMESTAMP WHERE id = $4 AND user_id = $5`,
		l.Name, l.Kind, l.Value, l.ID, l.UserID)
	if err != nil {
		return fmt.Errorf("failed to update liability: %w", err)
	}
	return requireRow(res, "update liability")
}

// DeleteLiability deletes a liability owned by the user
func (r *Repository) DeleteLiability(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM liabilities WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete liability: %w", err)
	}
	return requireRow(res, "delete liability")
}

// SumAssets returns the user's total asset value
func (r *Repository) SumAssets(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(value), 0) FROM assets WHERE user_id = $1`, userID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum assets: %w", err)
	}
	return sum, nil
}

// SumLiabilities returns the user's total liability value
func (r *Repository) SumLiabilities(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(value), 0) FROM liabilities WHERE user_id = $1`, userID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum liabilities: %w", err)
	}
	return sum, nil
}
