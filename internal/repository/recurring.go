package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avetrov/finance-service/internal/models"
)

// CreateRecurringItem creates a recurring income or expense definition
func (r *Repository) CreateRecurringItem(ctx context.Context, item *models.RecurringItem) error {
	query := `
		INSERT INTO recurring_items
			(user_id, kind, name, amount, frequency, day_of_month, category_id, is_active, last_generated_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		item.UserID, item.Kind, item.Name, item.Amount, item.Frequency,
		item.DayOfMonth, item.CategoryID, item.IsActive, item.LastGeneratedDate).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create recurring item: %w", err)
	}
	return nil
}

// GetRecurringItem retrieves one item owned by the user
func (r *Repository) GetRecurringItem(ctx context.Context, userID, id int64) (*models.RecurringItem, error) {
	item := &models.RecurringItem{}
	query := `
		SELECT id, user_id, kind, name, amount, frequency, day_of_month, category_id, is_active, last_generated_date, created_at, updated_at
		FROM recurring_items
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&item.ID, &item.UserID, &item.Kind, &item.Name, &item.Amount, &item.Frequency,
		&item.DayOfMonth, &item.CategoryID, &item.IsActive, &item.LastGeneratedDate,
		&item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recurring item: %w", err)
	}
	return item, nil
}

// ListRecurringItems returns the user's recurring items of one kind, or
// all kinds when kind is empty.
func (r *Repository) ListRecurringItems(ctx context.Context, userID int64, kind string) ([]models.RecurringItem, error) {
	query := `
		SELECT id, user_id, kind, name, amount, frequency, day_of_month, category_id, is_active, last_generated_date, created_at, updated_at
		FROM recurring_items
		WHERE user_id = $1 AND ($2 = '' OR kind = $2)
		ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, query, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring items: %w", err)
	}
	defer rows.Close()
	return scanRecurringItems(rows)
}

// ListActiveRecurring returns the user's active items of every kind,
// the set the recurrence engine evaluates.
func (r *Repository) ListActiveRecurring(ctx context.Context, userID int64) ([]models.RecurringItem, error) {
	query := `
		SELECT id, user_id, kind, name, amount, frequency, day_of_month, category_id, is_active, last_generated_date, created_at, updated_at
		FROM recurring_items
		WHERE user_id = $1 AND is_active
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active recurring items: %w", err)
	}
	defer rows.Close()
	return scanRecurringItems(rows)
}

func scanRecurringItems(rows *sql.Rows) ([]models.RecurringItem, error) {
	var list []models.RecurringItem
	for rows.Next() {
		var item models.RecurringItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Kind, &item.Name, &item.Amount,
			&item.Frequency, &item.DayOfMonth, &item.CategoryID, &item.IsActive,
			&item.LastGeneratedDate, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recurring item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// UpdateRecurringItem updates a recurring item owned by the user
func (r *Repository) UpdateRecurringItem(ctx context.Context, item *models.RecurringItem) error {
	query := `
		UPDATE recurring_items
		SET name = $1, amount = $2, frequency = $3, day_of_month = $4, category_id = $5, is_active = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7 AND user_id = $8`
	res, err := r.db.ExecContext(ctx, query,
		item.Name, item.Amount, item.Frequency, item.DayOfMonth,
		item.CategoryID, item.IsActive, item.ID, item.UserID)
	if err != nil {
		return fmt.Errorf("failed to update recurring item: %w", err)
	}
	return requireRow(res, "update recurring item")
}

// StampLastGenerated records that a transaction was emitted for the
// item. Last writer wins; there is no version check, so two sessions
// racing on the same item can both emit (see DESIGN.md).
func (r *Repository) StampLastGenerated(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE recurring_items SET last_generated_date = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("failed to stamp last generated: %w", err)
	}
	return requireRow(res, "stamp last generated")
}

// DeleteRecurringItem deletes a recurring item owned by the user.
// Already-generated transactions are kept.
func (r *Repository) DeleteRecurringItem(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM recurring_items WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete recurring item: %w", err)
	}
	return requireRow(res, "delete recurring item")
}
