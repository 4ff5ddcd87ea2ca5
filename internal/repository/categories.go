package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avetrov/finance-service/internal/models"
)

// CreateCategory creates a category
func (r *Repository) CreateCategory(ctx context.Context, c *models.Category) error {
	query := `
		INSERT INTO categories (user_id, name, type, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, c.UserID, c.Name, c.Type).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetCategory retrieves one category owned by the user
func (r *Repository) GetCategory(ctx context.Context, userID, id int64) (*models.Category, error) {
	c := &models.Category{}
	query := `SELECT id, user_id, name, type, created_at FROM categories WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

// ListCategories returns the user's categories
func (r *Repository) ListCategories(ctx context.Context, userID int64) ([]models.Category, error) {
	query := `SELECT id, user_id, name, type, created_at FROM categories WHERE user_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var list []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// UpdateCategory updates a category owned by the user
func (r *Repository) UpdateCategory(ctx context.Context, c *models.Category) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = $1, type = $2 WHERE id = $3 AND user_id = $4`,
		c.Name, c.Type, c.ID, c.UserID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return requireRow(res, "update category")
}

// DeleteCategory deletes a category owned by the user
func (r *Repository) DeleteCategory(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return requireRow(res, "delete category")
}
