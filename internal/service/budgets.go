package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avetrov/finance-service/internal/models"
)

// CreateCategory validates and persists a category
func (s *Service) CreateCategory(ctx context.Context, userID int64, c *models.Category) (*models.Category, error) {
	c.UserID = userID
	if c.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if c.Type != models.TransactionIncome && c.Type != models.TransactionExpense {
		return nil, fmt.Errorf("invalid category type: %q", c.Type)
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories returns the user's categories
func (s *Service) ListCategories(ctx context.Context, userID int64) ([]models.Category, error) {
	return s.repo.ListCategories(ctx, userID)
}

// UpdateCategory updates a category owned by the user
func (s *Service) UpdateCategory(ctx context.Context, userID int64, c *models.Category) (*models.Category, error) {
	c.UserID = userID
	if c.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory deletes a category owned by the user
func (s *Service) DeleteCategory(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteCategory(ctx, userID, id)
}

// CreateBudget validates and persists a budget
func (s *Service) CreateBudget(ctx context.Context, userID int64, b *models.Budget) (*models.Budget, error) {
	b.UserID = userID
	if !b.MonthlyLimit.IsPositive() {
		return nil, fmt.Errorf("monthly limit must be positive")
	}
	if _, err := s.repo.GetCategory(ctx, userID, b.CategoryID); err != nil {
		return nil, fmt.Errorf("unknown category: %w", err)
	}
	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBudgets returns the user's budgets
func (s *Service) ListBudgets(ctx context.Context, userID int64) ([]models.Budget, error) {
	return s.repo.ListBudgets(ctx, userID)
}

// UpdateBudget updates a budget owned by the user
func (s *Service) UpdateBudget(ctx context.Context, userID int64, b *models.Budget) (*models.Budget, error) {
	b.UserID = userID
	if !b.MonthlyLimit.IsPositive() {
		return nil, fmt.Errorf("monthly limit must be positive")
	}
	if err := s.repo.UpdateBudget(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBudget deletes a budget owned by the user
func (s *Service) DeleteBudget(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteBudget(ctx, userID, id)
}

// BudgetReport compares each budget against actual spend in the given
// month.
func (s *Service) BudgetReport(ctx context.Context, userID int64, year int, month time.Month) ([]models.BudgetReport, error) {
	budgets, err := s.repo.ListBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	reports := make([]models.BudgetReport, 0, len(budgets))
	for _, b := range budgets {
		spent, err := s.repo.SumExpensesByCategory(ctx, userID, b.CategoryID, from, to)
		if err != nil {
			return nil, err
		}
		reports = append(reports, models.BudgetReport{
			Budget:       b,
			CategoryName: names[b.CategoryID],
			Spent:        spent,
			Remaining:    b.MonthlyLimit.Sub(spent),
			OverLimit:    spent.GreaterThan(b.MonthlyLimit),
		})
	}
	return reports, nil
}
