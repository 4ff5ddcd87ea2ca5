package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/avetrov/finance-service/internal/models"
	"github.com/shopspring/decimal"
)

// CreateAsset validates and persists an asset
func (s *Service) CreateAsset(ctx context.Context, userID int64, a *models.Asset) (*models.Asset, error) {
	a.UserID = userID
	if a.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if a.Value.IsNegative() {
		return nil, fmt.Errorf("value cannot be negative")
	}
	if err := s.repo.CreateAsset(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListAssets returns the user's assets
func (s *Service) ListAssets(ctx context.Context, userID int64) ([]models.Asset, error) {
	return s.repo.ListAssets(ctx, userID)
}

// UpdateAsset updates an asset owned by the user
func (s *Service) UpdateAsset(ctx context.Context, userID int64, a *models.Asset) (*models.Asset, error) {
	a.UserID = userID
	if a.Value.IsNegative() {
		return nil, fmt.Errorf("value cannot be negative")
	}
	if err := s.repo.UpdateAsset(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAsset deletes an asset owned by the user
func (s *Service) DeleteAsset(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteAsset(ctx, userID, id)
}

// CreateLiability validates and persists a liability
func (s *Service) CreateLiability(ctx context.Context, userID int64, l *models.Liability) (*models.Liability, error) {
	l.UserID = userID
	if l.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if l.Value.IsNegative() {
		return nil, fmt.Errorf("value cannot be negative")
	}
	if err := s.repo.CreateLiability(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// ListLiabilities returns the user's liabilities
func (s *Service) ListLiabilities(ctx context.Context, userID int64) ([]models.Liability, error) {
	return s.repo.ListLiabilities(ctx, userID)
}

// UpdateLiability updates a liability owned by the user
func (s *Service) UpdateLiability(ctx context.Context, userID int64, l *models.Liability) (*models.Liability, error) {
	l.UserID = userID
	if l.Value.IsNegative() {
		return nil, fmt.Errorf("value cannot be negative")
	}
	if err := s.repo.UpdateLiability(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// DeleteLiability deletes a liability owned by the user
func (s *Service) DeleteLiability(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteLiability(ctx, userID, id)
}

// CreateHolding validates and persists a portfolio position
func (s *Service) CreateHolding(ctx context.Context, userID int64, h *models.Holding) (*models.Holding, error) {
	h.UserID = userID
	h.Symbol = strings.ToUpper(strings.TrimSpace(h.Symbol))
	h.Currency = strings.ToUpper(strings.TrimSpace(h.Currency))
	if h.Symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if !h.Units.IsPositive() {
		return nil, fmt.Errorf("units must be positive")
	}
	if h.UnitCost.IsNegative() {
		return nil, fmt.Errorf("unit cost cannot be negative")
	}
	if h.Currency == "" {
		h.Currency = s.config.BaseCurrency
	}
	if err := s.repo.CreateHolding(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// ListHoldings returns the user's portfolio positions
func (s *Service) ListHoldings(ctx context.Context, userID int64) ([]models.Holding, error) {
	return s.repo.ListHoldings(ctx, userID)
}

// UpdateHolding updates a position owned by the user
func (s *Service) UpdateHolding(ctx context.Context, userID int64, h *models.Holding) (*models.Holding, error) {
	h.UserID = userID
	if !h.Units.IsPositive() {
		return nil, fmt.Errorf("units must be positive")
	}
	if err := s.repo.UpdateHolding(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// DeleteHolding deletes a position owned by the user
func (s *Service) DeleteHolding(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteHolding(ctx, userID, id)
}

// PortfolioValuation restates every position at book value in the base
// currency. Positions whose currency cannot be converted keep their
// book value and are flagged in the log; valuation is advisory, not a
// ledger write.
func (s *Service) PortfolioValuation(ctx context.Context, userID int64) ([]models.HoldingValuation, decimal.Decimal, error) {
	holdings, err := s.repo.ListHoldings(ctx, userID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	total := decimal.Zero
	out := make([]models.HoldingValuation, 0, len(holdings))
	for _, h := range holdings {
		book := h.Units.Mul(h.UnitCost)
		base := book
		if h.Currency != "" && h.Currency != s.config.BaseCurrency {
			converted, err := s.rates.Convert(ctx, book, h.Currency, s.config.BaseCurrency)
			if err != nil {
				s.log.Errorf("Failed to convert %s to %s: %v", h.Currency, s.config.BaseCurrency, err)
			} else {
				base = converted
			}
		}
		out = append(out, models.HoldingValuation{Holding: h, BookValue: book, BaseValue: base})
		total = total.Add(base)
	}
	return out, total, nil
}

// CreateGoal validates and persists a savings goal
func (s *Service) CreateGoal(ctx context.Context, userID int64, g *models.Goal) (*models.Goal, error) {
	g.UserID = userID
	if g.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if !g.TargetAmount.IsPositive() {
		return nil, fmt.Errorf("target amount must be positive")
	}
	if g.SavedAmount.IsNegative() {
		return nil, fmt.Errorf("saved amount cannot be negative")
	}
	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// ListGoals returns the user's savings goals
func (s *Service) ListGoals(ctx context.Context, userID int64) ([]models.Goal, error) {
	return s.repo.ListGoals(ctx, userID)
}

// UpdateGoal updates a goal owned by the user
func (s *Service) UpdateGoal(ctx context.Context, userID int64, g *models.Goal) (*models.Goal, error) {
	g.UserID = userID
	if !g.TargetAmount.IsPositive() {
		return nil, fmt.Errorf("target amount must be positive")
	}
	if err := s.repo.UpdateGoal(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// DeleteGoal deletes a goal owned by the user
func (s *Service) DeleteGoal(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteGoal(ctx, userID, id)
}
