package handler

import (
	"encoding/json"
	"net/http"

	"github.com/avetrov/finance-service/internal/models"
	"github.com/shopspring/decimal"
)

// CreateHolding handles portfolio position creation
func (h *Handler) CreateHolding(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var hold models.Holding
	if err := json.NewDecoder(r.Body).Decode(&hold); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := h.svc.CreateHolding(r.Context(), userID, &hold)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, created)
}

// ListHoldings handles portfolio position listing
func (h *Handler) ListHoldings(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	list, err := h.svc.ListHoldings(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, list)
}

// UpdateHolding handles portfolio position updates
func (h *Handler) UpdateHolding(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var hold models.Holding
	if err := json.NewDecoder(r.Body).Decode(&hold); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	hold.ID = id
	updated, err := h.svc.UpdateHolding(r.Context(), userID, &hold)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, updated)
}

// DeleteHolding handles portfolio position deletion
func (h *Handler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.DeleteHolding(r.Context(), userID, id); err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}

// PortfolioValuation restates the portfolio in the base currency
func (h *Handler) PortfolioValuation(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	valuations, total, err := h.svc.PortfolioValuation(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"holdings": valuations,
		"total":    total,
	})
}

// CreateGoal handles savings goal creation
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var g models.Goal
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := h.svc.CreateGoal(r.Context(), userID, &g)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, created)
}

// ListGoals handles savings goal listing
func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	list, err := h.svc.ListGoals(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err)
		return
	}

	type goalWithProgress struct {
		models.Goal
		Progress decimal.Decimal `json:"progress"`
	}
	out := make([]goalWithProgress, 0, len(list))
	for _, g := range list {
		out = append(out, goalWithProgress{Goal: g, Progress: g.Progress()})
	}
	h.respondJSON(w, http.StatusOK, out)
}

// UpdateGoal handles savings goal updates
func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var g models.Goal
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	g.ID = id
	updated, err := h.svc.UpdateGoal(r.Context(), userID, &g)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, updated)
}

// DeleteGoal handles savings goal deletion
func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.DeleteGoal(r.Context(), userID, id); err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}
