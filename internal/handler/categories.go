package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/avetrov/finance-service/internal/models"
)

// CreateCategory handles category creation
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var c models.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateCategory(r.Context(), userID, &c)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, created)
}

// ListCategories handles category listing
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	list, err := h.svc.ListCategories(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, list)
}

// UpdateCategory handles category updates
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var c models.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c.ID = id

	updated, err := h.svc.UpdateCategory(r.Context(), userID, &c)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, updated)
}

// DeleteCategory handles category deletion
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.DeleteCategory(r.Context(), userID, id); err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}

// CreateBudget handles budget creation
func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var b models.Budget
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateBudget(r.Context(), userID, &b)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, created)
}

// ListBudgets handles budget listing
func (h *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	list, err := h.svc.ListBudgets(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, list)
}

// UpdateBudget handles budget updates
func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var b models.Budget
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	b.ID = id

	updated, err := h.svc.UpdateBudget(r.Context(), userID, &b)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, updated)
}

// DeleteBudget handles budget deletion
func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.DeleteBudget(r.Context(), userID, id); err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}

// BudgetReport handles the monthly spent-vs-limit report
func (h *Handler) BudgetReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	year, month := monthQuery(r, time.Now())
	report, err := h.svc.BudgetReport(r.Context(), userID, year, month)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, report)
}
