package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/avetrov/finance-service/internal/models"
	"github.com/gorilla/mux"
)

func recurringKind(r *http.Request) string {
	switch mux.Vars(r)["kind"] {
	case "income":
		return models.RecurringIncome
	case "expenses":
		return models.RecurringExpense
	}
	return ""
}

// CreateRecurringItem handles creation of a recurring income or expense
func (h *Handler) CreateRecurringItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	kind := recurringKind(r)
	if kind == "" {
		h.respondError(w, http.StatusNotFound, "not found")
		return
	}

	var item models.RecurringItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item.Kind = kind
	item.IsActive = true

	created, err := h.svc.CreateRecurringItem(r.Context(), userID, &item)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, created)
}

// ListRecurringItems handles listing of recurring items by kind
func (h *Handler) ListRecurringItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	kind := recurringKind(r)
	if kind == "" {
		h.respondError(w, http.StatusNotFound, "not found")
		return
	}

	list, err := h.svc.ListRecurringItems(r.Context(), userID, kind)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, list)
}

// UpdateRecurringItem handles recurring item updates
func (h *Handler) UpdateRecurringItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	kind := recurringKind(r)
	id, err := pathID(r)
	if kind == "" || err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var item models.RecurringItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item.ID = id
	item.Kind = kind

	updated, err := h.svc.UpdateRecurringItem(r.Context(), userID, &item)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, updated)
}

// DeleteRecurringItem handles recurring item deletion
func (h *Handler) DeleteRecurringItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.DeleteRecurringItem(r.Context(), userID, id); err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}

// GenerateRecurring runs the batch generation pass for the current
// month and reports how many transactions were emitted.
func (h *Handler) GenerateRecurring(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	count, err := h.svc.GenerateRecurring(r.Context(), userID, time.Now())
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]int{"generated": count})
}

// RecordRecurringNow emits a transaction for one item if it is due.
// A 200 with a null transaction means the item was not due; that is
// not an error.
func (h *Handler) RecordRecurringNow(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	tx, err := h.svc.RecordRecurringNow(r.Context(), userID, id, time.Now())
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"transaction": tx})
}
