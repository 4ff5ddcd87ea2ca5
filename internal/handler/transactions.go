package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/avetrov/finance-service/internal/models"
)

// CreateTransaction handles transaction creation
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var tx models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateTransaction(r.Context(), userID, &tx)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, created)
}

// ListTransactions handles transaction listing, optionally by month
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var year int
	var month time.Month
	if r.URL.Query().Get("year") != "" || r.URL.Query().Get("month") != "" {
		year, month = monthQuery(r, time.Now())
	}

	list, err := h.svc.ListTransactions(r.Context(), userID, year, month)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, list)
}

// UpdateTransaction handles transaction updates
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var tx models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tx.ID = id

	updated, err := h.svc.UpdateTransaction(r.Context(), userID, &tx)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, updated)
}

// DeleteTransaction handles transaction deletion
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.DeleteTransaction(r.Context(), userID, id); err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}
