package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/avetrov/finance-service/internal/service"
)

// CreateInstallment handles installment plan creation
func (h *Handler) CreateInstallment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var input service.InstallmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Ledger().Create(r.Context(), userID, input, time.Now())
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, created)
}

// ListInstallments handles installment plan listing
func (h *Handler) ListInstallments(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	list, err := h.svc.Ledger().List(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, list)
}

// PayInstallment records one completed payment on a plan
func (h *Handler) PayInstallment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}

	updated, err := h.svc.Ledger().MarkPaymentComplete(r.Context(), userID, id, time.Now())
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, updated)
}

// RefreshInstallmentStatuses flips past-due plans to overdue
func (h *Handler) RefreshInstallmentStatuses(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	flipped, err := h.svc.Ledger().RefreshStatuses(r.Context(), userID, time.Now())
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"overdue": flipped})
}

// DeleteInstallment deletes a plan and its linked transactions
func (h *Handler) DeleteInstallment(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.Ledger().Delete(r.Context(), userID, id); err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}
