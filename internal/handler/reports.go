package handler

import (
	"net/http"
	"time"
)

// MonthlySummary reports income/expense totals for a month
func (h *Handler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	year, month := monthQuery(r, time.Now())
	summary, err := h.svc.MonthlySummary(r.Context(), userID, year, month)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, summary)
}

// InstallmentBurden reports installment load for a month
func (h *Handler) InstallmentBurden(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	year, month := monthQuery(r, time.Now())
	burden, err := h.svc.InstallmentBurden(r.Context(), userID, year, month)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, burden)
}

// NetWorth reports the balance-sheet projection
func (h *Handler) NetWorth(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	nw, err := h.svc.NetWorth(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, nw)
}

// BillsCalendar reports the upcoming bills for a month
func (h *Handler) BillsCalendar(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	now := time.Now()
	year, month := monthQuery(r, now)
	entries, err := h.svc.BillsCalendar(r.Context(), userID, year, month, now)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, entries)
}
