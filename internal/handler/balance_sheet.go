package handler

import (
	"encoding/json"
	"net/http"

	"github.com/avetrov/finance-service/internal/models"
)

// CreateAsset handles asset creation
func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var a models.Asset
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := h.svc.CreateAsset(r.Context(), userID, &a)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, created)
}

// ListAssets handles asset listing
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	list, err := h.svc.ListAssets(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, list)
}

// UpdateAsset handles asset updates
func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var a models.Asset
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a.ID = id
	updated, err := h.svc.UpdateAsset(r.Context(), userID, &a)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, updated)
}

// DeleteAsset handles asset deletion
func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.DeleteAsset(r.Context(), userID, id); err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}

// CreateLiability handles liability creation
func (h *Handler) CreateLiability(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var l models.Liability
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := h.svc.CreateLiability(r.Context(), userID, &l)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, created)
}

// ListLiabilities handles liability listing
func (h *Handler) ListLiabilities(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	list, err := h.svc.ListLiabilities(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, list)
}

// UpdateLiability handles liability updates
func (h *Handler) UpdateLiability(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var l models.Liability
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	l.ID = id
	updated, err := h.svc.UpdateLiability(r.Context(), userID, &l)
	if err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, updated)
}

// DeleteLiability handles liability deletion
func (h *Handler) DeleteLiability(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.svc.DeleteLiability(r.Context(), userID, id); err != nil {
		h.serviceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusNoContent, nil)
}
