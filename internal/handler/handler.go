package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/avetrov/finance-service/internal/middleware"
	"github.com/avetrov/finance-service/internal/repository"
	"github.com/avetrov/finance-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			h.log.Errorf("Failed to encode response: %v", err)
		}
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, map[string]string{"error": msg})
}

// serviceError maps repository and validation failures onto HTTP codes.
// A not-found row means 404; anything the service rejected before
// touching the database reads as a 400 to the caller.
func (h *Handler) serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		h.respondError(w, http.StatusNotFound, "not found")
	default:
		h.respondError(w, http.StatusBadRequest, err.Error())
	}
}

// userID pulls the authenticated user id set by the auth middleware.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
	}
	return id, ok
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// monthQuery reads optional ?year= and ?month= parameters, defaulting
// to the current month.
func monthQuery(r *http.Request, now time.Time) (int, time.Month) {
	year, month := now.Year(), now.Month()
	if v := r.URL.Query().Get("year"); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	if v := r.URL.Query().Get("month"); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			month = time.Month(m)
		}
	}
	return year, month
}
