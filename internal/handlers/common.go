package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"neighbrewhood-backend/internal/errs"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 500
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse represents a success message, including no-op confirmations
type MessageResponse struct {
	Message string `json:"message"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, payload any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, ErrorResponse{Detail: message}, statusCode)
}

// respondServiceError maps a service error kind to its HTTP status. All
// kinds are recoverable and caller-facing; anything unrecognized is a 500
// with a generic detail.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		respondError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, errs.ErrPermission):
		respondError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrCapacity),
		errors.Is(err, errs.ErrConflict):
		respondError(w, err.Error(), http.StatusBadRequest)
	default:
		respondError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// pageParams parses limit/offset query parameters with sane bounds
func pageParams(r *http.Request) (limit, offset int) {
	limit = defaultPageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
