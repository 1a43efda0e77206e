package handlers

import (
	"encoding/json"
	"net/http"

	"neighbrewhood-backend/internal/middleware"
	"neighbrewhood-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// BrewerHandler handles brewer profile HTTP requests
type BrewerHandler struct {
	brewerService *services.BrewerService
}

// NewBrewerHandler creates a new brewer handler
func NewBrewerHandler(brewerService *services.BrewerService) *BrewerHandler {
	return &BrewerHandler{brewerService: brewerService}
}

// CreateBrewerRequest represents the request body for creating a profile
type CreateBrewerRequest struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	PhoneNumber string  `json:"phone_number"`
}

// CreateBrewer handles POST /api/v1/brewers
func (h *BrewerHandler) CreateBrewer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req CreateBrewerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	brewer, err := h.brewerService.CreateProfile(ctx, userID, req.Latitude, req.Longitude, req.PhoneNumber)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create brewer profile")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("brewer_id", brewer.ID).
		Msg("Brewer profile created")

	respondJSON(w, brewer, http.StatusCreated)
}
