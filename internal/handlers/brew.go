package handlers

import (
	"encoding/json"
	"net/http"

	"neighbrewhood-backend/internal/middleware"
	"neighbrewhood-backend/internal/models"
	"neighbrewhood-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// BrewHandler handles brew and brew-catalog HTTP requests
type BrewHandler struct {
	brewService *services.BrewService
}

// NewBrewHandler creates a new brew handler
func NewBrewHandler(brewService *services.BrewService) *BrewHandler {
	return &BrewHandler{brewService: brewService}
}

// CreateBrew handles POST /api/v1/brews
func (h *BrewHandler) CreateBrew(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req services.CreateBrewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	brew, err := h.brewService.CreateBrew(ctx, userID, req)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to create brew")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("brew_id", brew.ID).
		Msg("Brew created")

	respondJSON(w, brew, http.StatusCreated)
}

// MyBrews handles GET /api/v1/brews/my
func (h *BrewHandler) MyBrews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	limit, offset := pageParams(r)

	brews, err := h.brewService.MyBrews(ctx, userID, limit, offset)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list brews")
		respondError(w, "Failed to list brews", http.StatusInternalServerError)
		return
	}
	if brews == nil {
		brews = []models.Brew{}
	}

	respondJSON(w, brews, http.StatusOK)
}

// BrewTypes handles GET /api/v1/brews/types
func (h *BrewHandler) BrewTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.brewService.BrewTypes(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list brew types")
		respondError(w, "Failed to list brew types", http.StatusInternalServerError)
		return
	}
	if types == nil {
		types = []models.BrewType{}
	}
	respondJSON(w, types, http.StatusOK)
}

// Qualities handles GET /api/v1/brews/qualities
func (h *BrewHandler) Qualities(w http.ResponseWriter, r *http.Request) {
	qualities, err := h.brewService.Qualities(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list qualities")
		respondError(w, "Failed to list qualities", http.StatusInternalServerError)
		return
	}
	if qualities == nil {
		qualities = []models.Quality{}
	}
	respondJSON(w, qualities, http.StatusOK)
}
