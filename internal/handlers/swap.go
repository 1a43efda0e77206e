package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"neighbrewhood-backend/internal/middleware"
	"neighbrewhood-backend/internal/models"
	"neighbrewhood-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// SwapHandler handles swap-related HTTP requests
type SwapHandler struct {
	swapService  *services.SwapService
	claimService *services.ClaimService
}

// NewSwapHandler creates a new swap handler
func NewSwapHandler(swapService *services.SwapService, claimService *services.ClaimService) *SwapHandler {
	return &SwapHandler{
		swapService:  swapService,
		claimService: claimService,
	}
}

// CreateSwapRequest represents the request body for creating a swap
type CreateSwapRequest struct {
	BrewID       string `json:"brew"`
	TotalBottles int    `json:"total_bottles"`
	MaxIncrement int    `json:"max_increment,omitempty"`
}

// SwapResponse decorates a swap with its derived bottle count, claim count
// and the viewer's legal next actions.
type SwapResponse struct {
	models.BrewSwap
	BottlesAvailable int                        `json:"bottles_available"`
	Claims           int                        `json:"claims"`
	DistanceMeters   *float64                   `json:"distance_m,omitempty"`
	Actions          map[string]services.Action `json:"actions"`
}

// buildSwapResponse shapes one swap for the given viewer
func (h *SwapHandler) buildSwapResponse(r *http.Request, swap *models.BrewSwap) (*SwapResponse, error) {
	ctx := r.Context()
	viewerID := middleware.GetUserID(ctx)

	available, err := h.swapService.BottlesAvailable(ctx, swap.ID)
	if err != nil {
		return nil, err
	}
	claims, err := h.claimService.ClaimCount(ctx, swap.ID)
	if err != nil {
		return nil, err
	}
	return &SwapResponse{
		BrewSwap:         *swap,
		BottlesAvailable: available,
		Claims:           claims,
		Actions:          services.SwapActions(swap, viewerID),
	}, nil
}

func (h *SwapHandler) buildSwapResponses(r *http.Request, swaps []models.BrewSwap) ([]SwapResponse, error) {
	responses := make([]SwapResponse, 0, len(swaps))
	for i := range swaps {
		resp, err := h.buildSwapResponse(r, &swaps[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// CreateSwap handles POST /api/v1/swaps
func (h *SwapHandler) CreateSwap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req CreateSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.BrewID == "" {
		respondError(w, "brew is required", http.StatusBadRequest)
		return
	}

	swap, err := h.swapService.CreateSwap(ctx, req.BrewID, req.TotalBottles, req.MaxIncrement, userID)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("brew_id", req.BrewID).
			Msg("Failed to create swap")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("swap_id", swap.ID).
		Int("total_bottles", swap.TotalBottles).
		Msg("Swap created")

	resp, err := h.buildSwapResponse(r, swap)
	if err != nil {
		respondError(w, "Failed to build swap response", http.StatusInternalServerError)
		return
	}
	respondJSON(w, resp, http.StatusCreated)
}

// ListSwaps handles GET /api/v1/swaps
func (h *SwapHandler) ListSwaps(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)

	swaps, err := h.swapService.ListSwaps(r.Context(), limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list swaps")
		respondError(w, "Failed to list swaps", http.StatusInternalServerError)
		return
	}

	responses, err := h.buildSwapResponses(r, swaps)
	if err != nil {
		respondError(w, "Failed to build swap responses", http.StatusInternalServerError)
		return
	}
	respondJSON(w, responses, http.StatusOK)
}

// MySwaps handles GET /api/v1/swaps/my
func (h *SwapHandler) MySwaps(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	limit, offset := pageParams(r)

	swaps, err := h.swapService.MySwaps(ctx, userID, limit, offset)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list my swaps")
		respondError(w, "Failed to list swaps", http.StatusInternalServerError)
		return
	}

	responses, err := h.buildSwapResponses(r, swaps)
	if err != nil {
		respondError(w, "Failed to build swap responses", http.StatusInternalServerError)
		return
	}
	respondJSON(w, responses, http.StatusOK)
}

// NearbySwaps handles GET /api/v1/swaps/nearby. The origin defaults to the
// viewer's registered location; lat/lon query parameters override it, and
// "within" sets the radius in miles.
func (h *SwapHandler) NearbySwaps(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	brewer := middleware.GetBrewer(ctx)
	limit, offset := pageParams(r)

	lat, lon := brewer.Latitude, brewer.Longitude
	query := r.URL.Query()
	if rawLat, rawLon := query.Get("lat"), query.Get("lon"); rawLat != "" || rawLon != "" {
		parsedLat, errLat := strconv.ParseFloat(rawLat, 64)
		parsedLon, errLon := strconv.ParseFloat(rawLon, 64)
		if errLat != nil || errLon != nil {
			respondError(w, "lat and lon must both be valid coordinates", http.StatusBadRequest)
			return
		}
		lat, lon = parsedLat, parsedLon
	}

	var radiusMiles float64
	if raw := query.Get("within"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			respondError(w, "within must be a positive number of miles", http.StatusBadRequest)
			return
		}
		radiusMiles = parsed
	}

	nearby, err := h.swapService.NearbySwaps(ctx, lat, lon, radiusMiles, userID, limit, offset)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list nearby swaps")
		respondError(w, "Failed to list nearby swaps", http.StatusInternalServerError)
		return
	}

	responses := make([]SwapResponse, 0, len(nearby))
	for i := range nearby {
		resp, err := h.buildSwapResponse(r, &nearby[i].BrewSwap)
		if err != nil {
			respondError(w, "Failed to build swap responses", http.StatusInternalServerError)
			return
		}
		distance := nearby[i].DistanceMeters
		resp.DistanceMeters = &distance
		responses = append(responses, *resp)
	}
	respondJSON(w, responses, http.StatusOK)
}

// SwapDetail handles GET /api/v1/swaps/{swap_id}
func (h *SwapHandler) SwapDetail(w http.ResponseWriter, r *http.Request) {
	swapID := chi.URLParam(r, "swap_id")

	swap, err := h.swapService.Detail(r.Context(), swapID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp, err := h.buildSwapResponse(r, swap)
	if err != nil {
		respondError(w, "Failed to build swap response", http.StatusInternalServerError)
		return
	}
	respondJSON(w, resp, http.StatusOK)
}

// SetLive handles GET /api/v1/swaps/{swap_id}/set_live
func (h *SwapHandler) SetLive(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.swapService.SetLive)
}

// SetComplete handles GET /api/v1/swaps/{swap_id}/set_complete
func (h *SwapHandler) SetComplete(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.swapService.SetComplete)
}

// SetInactive handles GET /api/v1/swaps/{swap_id}/set_inactive
func (h *SwapHandler) SetInactive(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.swapService.SetInactive)
}

func (h *SwapHandler) setStatus(w http.ResponseWriter, r *http.Request, transition func(ctx context.Context, swapID, actorID string) (string, error)) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	swapID := chi.URLParam(r, "swap_id")

	msg, err := transition(ctx, swapID, userID)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("swap_id", swapID).
			Msg("Failed to transition swap status")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("swap_id", swapID).
		Str("message", msg).
		Msg("Swap status transition")

	respondJSON(w, MessageResponse{Message: msg}, http.StatusOK)
}
