package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"neighbrewhood-backend/internal/middleware"
	"neighbrewhood-backend/internal/models"
	"neighbrewhood-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ClaimHandler handles claim-related HTTP requests
type ClaimHandler struct {
	claimService *services.ClaimService
}

// NewClaimHandler creates a new claim handler
func NewClaimHandler(claimService *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

// CreateClaimRequest represents the request body for claiming bottles
type CreateClaimRequest struct {
	BrewID     string `json:"brew"`
	NumBottles int    `json:"num_bottles"`
}

// ClaimResponse decorates a claim with the viewer's legal next actions
type ClaimResponse struct {
	models.SwapClaim
	Actions map[string]services.Action `json:"actions"`
}

func buildClaimResponse(claim *models.SwapClaim, viewerID string) ClaimResponse {
	return ClaimResponse{
		SwapClaim: *claim,
		Actions:   services.ClaimActions(claim, viewerID),
	}
}

// CreateClaim handles POST /api/v1/swaps/{swap_id}/claim
func (h *ClaimHandler) CreateClaim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	swapID := chi.URLParam(r, "swap_id")

	var req CreateClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.BrewID == "" {
		respondError(w, "brew is required", http.StatusBadRequest)
		return
	}

	claim, err := h.claimService.CreateClaim(ctx, swapID, req.BrewID, req.NumBottles, userID)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("swap_id", swapID).
			Str("brew_id", req.BrewID).
			Msg("Failed to create claim")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("swap_id", swapID).
		Str("claim_id", claim.ID).
		Int("num_bottles", claim.NumBottles).
		Msg("Claim created")

	respondJSON(w, buildClaimResponse(claim, userID), http.StatusCreated)
}

// SwapClaims handles GET /api/v1/swaps/{swap_id}/claims
func (h *ClaimHandler) SwapClaims(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	swapID := chi.URLParam(r, "swap_id")

	claims, err := h.claimService.SwapClaims(ctx, swapID)
	if err != nil {
		log.Error().Err(err).Str("swap_id", swapID).Msg("Failed to list claims")
		respondError(w, "Failed to list claims", http.StatusInternalServerError)
		return
	}

	responses := make([]ClaimResponse, 0, len(claims))
	for i := range claims {
		responses = append(responses, buildClaimResponse(&claims[i], userID))
	}
	respondJSON(w, responses, http.StatusOK)
}

// ClaimDetail handles GET /api/v1/claims/{claim_id}
func (h *ClaimHandler) ClaimDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	claimID := chi.URLParam(r, "claim_id")

	claim, err := h.claimService.Detail(ctx, claimID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, buildClaimResponse(claim, userID), http.StatusOK)
}

// Accept handles GET /api/v1/claims/{claim_id}/accept
func (h *ClaimHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "accept", h.claimService.Accept)
}

// Reject handles GET /api/v1/claims/{claim_id}/reject
func (h *ClaimHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "reject", h.claimService.Reject)
}

// Cancel handles GET /api/v1/claims/{claim_id}/cancel
func (h *ClaimHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "cancel", h.claimService.Cancel)
}

func (h *ClaimHandler) transition(w http.ResponseWriter, r *http.Request, name string, fn func(ctx context.Context, claimID, actorID string) (string, error)) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	claimID := chi.URLParam(r, "claim_id")

	msg, err := fn(ctx, claimID, userID)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("claim_id", claimID).
			Str("transition", name).
			Msg("Failed to transition claim status")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("claim_id", claimID).
		Str("transition", name).
		Str("message", msg).
		Msg("Claim status transition")

	respondJSON(w, MessageResponse{Message: msg}, http.StatusOK)
}
