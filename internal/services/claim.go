package services

import (
	"context"
	"fmt"
	"time"

	"neighbrewhood-backend/internal/errs"
	"neighbrewhood-backend/internal/models"

	"github.com/google/uuid"
)

// ClaimStore is the persistence surface the claim manager needs.
type ClaimStore interface {
	Create(ctx context.Context, claim *models.SwapClaim) error
	GetByID(ctx context.Context, id string) (*models.SwapClaim, error)
	ListBySwap(ctx context.Context, swapID string) ([]models.SwapClaim, error)
	CountBySwap(ctx context.Context, swapID string) (int, error)
	BrewHasActiveClaim(ctx context.Context, brewID string) (bool, error)
	UpdateStatus(ctx context.Context, claimID, status string) error
	Accept(ctx context.Context, claimID, swapID string) (string, error)
}

// ClaimService owns SwapClaim entities and their status transitions,
// validated against the ledger's remaining capacity.
type ClaimService struct {
	claimRepo ClaimStore
	swapRepo  SwapStore
	brewRepo  BrewStore
}

// NewClaimService creates a new claim service
func NewClaimService(claimRepo ClaimStore, swapRepo SwapStore, brewRepo BrewStore) *ClaimService {
	return &ClaimService{
		claimRepo: claimRepo,
		swapRepo:  swapRepo,
		brewRepo:  brewRepo,
	}
}

// CreateClaim creates a Pending claim against a swap, funded by a brew the
// claimant owns. Capacity is checked against a snapshot here; the hard
// gate is at accept time.
func (s *ClaimService) CreateClaim(ctx context.Context, swapID, brewID string, numBottles int, actorID string) (*models.SwapClaim, error) {
	brew, err := s.brewRepo.GetByID(ctx, brewID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up brew: %w", err)
	}
	if brew == nil {
		return nil, errs.NotFound("Brew %s does not exist", brewID)
	}
	if brew.CreatorID != actorID {
		return nil, errs.Permission("You can't claim with a brew you don't own")
	}

	backing, err := s.claimRepo.BrewHasActiveClaim(ctx, brewID)
	if err != nil {
		return nil, fmt.Errorf("failed to check brew claim: %w", err)
	}
	if backing {
		return nil, errs.Validation("This brew already backs a claim")
	}

	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up swap: %w", err)
	}
	if swap == nil {
		return nil, errs.NotFound("BrewSwap %s doesn't exist", swapID)
	}
	if swap.CreatorID == actorID {
		return nil, errs.Permission("You can't claim your own swap")
	}

	available, err := s.swapRepo.BottlesAvailable(ctx, swapID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute bottles available: %w", err)
	}
	if available == 0 {
		return nil, errs.Capacity("There are no bottles remaining, check back later.")
	}
	if numBottles > available {
		return nil, errs.Capacity("Only %d left", available)
	}
	if numBottles < 1 {
		return nil, errs.Validation("num_bottles must be positive")
	}
	if numBottles > swap.MaxIncrement {
		return nil, errs.Validation("Claim %d larger than allowed max %d", numBottles, swap.MaxIncrement)
	}

	now := time.Now()
	claim := &models.SwapClaim{
		ID:         uuid.New().String(),
		BrewID:     brewID,
		SwapID:     &swapID,
		CreatorID:  actorID,
		NumBottles: numBottles,
		Status:     models.ClaimStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.claimRepo.Create(ctx, claim); err != nil {
		return nil, fmt.Errorf("failed to create claim: %w", err)
	}
	return claim, nil
}

// Accept accepts a pending claim. Ownership is checked here; the capacity
// re-check and the status flip happen atomically in the repository under a
// swap-row lock, so concurrent accepts cannot over-allocate.
func (s *ClaimService) Accept(ctx context.Context, claimID, actorID string) (string, error) {
	claim, swap, err := s.claimWithSwap(ctx, claimID)
	if err != nil {
		return "", err
	}
	if actorID != swap.CreatorID {
		return "", errs.Permission("You can't accept a claim for a swap you didn't create")
	}
	if actorID == claim.CreatorID {
		return "", errs.Permission("You can't accept your own claim")
	}
	return s.claimRepo.Accept(ctx, claimID, swap.ID)
}

// Reject declines a claim. Owner-only and idempotent; distinct from
// Cancel so history keeps "owner declined" apart from "claimant withdrew".
func (s *ClaimService) Reject(ctx context.Context, claimID, actorID string) (string, error) {
	claim, swap, err := s.claimWithSwap(ctx, claimID)
	if err != nil {
		return "", err
	}
	if actorID != swap.CreatorID {
		return "", errs.Permission("You can't reject a claim for a swap you didn't create")
	}
	switch claim.Status {
	case models.ClaimStatusRejected:
		return "Claim already rejected", nil
	case models.ClaimStatusCanceled:
		return "", errs.Conflict("this claim has already been canceled by the creator")
	}
	if err := s.claimRepo.UpdateStatus(ctx, claimID, models.ClaimStatusRejected); err != nil {
		return "", fmt.Errorf("failed to reject claim: %w", err)
	}
	return "Claim rejected", nil
}

// Cancel withdraws a claim. Claimant-only and idempotent; the swap owner
// must use Reject instead.
func (s *ClaimService) Cancel(ctx context.Context, claimID, actorID string) (string, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return "", fmt.Errorf("failed to look up claim: %w", err)
	}
	if claim == nil {
		return "", errs.NotFound("Claim %s does not exist", claimID)
	}
	if actorID != claim.CreatorID {
		return "", errs.Permission("You can't cancel someone elses claim. Maybe you meant to reject?")
	}
	switch claim.Status {
	case models.ClaimStatusCanceled:
		return "Claim already canceled", nil
	case models.ClaimStatusRejected:
		return "", errs.Conflict("this claim has already been rejected")
	}
	if err := s.claimRepo.UpdateStatus(ctx, claimID, models.ClaimStatusCanceled); err != nil {
		return "", fmt.Errorf("failed to cancel claim: %w", err)
	}
	return "Claim canceled", nil
}

// Detail retrieves a single claim
func (s *ClaimService) Detail(ctx context.Context, claimID string) (*models.SwapClaim, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up claim: %w", err)
	}
	if claim == nil {
		return nil, errs.NotFound("Claim %s does not exist", claimID)
	}
	return claim, nil
}

// SwapClaims lists the claims against a swap
func (s *ClaimService) SwapClaims(ctx context.Context, swapID string) ([]models.SwapClaim, error) {
	return s.claimRepo.ListBySwap(ctx, swapID)
}

// ClaimCount counts the claims against a swap
func (s *ClaimService) ClaimCount(ctx context.Context, swapID string) (int, error) {
	return s.claimRepo.CountBySwap(ctx, swapID)
}

// claimWithSwap loads a claim and the swap it targets. Claims whose swap
// was deleted keep existing with a nil swap link and cannot be acted on by
// the (former) swap owner.
func (s *ClaimService) claimWithSwap(ctx context.Context, claimID string) (*models.SwapClaim, *models.BrewSwap, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up claim: %w", err)
	}
	if claim == nil {
		return nil, nil, errs.NotFound("Claim %s does not exist", claimID)
	}
	if claim.SwapID == nil {
		return nil, nil, errs.NotFound("the swap for this claim no longer exists")
	}
	swap, err := s.swapRepo.GetByID(ctx, *claim.SwapID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up swap: %w", err)
	}
	if swap == nil {
		return nil, nil, errs.NotFound("the swap for this claim no longer exists")
	}
	return claim, swap, nil
}
