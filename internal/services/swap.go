package services

import (
	"context"
	"fmt"
	"time"

	"neighbrewhood-backend/internal/errs"
	"neighbrewhood-backend/internal/models"

	"github.com/google/uuid"
)

// SwapStore is the persistence surface the swap ledger needs.
type SwapStore interface {
	Create(ctx context.Context, swap *models.BrewSwap) error
	GetByID(ctx context.Context, id string) (*models.BrewSwap, error)
	BrewHasSwap(ctx context.Context, brewID string) (bool, error)
	UpdateStatus(ctx context.Context, swapID, status string) error
	BottlesAvailable(ctx context.Context, swapID string) (int, error)
	List(ctx context.Context, limit, offset int) ([]models.BrewSwap, error)
	ListByCreator(ctx context.Context, creatorID string, limit, offset int) ([]models.BrewSwap, error)
	ListNearby(ctx context.Context, lat, lon, radiusMiles float64, excludingUserID string, limit, offset int) ([]models.NearbySwap, error)
}

// BrewStore is the brew lookup used when validating swap and claim creation.
type BrewStore interface {
	GetByID(ctx context.Context, id string) (*models.Brew, error)
}

// SwapService owns the BrewSwap entity and its bottle-count invariants
type SwapService struct {
	swapRepo           SwapStore
	brewRepo           BrewStore
	defaultRadiusMiles float64
}

// NewSwapService creates a new swap service
func NewSwapService(swapRepo SwapStore, brewRepo BrewStore, defaultRadiusMiles float64) *SwapService {
	if defaultRadiusMiles <= 0 {
		defaultRadiusMiles = 20
	}
	return &SwapService{
		swapRepo:           swapRepo,
		brewRepo:           brewRepo,
		defaultRadiusMiles: defaultRadiusMiles,
	}
}

// CreateSwap wraps an owned, un-swapped brew in a new Inactive swap.
// maxIncrement of 0 means "use the default".
func (s *SwapService) CreateSwap(ctx context.Context, brewID string, totalBottles, maxIncrement int, actorID string) (*models.BrewSwap, error) {
	brew, err := s.brewRepo.GetByID(ctx, brewID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up brew: %w", err)
	}
	if brew == nil {
		return nil, errs.NotFound("Brew with id %s does not exist", brewID)
	}
	if brew.CreatorID != actorID {
		return nil, errs.Permission("You cannot create a swap if you aren't the brewer")
	}

	hasSwap, err := s.swapRepo.BrewHasSwap(ctx, brewID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing swap: %w", err)
	}
	if hasSwap {
		return nil, errs.Validation("This brew already has a swap")
	}

	if totalBottles < 1 || totalBottles > models.MaxTotalBottles {
		return nil, errs.Validation("total_bottles must be between 1 and %d", models.MaxTotalBottles)
	}
	if maxIncrement == 0 {
		maxIncrement = models.DefaultMaxIncrement
		if maxIncrement > totalBottles {
			maxIncrement = totalBottles
		}
	}
	if maxIncrement < 1 {
		return nil, errs.Validation("max_increment must be positive")
	}

	now := time.Now()
	swap := &models.BrewSwap{
		ID:           uuid.New().String(),
		BrewID:       brewID,
		CreatorID:    actorID,
		Status:       models.SwapStatusInactive,
		TotalBottles: totalBottles,
		MaxIncrement: maxIncrement,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := validateSwap(swap); err != nil {
		return nil, err
	}

	if err := s.swapRepo.Create(ctx, swap); err != nil {
		return nil, fmt.Errorf("failed to create swap: %w", err)
	}
	return swap, nil
}

// validateSwap checks the swap's bottle-count invariant before any persist.
func validateSwap(swap *models.BrewSwap) error {
	if swap.MaxIncrement > swap.TotalBottles {
		return errs.Validation("Max increment cannot be larger than total bottles")
	}
	return nil
}

// SetLive makes a swap visible to proximity search and open to claims
func (s *SwapService) SetLive(ctx context.Context, swapID, actorID string) (string, error) {
	return s.setStatus(ctx, swapID, actorID, models.SwapStatusLive,
		"Swap is already live", "Swap is now active")
}

// SetInactive hides a swap from proximity search
func (s *SwapService) SetInactive(ctx context.Context, swapID, actorID string) (string, error) {
	return s.setStatus(ctx, swapID, actorID, models.SwapStatusInactive,
		"Swap is already inactive", "Swap is now inactive")
}

// SetComplete marks a swap complete. Completion is advisory bookkeeping:
// accepted claims are untouched.
func (s *SwapService) SetComplete(ctx context.Context, swapID, actorID string) (string, error) {
	return s.setStatus(ctx, swapID, actorID, models.SwapStatusComplete,
		"Swap is already complete", "Swap is now complete")
}

// setStatus performs an owner-only, idempotent status transition. Any
// status may move to any other.
func (s *SwapService) setStatus(ctx context.Context, swapID, actorID, target, alreadyMsg, doneMsg string) (string, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return "", fmt.Errorf("failed to look up swap: %w", err)
	}
	if swap == nil {
		return "", errs.NotFound("This swap (id: %s) does not exist", swapID)
	}
	if swap.CreatorID != actorID {
		return "", errs.Permission("You do not own this swap")
	}
	if swap.Status == target {
		return alreadyMsg, nil
	}
	if err := s.swapRepo.UpdateStatus(ctx, swapID, target); err != nil {
		return "", fmt.Errorf("failed to update swap status: %w", err)
	}
	return doneMsg, nil
}

// Detail retrieves a single swap
func (s *SwapService) Detail(ctx context.Context, swapID string) (*models.BrewSwap, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up swap: %w", err)
	}
	if swap == nil {
		return nil, errs.NotFound("This swap (id: %s) does not exist", swapID)
	}
	return swap, nil
}

// BottlesAvailable recomputes a swap's remaining capacity
func (s *SwapService) BottlesAvailable(ctx context.Context, swapID string) (int, error) {
	return s.swapRepo.BottlesAvailable(ctx, swapID)
}

// ListSwaps lists all swaps
func (s *SwapService) ListSwaps(ctx context.Context, limit, offset int) ([]models.BrewSwap, error) {
	return s.swapRepo.List(ctx, limit, offset)
}

// MySwaps lists the actor's own swaps
func (s *SwapService) MySwaps(ctx context.Context, actorID string, limit, offset int) ([]models.BrewSwap, error) {
	return s.swapRepo.ListByCreator(ctx, actorID, limit, offset)
}

// NearbySwaps finds live swaps within radiusMiles of the origin, excluding
// the actor's own, ordered by ascending distance. radiusMiles of 0 means
// "use the default".
func (s *SwapService) NearbySwaps(ctx context.Context, lat, lon, radiusMiles float64, actorID string, limit, offset int) ([]models.NearbySwap, error) {
	if radiusMiles <= 0 {
		radiusMiles = s.defaultRadiusMiles
	}
	return s.swapRepo.ListNearby(ctx, lat, lon, radiusMiles, actorID, limit, offset)
}
