package services

import (
	"context"

	"neighbrewhood-backend/internal/models"
)

type fakeBrewStore struct {
	brews map[string]*models.Brew
}

var _ BrewStore = (*fakeBrewStore)(nil)

func (f *fakeBrewStore) GetByID(_ context.Context, id string) (*models.Brew, error) {
	return f.brews[id], nil
}

type fakeSwapStore struct {
	swaps     map[string]*models.BrewSwap
	hasSwap   map[string]bool
	available map[string]int

	created       []*models.BrewSwap
	statusUpdates map[string]string

	nearby       []models.NearbySwap
	nearbyRadius float64
}

var _ SwapStore = (*fakeSwapStore)(nil)

func newFakeSwapStore() *fakeSwapStore {
	return &fakeSwapStore{
		swaps:         map[string]*models.BrewSwap{},
		hasSwap:       map[string]bool{},
		available:     map[string]int{},
		statusUpdates: map[string]string{},
	}
}

func (f *fakeSwapStore) Create(_ context.Context, swap *models.BrewSwap) error {
	f.created = append(f.created, swap)
	f.swaps[swap.ID] = swap
	return nil
}

func (f *fakeSwapStore) GetByID(_ context.Context, id string) (*models.BrewSwap, error) {
	return f.swaps[id], nil
}

func (f *fakeSwapStore) BrewHasSwap(_ context.Context, brewID string) (bool, error) {
	return f.hasSwap[brewID], nil
}

func (f *fakeSwapStore) UpdateStatus(_ context.Context, swapID, status string) error {
	f.statusUpdates[swapID] = status
	if swap, ok := f.swaps[swapID]; ok {
		swap.Status = status
	}
	return nil
}

func (f *fakeSwapStore) BottlesAvailable(_ context.Context, swapID string) (int, error) {
	return f.available[swapID], nil
}

func (f *fakeSwapStore) List(_ context.Context, _, _ int) ([]models.BrewSwap, error) {
	var out []models.BrewSwap
	for _, swap := range f.swaps {
		out = append(out, *swap)
	}
	return out, nil
}

func (f *fakeSwapStore) ListByCreator(_ context.Context, creatorID string, _, _ int) ([]models.BrewSwap, error) {
	var out []models.BrewSwap
	for _, swap := range f.swaps {
		if swap.CreatorID == creatorID {
			out = append(out, *swap)
		}
	}
	return out, nil
}

func (f *fakeSwapStore) ListNearby(_ context.Context, _, _, radiusMiles float64, _ string, _, _ int) ([]models.NearbySwap, error) {
	f.nearbyRadius = radiusMiles
	return f.nearby, nil
}

type fakeClaimStore struct {
	claims     map[string]*models.SwapClaim
	activeBrew map[string]bool

	created       []*models.SwapClaim
	statusUpdates map[string]string

	acceptMsg string
	acceptErr error
}

var _ ClaimStore = (*fakeClaimStore)(nil)

func newFakeClaimStore() *fakeClaimStore {
	return &fakeClaimStore{
		claims:        map[string]*models.SwapClaim{},
		activeBrew:    map[string]bool{},
		statusUpdates: map[string]string{},
	}
}

func (f *fakeClaimStore) Create(_ context.Context, claim *models.SwapClaim) error {
	f.created = append(f.created, claim)
	f.claims[claim.ID] = claim
	return nil
}

func (f *fakeClaimStore) GetByID(_ context.Context, id string) (*models.SwapClaim, error) {
	return f.claims[id], nil
}

func (f *fakeClaimStore) ListBySwap(_ context.Context, swapID string) ([]models.SwapClaim, error) {
	var out []models.SwapClaim
	for _, claim := range f.claims {
		if claim.SwapID != nil && *claim.SwapID == swapID {
			out = append(out, *claim)
		}
	}
	return out, nil
}

func (f *fakeClaimStore) CountBySwap(ctx context.Context, swapID string) (int, error) {
	claims, _ := f.ListBySwap(ctx, swapID)
	return len(claims), nil
}

func (f *fakeClaimStore) BrewHasActiveClaim(_ context.Context, brewID string) (bool, error) {
	return f.activeBrew[brewID], nil
}

func (f *fakeClaimStore) UpdateStatus(_ context.Context, claimID, status string) error {
	f.statusUpdates[claimID] = status
	if claim, ok := f.claims[claimID]; ok {
		claim.Status = status
	}
	return nil
}

func (f *fakeClaimStore) Accept(_ context.Context, claimID, _ string) (string, error) {
	if f.acceptErr != nil {
		return "", f.acceptErr
	}
	if claim, ok := f.claims[claimID]; ok {
		claim.Status = models.ClaimStatusAccepted
	}
	return f.acceptMsg, nil
}
