package services

import (
	"context"
	"fmt"
	"time"

	"neighbrewhood-backend/internal/errs"
	"neighbrewhood-backend/internal/models"
	"neighbrewhood-backend/internal/repository"

	"github.com/google/uuid"
)

// BrewerService handles brewer profile business logic
type BrewerService struct {
	brewerRepo *repository.BrewerRepository
}

// NewBrewerService creates a new brewer service
func NewBrewerService(brewerRepo *repository.BrewerRepository) *BrewerService {
	return &BrewerService{brewerRepo: brewerRepo}
}

// CreateProfile creates the brewer profile for a user. A user has at most
// one profile; the registered location feeds proximity search.
func (s *BrewerService) CreateProfile(ctx context.Context, userID string, lat, lon float64, phoneNumber string) (*models.Brewer, error) {
	existing, err := s.brewerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}
	if existing != nil {
		return nil, errs.Validation("You already have a brewer profile.")
	}

	if lat < -90 || lat > 90 {
		return nil, errs.Validation("latitude must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return nil, errs.Validation("longitude must be between -180 and 180")
	}
	if phoneNumber == "" {
		return nil, errs.Validation("phone_number is required")
	}

	now := time.Now()
	brewer := &models.Brewer{
		ID:          uuid.New().String(),
		UserID:      userID,
		Latitude:    lat,
		Longitude:   lon,
		PhoneNumber: phoneNumber,
		CanClaim:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.brewerRepo.Create(ctx, brewer); err != nil {
		return nil, fmt.Errorf("failed to create brewer: %w", err)
	}
	return brewer, nil
}

// GetProfile returns the brewer profile for a user, or nil when the user
// has not created one yet.
func (s *BrewerService) GetProfile(ctx context.Context, userID string) (*models.Brewer, error) {
	return s.brewerRepo.GetByUserID(ctx, userID)
}
