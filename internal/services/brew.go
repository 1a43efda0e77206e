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

// BrewService handles brew and brew-catalog business logic
type BrewService struct {
	brewRepo *repository.BrewRepository
}

// NewBrewService creates a new brew service
func NewBrewService(brewRepo *repository.BrewRepository) *BrewService {
	return &BrewService{brewRepo: brewRepo}
}

// CreateBrewRequest carries the input for a new brew
type CreateBrewRequest struct {
	BrewTypeID     string     `json:"brew_type"`
	QualityIDs     []string   `json:"qualities"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// CreateBrew creates an immutable brewing record owned by the actor
func (s *BrewService) CreateBrew(ctx context.Context, actorID string, req CreateBrewRequest) (*models.Brew, error) {
	if req.BrewTypeID == "" {
		return nil, errs.Validation("brew_type is required")
	}

	brew := &models.Brew{
		ID:             uuid.New().String(),
		BrewTypeID:     req.BrewTypeID,
		CreatorID:      actorID,
		QualityIDs:     req.QualityIDs,
		StartDate:      req.StartDate,
		CompletionDate: req.CompletionDate,
		Notes:          req.Notes,
		CreatedAt:      time.Now(),
	}

	if err := s.brewRepo.Create(ctx, brew); err != nil {
		return nil, fmt.Errorf("failed to create brew: %w", err)
	}
	return brew, nil
}

// MyBrews lists the brews created by the actor
func (s *BrewService) MyBrews(ctx context.Context, actorID string, limit, offset int) ([]models.Brew, error) {
	return s.brewRepo.ListByCreator(ctx, actorID, limit, offset)
}

// BrewTypes lists the brew type catalog
func (s *BrewService) BrewTypes(ctx context.Context) ([]models.BrewType, error) {
	return s.brewRepo.ListBrewTypes(ctx)
}

// Qualities lists the quality catalog
func (s *BrewService) Qualities(ctx context.Context) ([]models.Quality, error) {
	return s.brewRepo.ListQualities(ctx)
}
