package repository

import (
	"context"
	"errors"
	"fmt"

	"neighbrewhood-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// BrewerRepository handles database operations for brewer profiles
type BrewerRepository struct {
	db *DB
}

// NewBrewerRepository creates a new brewer repository
func NewBrewerRepository(db *DB) *BrewerRepository {
	return &BrewerRepository{db: db}
}

// Create creates a new brewer profile
func (r *BrewerRepository) Create(ctx context.Context, brewer *models.Brewer) error {
	query := `
		INSERT INTO brewers (id, user_id, latitude, longitude, phone_number, can_claim, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Pool.Exec(ctx, query,
		brewer.ID, brewer.UserID, brewer.Latitude, brewer.Longitude,
		brewer.PhoneNumber, brewer.CanClaim, brewer.CreatedAt, brewer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create brewer: %w", err)
	}
	return nil
}

// GetByUserID retrieves the brewer profile for a user. Returns nil with no
// error when the user has no profile.
func (r *BrewerRepository) GetByUserID(ctx context.Context, userID string) (*models.Brewer, error) {
	query := `
		SELECT id, user_id, latitude, longitude, phone_number, can_claim, created_at, updated_at
		FROM brewers
		WHERE user_id = $1
	`
	var brewer models.Brewer
	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(
		&brewer.ID, &brewer.UserID, &brewer.Latitude, &brewer.Longitude,
		&brewer.PhoneNumber, &brewer.CanClaim, &brewer.CreatedAt, &brewer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get brewer by user id: %w", err)
	}
	return &brewer, nil
}
