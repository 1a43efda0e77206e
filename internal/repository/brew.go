package repository

import (
	"context"
	"errors"
	"fmt"

	"neighbrewhood-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// BrewRepository handles database operations for brews and the brew catalog
type BrewRepository struct {
	db *DB
}

// NewBrewRepository creates a new brew repository
func NewBrewRepository(db *DB) *BrewRepository {
	return &BrewRepository{db: db}
}

// Create creates a new brew and links its qualities
func (r *BrewRepository) Create(ctx context.Context, brew *models.Brew) error {
	query := `
		INSERT INTO brews (id, brew_type_id, creator_id, start_date, completion_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Pool.Exec(ctx, query,
		brew.ID, brew.BrewTypeID, brew.CreatorID,
		brew.StartDate, brew.CompletionDate, brew.Notes, brew.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create brew: %w", err)
	}
	for _, qualityID := range brew.QualityIDs {
		_, err := r.db.Pool.Exec(ctx,
			`INSERT INTO brew_qualities (brew_id, quality_id) VALUES ($1, $2)`,
			brew.ID, qualityID,
		)
		if err != nil {
			return fmt.Errorf("failed to link brew quality: %w", err)
		}
	}
	return nil
}

// GetByID retrieves a brew by ID. Returns nil with no error when the brew
// does not exist.
func (r *BrewRepository) GetByID(ctx context.Context, id string) (*models.Brew, error) {
	query := `
		SELECT id, brew_type_id, creator_id, start_date, completion_date, notes, created_at
		FROM brews
		WHERE id = $1
	`
	var brew models.Brew
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&brew.ID, &brew.BrewTypeID, &brew.CreatorID,
		&brew.StartDate, &brew.CompletionDate, &brew.Notes, &brew.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get brew: %w", err)
	}
	return &brew, nil
}

// ListByCreator retrieves all brews created by a user
func (r *BrewRepository) ListByCreator(ctx context.Context, creatorID string, limit, offset int) ([]models.Brew, error) {
	query := `
		SELECT id, brew_type_id, creator_id, start_date, completion_date, notes, created_at
		FROM brews
		WHERE creator_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Pool.Query(ctx, query, creatorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list brews: %w", err)
	}
	defer rows.Close()

	var brews []models.Brew
	for rows.Next() {
		var brew models.Brew
		if err := rows.Scan(
			&brew.ID, &brew.BrewTypeID, &brew.CreatorID,
			&brew.StartDate, &brew.CompletionDate, &brew.Notes, &brew.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan brew: %w", err)
		}
		brews = append(brews, brew)
	}
	return brews, rows.Err()
}

// ListBrewTypes retrieves the brew type catalog
func (r *BrewRepository) ListBrewTypes(ctx context.Context) ([]models.BrewType, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT id, value FROM brew_types ORDER BY value`)
	if err != nil {
		return nil, fmt.Errorf("failed to list brew types: %w", err)
	}
	defer rows.Close()

	var types []models.BrewType
	for rows.Next() {
		var bt models.BrewType
		if err := rows.Scan(&bt.ID, &bt.Value); err != nil {
			return nil, fmt.Errorf("failed to scan brew type: %w", err)
		}
		types = append(types, bt)
	}
	return types, rows.Err()
}

// ListQualities retrieves the quality catalog
func (r *BrewRepository) ListQualities(ctx context.Context) ([]models.Quality, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT id, value FROM qualities ORDER BY value`)
	if err != nil {
		return nil, fmt.Errorf("failed to list qualities: %w", err)
	}
	defer rows.Close()

	var qualities []models.Quality
	for rows.Next() {
		var q models.Quality
		if err := rows.Scan(&q.ID, &q.Value); err != nil {
			return nil, fmt.Errorf("failed to scan quality: %w", err)
		}
		qualities = append(qualities, q)
	}
	return qualities, rows.Err()
}
