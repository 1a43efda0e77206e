package repository

import (
	"context"
	"errors"
	"fmt"

	"neighbrewhood-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// metersPerMile converts the caller-facing radius to the SQL distance unit.
const metersPerMile = 1609.344

// SwapRepository handles database operations for brew swaps
type SwapRepository struct {
	db *DB
}

// NewSwapRepository creates a new swap repository
func NewSwapRepository(db *DB) *SwapRepository {
	return &SwapRepository{db: db}
}

// Create creates a new swap
func (r *SwapRepository) Create(ctx context.Context, swap *models.BrewSwap) error {
	query := `
		INSERT INTO swaps (id, brew_id, creator_id, status, total_bottles, max_increment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Pool.Exec(ctx, query,
		swap.ID, swap.BrewID, swap.CreatorID, swap.Status,
		swap.TotalBottles, swap.MaxIncrement, swap.CreatedAt, swap.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create swap: %w", err)
	}
	return nil
}

// GetByID retrieves a swap by ID. Returns nil with no error when the swap
// does not exist.
func (r *SwapRepository) GetByID(ctx context.Context, id string) (*models.BrewSwap, error) {
	query := `
		SELECT id, brew_id, creator_id, status, total_bottles, max_increment, created_at, updated_at
		FROM swaps
		WHERE id = $1
	`
	var swap models.BrewSwap
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&swap.ID, &swap.BrewID, &swap.CreatorID, &swap.Status,
		&swap.TotalBottles, &swap.MaxIncrement, &swap.CreatedAt, &swap.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get swap: %w", err)
	}
	return &swap, nil
}

// BrewHasSwap checks if a brew is already wrapped in a swap
func (r *SwapRepository) BrewHasSwap(ctx context.Context, brewID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM swaps WHERE brew_id = $1)`
	var exists bool
	err := r.db.Pool.QueryRow(ctx, query, brewID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check swap existence: %w", err)
	}
	return exists, nil
}

// UpdateStatus persists a swap status transition
func (r *SwapRepository) UpdateStatus(ctx context.Context, swapID, status string) error {
	query := `UPDATE swaps SET status = $1, updated_at = now() WHERE id = $2`
	result, err := r.db.Pool.Exec(ctx, query, status, swapID)
	if err != nil {
		return fmt.Errorf("failed to update swap status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("swap not found")
	}
	return nil
}

// BottlesAvailable recomputes the remaining capacity of a swap from its
// accepted claims. The value is never cached or persisted.
func (r *SwapRepository) BottlesAvailable(ctx context.Context, swapID string) (int, error) {
	query := `
		SELECT s.total_bottles - COALESCE(SUM(c.num_bottles) FILTER (WHERE c.status = $2), 0)
		FROM swaps s
		LEFT JOIN claims c ON c.swap_id = s.id
		WHERE s.id = $1
		GROUP BY s.total_bottles
	`
	var available int
	err := r.db.Pool.QueryRow(ctx, query, swapID, models.ClaimStatusAccepted).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("swap not found")
		}
		return 0, fmt.Errorf("failed to compute bottles available: %w", err)
	}
	return available, nil
}

// List retrieves all swaps, newest first
func (r *SwapRepository) List(ctx context.Context, limit, offset int) ([]models.BrewSwap, error) {
	query := `
		SELECT id, brew_id, creator_id, status, total_bottles, max_increment, created_at, updated_at
		FROM swaps
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list swaps: %w", err)
	}
	defer rows.Close()
	return scanSwaps(rows)
}

// ListByCreator retrieves all swaps created by a user, newest first
func (r *SwapRepository) ListByCreator(ctx context.Context, creatorID string, limit, offset int) ([]models.BrewSwap, error) {
	query := `
		SELECT id, brew_id, creator_id, status, total_bottles, max_increment, created_at, updated_at
		FROM swaps
		WHERE creator_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Pool.Query(ctx, query, creatorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list swaps by creator: %w", err)
	}
	defer rows.Close()
	return scanSwaps(rows)
}

// nearbyQuery finds live swaps whose creator's registered location lies
// within a radius of the origin, ordered by ascending great-circle
// distance. Distance is computed with the haversine formula so matching
// stays accurate at the tens-of-miles scale.
const nearbyQuery = `
	SELECT id, brew_id, creator_id, status, total_bottles, max_increment, created_at, updated_at, distance_m
	FROM (
		SELECT s.id, s.brew_id, s.creator_id, s.status, s.total_bottles, s.max_increment,
		       s.created_at, s.updated_at,
		       2 * 6371000 * asin(sqrt(
		           power(sin(radians(b.latitude - $1) / 2), 2) +
		           cos(radians($1)) * cos(radians(b.latitude)) *
		           power(sin(radians(b.longitude - $2) / 2), 2)
		       )) AS distance_m
		FROM swaps s
		JOIN brewers b ON b.user_id = s.creator_id
		WHERE s.status = $3 AND s.creator_id <> $4
	) nearby
	WHERE distance_m <= $5
	ORDER BY distance_m
	LIMIT $6 OFFSET $7
`

// ListNearby retrieves live swaps within radiusMiles of the origin,
// excluding those created by excludingUserID, closest first. Each result
// carries the distance from the origin in meters.
func (r *SwapRepository) ListNearby(ctx context.Context, lat, lon, radiusMiles float64, excludingUserID string, limit, offset int) ([]models.NearbySwap, error) {
	radiusMeters := radiusMiles * metersPerMile
	rows, err := r.db.Pool.Query(ctx, nearbyQuery,
		lat, lon, models.SwapStatusLive, excludingUserID, radiusMeters, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list nearby swaps: %w", err)
	}
	defer rows.Close()

	var swaps []models.NearbySwap
	for rows.Next() {
		var ns models.NearbySwap
		if err := rows.Scan(
			&ns.ID, &ns.BrewID, &ns.CreatorID, &ns.Status,
			&ns.TotalBottles, &ns.MaxIncrement, &ns.CreatedAt, &ns.UpdatedAt,
			&ns.DistanceMeters,
		); err != nil {
			return nil, fmt.Errorf("failed to scan nearby swap: %w", err)
		}
		swaps = append(swaps, ns)
	}
	return swaps, rows.Err()
}

func scanSwaps(rows pgx.Rows) ([]models.BrewSwap, error) {
	var swaps []models.BrewSwap
	for rows.Next() {
		var swap models.BrewSwap
		if err := rows.Scan(
			&swap.ID, &swap.BrewID, &swap.CreatorID, &swap.Status,
			&swap.TotalBottles, &swap.MaxIncrement, &swap.CreatedAt, &swap.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan swap: %w", err)
		}
		swaps = append(swaps, swap)
	}
	return swaps, rows.Err()
}
