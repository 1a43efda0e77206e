package repository

import (
	"context"
	"errors"
	"fmt"

	"neighbrewhood-backend/internal/errs"
	"neighbrewhood-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// ClaimRepository handles database operations for swap claims
type ClaimRepository struct {
	db *DB
}

// NewClaimRepository creates a new claim repository
func NewClaimRepository(db *DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

// Create creates a new claim
func (r *ClaimRepository) Create(ctx context.Context, claim *models.SwapClaim) error {
	query := `
		INSERT INTO claims (id, brew_id, swap_id, creator_id, num_bottles, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Pool.Exec(ctx, query,
		claim.ID, claim.BrewID, claim.SwapID, claim.CreatorID,
		claim.NumBottles, claim.Status, claim.CreatedAt, claim.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create claim: %w", err)
	}
	return nil
}

// GetByID retrieves a claim by ID. Returns nil with no error when the
// claim does not exist.
func (r *ClaimRepository) GetByID(ctx context.Context, id string) (*models.SwapClaim, error) {
	query := `
		SELECT id, brew_id, swap_id, creator_id, num_bottles, status, created_at, updated_at
		FROM claims
		WHERE id = $1
	`
	var claim models.SwapClaim
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&claim.ID, &claim.BrewID, &claim.SwapID, &claim.CreatorID,
		&claim.NumBottles, &claim.Status, &claim.CreatedAt, &claim.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}
	return &claim, nil
}

// ListBySwap retrieves all claims against a swap, oldest first
func (r *ClaimRepository) ListBySwap(ctx context.Context, swapID string) ([]models.SwapClaim, error) {
	query := `
		SELECT id, brew_id, swap_id, creator_id, num_bottles, status, created_at, updated_at
		FROM claims
		WHERE swap_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Pool.Query(ctx, query, swapID)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	defer rows.Close()

	var claims []models.SwapClaim
	for rows.Next() {
		var claim models.SwapClaim
		if err := rows.Scan(
			&claim.ID, &claim.BrewID, &claim.SwapID, &claim.CreatorID,
			&claim.NumBottles, &claim.Status, &claim.CreatedAt, &claim.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims = append(claims, claim)
	}
	return claims, rows.Err()
}

// CountBySwap counts all claims against a swap
func (r *ClaimRepository) CountBySwap(ctx context.Context, swapID string) (int, error) {
	query := `SELECT COUNT(*) FROM claims WHERE swap_id = $1`
	var count int
	if err := r.db.Pool.QueryRow(ctx, query, swapID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count claims: %w", err)
	}
	return count, nil
}

// BrewHasActiveClaim checks if a brew already backs a pending or accepted claim
func (r *ClaimRepository) BrewHasActiveClaim(ctx context.Context, brewID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM claims WHERE brew_id = $1 AND status = ANY($2))`
	var exists bool
	err := r.db.Pool.QueryRow(ctx, query, brewID,
		[]string{models.ClaimStatusPending, models.ClaimStatusAccepted},
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check brew claim: %w", err)
	}
	return exists, nil
}

// UpdateStatus persists a claim status transition
func (r *ClaimRepository) UpdateStatus(ctx context.Context, claimID, status string) error {
	query := `UPDATE claims SET status = $1, updated_at = now() WHERE id = $2`
	result, err := r.db.Pool.Exec(ctx, query, status, claimID)
	if err != nil {
		return fmt.Errorf("failed to update claim status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("claim not found")
	}
	return nil
}

// Accept flips a claim to Accepted inside a single transaction scoped to
// its swap. The swap row is locked FOR UPDATE so the capacity re-check and
// the status write form one serializable unit: of two accepts racing for
// the last bottles, exactly one commits and the other sees the reduced
// remainder.
func (r *ClaimRepository) Accept(ctx context.Context, claimID, swapID string) (msg string, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to begin accept transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = fmt.Errorf("failed to commit accept transaction: %w", e)
		}
	}()

	const lockSwap = `SELECT total_bottles FROM swaps WHERE id=$1 FOR UPDATE`
	var totalBottles int
	if err = tx.QueryRow(ctx, lockSwap, swapID).Scan(&totalBottles); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = errs.NotFound("swap %s no longer exists", swapID)
		}
		return "", err
	}

	const readClaim = `SELECT status, num_bottles FROM claims WHERE id=$1 FOR UPDATE`
	var status string
	var numBottles int
	if err = tx.QueryRow(ctx, readClaim, claimID).Scan(&status, &numBottles); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = errs.NotFound("claim %s does not exist", claimID)
		}
		return "", err
	}

	switch status {
	case models.ClaimStatusAccepted:
		return "Claim already accepted", nil
	case models.ClaimStatusCanceled:
		err = errs.Conflict("this claim has already been canceled by the creator")
		return "", err
	case models.ClaimStatusRejected:
		err = errs.Conflict("this claim has already been rejected")
		return "", err
	}

	const sumAccepted = `SELECT COALESCE(SUM(num_bottles), 0) FROM claims WHERE swap_id=$1 AND status=$2`
	var accepted int
	if err = tx.QueryRow(ctx, sumAccepted, swapID, models.ClaimStatusAccepted).Scan(&accepted); err != nil {
		return "", err
	}

	available := totalBottles - accepted
	if available == 0 {
		err = errs.Capacity("can't accept, no bottles remaining")
		return "", err
	}
	if numBottles > available {
		err = errs.Capacity("not enough bottles available, only %d left", available)
		return "", err
	}

	const accept = `UPDATE claims SET status=$1, updated_at=now() WHERE id=$2`
	if _, err = tx.Exec(ctx, accept, models.ClaimStatusAccepted, claimID); err != nil {
		return "", err
	}
	return "Claim accepted", nil
}
