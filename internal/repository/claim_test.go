package repository

import (
	"context"
	"regexp"
	"testing"

	"neighbrewhood-backend/internal/errs"
	"neighbrewhood-backend/internal/models"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

const (
	lockSwapSQL    = `SELECT total_bottles FROM swaps WHERE id=$1 FOR UPDATE`
	readClaimSQL   = `SELECT status, num_bottles FROM claims WHERE id=$1 FOR UPDATE`
	sumAcceptedSQL = `SELECT COALESCE(SUM(num_bottles), 0) FROM claims WHERE swap_id=$1 AND status=$2`
	acceptSQL      = `UPDATE claims SET status=$1, updated_at=now() WHERE id=$2`
)

func TestClaimRepo_Accept_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewClaimRepository(db)

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockSwapSQL)).
		WithArgs("swap-1").
		WillReturnRows(pgxmock.NewRows([]string{"total_bottles"}).AddRow(10))
	mock.ExpectQuery(regexp.QuoteMeta(readClaimSQL)).
		WithArgs("claim-1").
		WillReturnRows(pgxmock.NewRows([]string{"status", "num_bottles"}).
			AddRow(models.ClaimStatusPending, 2))
	mock.ExpectQuery(regexp.QuoteMeta(sumAcceptedSQL)).
		WithArgs("swap-1", models.ClaimStatusAccepted).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(acceptSQL)).
		WithArgs(models.ClaimStatusAccepted, "claim-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	msg, err := r.Accept(ctx, "claim-1", "swap-1")
	require.NoError(t, err)
	require.Equal(t, "Claim accepted", msg)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A second accept racing for the last bottles sees the committed remainder
// under the swap-row lock and fails with the live count in the message.
func TestClaimRepo_Accept_NotEnoughRemaining(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewClaimRepository(db)

	ctx := context.Background()

	// total 8, claim A of 5 already accepted, claim B wants 5: only 3 left.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockSwapSQL)).
		WithArgs("swap-1").
		WillReturnRows(pgxmock.NewRows([]string{"total_bottles"}).AddRow(8))
	mock.ExpectQuery(regexp.QuoteMeta(readClaimSQL)).
		WithArgs("claim-b").
		WillReturnRows(pgxmock.NewRows([]string{"status", "num_bottles"}).
			AddRow(models.ClaimStatusPending, 5))
	mock.ExpectQuery(regexp.QuoteMeta(sumAcceptedSQL)).
		WithArgs("swap-1", models.ClaimStatusAccepted).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(5))
	mock.ExpectRollback()

	_, err := r.Accept(ctx, "claim-b", "swap-1")
	require.ErrorIs(t, err, errs.ErrCapacity)
	require.Equal(t, "not enough bottles available, only 3 left", err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimRepo_Accept_NoBottlesRemaining(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewClaimRepository(db)

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockSwapSQL)).
		WithArgs("swap-1").
		WillReturnRows(pgxmock.NewRows([]string{"total_bottles"}).AddRow(8))
	mock.ExpectQuery(regexp.QuoteMeta(readClaimSQL)).
		WithArgs("claim-1").
		WillReturnRows(pgxmock.NewRows([]string{"status", "num_bottles"}).
			AddRow(models.ClaimStatusPending, 1))
	mock.ExpectQuery(regexp.QuoteMeta(sumAcceptedSQL)).
		WithArgs("swap-1", models.ClaimStatusAccepted).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(8))
	mock.ExpectRollback()

	_, err := r.Accept(ctx, "claim-1", "swap-1")
	require.ErrorIs(t, err, errs.ErrCapacity)
	require.Equal(t, "can't accept, no bottles remaining", err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimRepo_Accept_AlreadyAccepted_NoOp(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewClaimRepository(db)

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockSwapSQL)).
		WithArgs("swap-1").
		WillReturnRows(pgxmock.NewRows([]string{"total_bottles"}).AddRow(10))
	mock.ExpectQuery(regexp.QuoteMeta(readClaimSQL)).
		WithArgs("claim-1").
		WillReturnRows(pgxmock.NewRows([]string{"status", "num_bottles"}).
			AddRow(models.ClaimStatusAccepted, 2))
	mock.ExpectCommit()

	msg, err := r.Accept(ctx, "claim-1", "swap-1")
	require.NoError(t, err)
	require.Equal(t, "Claim already accepted", msg)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimRepo_Accept_CanceledClaim(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewClaimRepository(db)

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockSwapSQL)).
		WithArgs("swap-1").
		WillReturnRows(pgxmock.NewRows([]string{"total_bottles"}).AddRow(10))
	mock.ExpectQuery(regexp.QuoteMeta(readClaimSQL)).
		WithArgs("claim-1").
		WillReturnRows(pgxmock.NewRows([]string{"status", "num_bottles"}).
			AddRow(models.ClaimStatusCanceled, 2))
	mock.ExpectRollback()

	_, err := r.Accept(ctx, "claim-1", "swap-1")
	require.ErrorIs(t, err, errs.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimRepo_Accept_SwapGone(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewClaimRepository(db)

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(lockSwapSQL)).
		WithArgs("swap-1").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := r.Accept(ctx, "claim-1", "swap-1")
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimRepo_BrewHasActiveClaim(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewClaimRepository(db)

	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT EXISTS(SELECT 1 FROM claims WHERE brew_id = $1 AND status = ANY($2))`,
	)).
		WithArgs("brew-1", []string{models.ClaimStatusPending, models.ClaimStatusAccepted}).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	backing, err := r.BrewHasActiveClaim(ctx, "brew-1")
	require.NoError(t, err)
	require.True(t, backing)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimRepo_GetByID_Missing(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewClaimRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM claims`).
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	claim, err := r.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, claim)
}
