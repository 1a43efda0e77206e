package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	cases := []struct {
		err  error
		kind error
	}{
		{Validation("total_bottles must be between 1 and %d", 100), ErrValidation},
		{Permission("You do not own this swap"), ErrPermission},
		{NotFound("Claim %s does not exist", "c1"), ErrNotFound},
		{Capacity("only %d left", 3), ErrCapacity},
		{Conflict("already canceled"), ErrConflict},
	}
	for _, tc := range cases {
		require.ErrorIs(t, tc.err, tc.kind)
	}
}

func TestDetailIsTheMessage(t *testing.T) {
	err := Capacity("not enough bottles available, only %d left", 3)
	require.Equal(t, "not enough bottles available, only 3 left", err.Error())
}

func TestKindsAreDistinct(t *testing.T) {
	require.NotErrorIs(t, Validation("x"), ErrPermission)
	require.NotErrorIs(t, Capacity("x"), ErrConflict)
}

func TestWrappedStillMatches(t *testing.T) {
	err := fmt.Errorf("accept failed: %w", Capacity("no bottles remaining"))
	require.True(t, errors.Is(err, ErrCapacity))
}
