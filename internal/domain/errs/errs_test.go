package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsClientError(t *testing.T) {
	client := []error{
		ErrInvalidRange,
		&InsufficientBalanceError{Category: "Annual", Available: 1, Requested: 2},
		fmt.Errorf("approve: %w", ErrInvalidState),
		ErrAlreadyClockedIn,
		ErrDuplicateRecord,
		Invalid("email", "is required"),
	}
	for _, err := range client {
		assert.True(t, IsClientError(err), err.Error())
	}

	for _, err := range []error{ErrNotFound, ErrForbidden, ErrStoreUnavailable, errors.New("boom")} {
		assert.False(t, IsClientError(err), err.Error())
	}
}

func TestInsufficientBalanceErrorUnwraps(t *testing.T) {
	err := fmt.Errorf("decide: %w", &InsufficientBalanceError{Category: "Sick", Available: 0, Requested: 1})
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.EqualError(t, err, "decide: insufficient Sick leave balance: available 0, requested 1")
}
