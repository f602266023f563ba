// Package errs holds the failure taxonomy shared by every domain service.
// Services return these (or structured errors wrapping them); the HTTP layer
// maps them to status codes with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrInvalidRange        = errors.New("invalid date range")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrInvalidState        = errors.New("invalid state")
	ErrAlreadyClockedIn    = errors.New("already clocked in")
	ErrAlreadyClockedOut   = errors.New("already clocked out")
	ErrNotClockedIn        = errors.New("not clocked in yet")
	ErrDuplicateRecord     = errors.New("duplicate record")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrValidation          = errors.New("validation failed")
)

// InsufficientBalanceError carries the shortfall for a balance-tracked category.
type InsufficientBalanceError struct {
	Category  string
	Available int
	Requested int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s leave balance: available %d, requested %d", e.Category, e.Available, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// ValidationError reports a single rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsClientError reports whether err is caused by caller input or resource state
// rather than by an infrastructure fault.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrAlreadyClockedIn) ||
		errors.Is(err, ErrAlreadyClockedOut) ||
		errors.Is(err, ErrNotClockedIn) ||
		errors.Is(err, ErrDuplicateRecord) ||
		errors.Is(err, ErrValidation)
}
