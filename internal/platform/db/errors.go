package db

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"hrms/internal/domain/errs"
)

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

// ValidID reports whether id can address a UUID key. Stores treat any other
// id as absent.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Classify maps driver errors onto the domain taxonomy. Errors it does not
// recognise are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s", errs.ErrDuplicateRecord, pgErr.ConstraintName)
		case invalidTextRepresentation:
			return fmt.Errorf("%w: %s", errs.ErrNotFound, pgErr.Message)
		}
	}
	var connectErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connectErr) || errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) || pgconn.SafeToRetry(err) {
		return fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	}
	return err
}
