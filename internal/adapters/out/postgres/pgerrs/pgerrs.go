// Package pgerrs translates Postgres failures into the errs taxonomy so that
// application code never depends on driver types.
package pgerrs

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"courierdesk/internal/pkg/errs"
)

// SQLSTATE codes the adapters react to.
const (
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	LockNotAvailable     = "55P03"
	UniqueViolation      = "23505"
	ForeignKeyViolation  = "23503"
)

// Translate maps a driver error to an errs type. param names the object the
// statement touched, id identifies it when known. Errors that carry no SQLSTATE
// are returned unchanged.
func Translate(err error, param string, id any) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case SerializationFailure, DeadlockDetected, LockNotAvailable:
		return errs.NewConcurrencyConflictErrorWithCause(param, err)
	case UniqueViolation:
		return errs.NewObjectAlreadyExistsErrorWithCause(param, id, err)
	case ForeignKeyViolation:
		return errs.NewObjectNotFoundErrorWithCause(param, id, err)
	default:
		return err
	}
}
