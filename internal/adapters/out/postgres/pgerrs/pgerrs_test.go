package pgerrs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"courierdesk/internal/adapters/out/postgres/pgerrs"
	"courierdesk/internal/pkg/errs"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		code string
		want error
	}{
		{"serialization failure", pgerrs.SerializationFailure, errs.ErrConcurrencyConflict},
		{"deadlock", pgerrs.DeadlockDetected, errs.ErrConcurrencyConflict},
		{"lock not available", pgerrs.LockNotAvailable, errs.ErrConcurrencyConflict},
		{"unique violation", pgerrs.UniqueViolation, errs.ErrObjectAlreadyExists},
		{"foreign key violation", pgerrs.ForeignKeyViolation, errs.ErrObjectNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driverErr := fmt.Errorf("exec: %w", &pgconn.PgError{Code: tt.code})

			err := pgerrs.Translate(driverErr, "order", "EC-1")

			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.code)
		})
	}
}

func TestTranslate_PassThrough(t *testing.T) {
	assert.NoError(t, pgerrs.Translate(nil, "order", nil))

	plain := errors.New("connection reset")
	assert.Same(t, plain, pgerrs.Translate(plain, "order", nil))

	other := &pgconn.PgError{Code: "22001"}
	assert.Same(t, error(other), pgerrs.Translate(other, "order", nil))
}
