package ports

import (
	"context"

	"courierdesk/internal/core/domain/model/customer"
	"courierdesk/internal/core/domain/model/kernel"
)

// CustomerRepository defines the persistence contract for customers.
type CustomerRepository interface {
	Add(ctx context.Context, aggregate *customer.Customer) error

	// Get yields errs.ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
}
