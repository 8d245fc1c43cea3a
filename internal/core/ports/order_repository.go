// Package ports defines the persistence contracts the application layer depends on.
// Implementations live in internal/adapters/out.
package ports

import (
	"context"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and their
// append-only status history.
type OrderRepository interface {
	// Add persists a new order. A duplicate guide yields errs.ObjectAlreadyExistsError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, weight and total of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get reads an order without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate reads an order and locks its row until the surrounding transaction ends,
	// so concurrent status changes of one order are applied one after the other.
	// Unknown ids yield errs.ObjectNotFoundError.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// AppendHistory inserts a history entry. Entries are never updated or deleted.
	AppendHistory(ctx context.Context, entry order.HistoryEntry) error

	// History returns every entry of an order, oldest first.
	History(ctx context.Context, id kernel.UUID) ([]order.HistoryEntry, error)
}
