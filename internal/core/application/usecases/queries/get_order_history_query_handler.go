package queries

import (
	"context"
	"time"

	"gorm.io/gorm"

	"courierdesk/internal/core/domain/model/order"
	"courierdesk/internal/pkg/errs"
)

// GetOrderHistoryQueryHandler returns the history oldest first. Every call reads
// the table again, so a caller can restart the listing at any time.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle yields errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) ([]HistoryItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	orderID := query.OrderID()

	var exists bool
	if err := db.Raw(`SELECT EXISTS (SELECT 1 FROM orders WHERE id = ?)`, orderID.Bytes()).
		Scan(&exists).Error; err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("order", orderID.String())
	}

	rows, err := db.Raw(`
		SELECT
			status,
			previous_status,
			kind,
			description,
			created_at,
			created_by
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]HistoryItem, 0)
	for rows.Next() {
		var (
			item                   HistoryItem
			status, previous, kind int
			createdAt              time.Time
		)

		if err = rows.Scan(&status, &previous, &kind, &item.Description, &createdAt, &item.CreatedBy); err != nil {
			return nil, err
		}

		item.Status = order.Status(status)
		item.PreviousStatus = order.Status(previous)
		item.Kind = order.TransitionKind(kind)
		item.CreatedAt = createdAt.UTC()
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
