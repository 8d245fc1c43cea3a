package queries

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/core/domain/model/order"
)

type GetUndeliveredOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetUndeliveredOrdersQueryHandler(db *gorm.DB) GetUndeliveredOrdersQueryHandler {
	return GetUndeliveredOrdersQueryHandler{db: db}
}

// Handle returns at most query.Limit() orders ordered by creation time.
func (h GetUndeliveredOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUndeliveredOrdersQuery,
) ([]GetUndeliveredOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where := []string{"status <> ?"}
	args := []any{int(order.Delivered)}
	if f := query.Facility(); f != nil {
		where = append(where, "facility = ?")
		args = append(args, int(*f))
	}
	if s := query.Status(); s != nil {
		where = append(where, "status = ?")
		args = append(args, int(*s))
	}
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			guide,
			customer_id,
			status,
			facility,
			total,
			created_at
		FROM orders
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY created_at, id
		LIMIT ?
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetUndeliveredOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			item       GetUndeliveredOrdersQueryResponse
			id         uuid.UUID
			customerID uuid.NullUUID
			status     int
			facility   int
			total      decimal.Decimal
			createdAt  time.Time
		)

		if err = rows.Scan(&id, &item.Guide, &customerID, &status, &facility, &total, &createdAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = orderID

		if customerID.Valid {
			cID, cErr := kernel.UUIDFromBytes(customerID.UUID[:])
			if cErr != nil {
				return nil, cErr
			}
			item.CustomerID = &cID
		}

		item.Status = order.Status(status)
		item.Facility = kernel.Facility(facility)
		item.Total = total
		item.CreatedAt = createdAt.UTC()
		orders = append(orders, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
