package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"courierdesk/internal/core/domain/model/kernel"
)

// GetAllCustomersQueryHandler reads customers sorted by name.
type GetAllCustomersQueryHandler struct {
	db *gorm.DB
}

func NewGetAllCustomersQueryHandler(db *gorm.DB) GetAllCustomersQueryHandler {
	return GetAllCustomersQueryHandler{db: db}
}

func (h GetAllCustomersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCustomersQuery,
) ([]GetAllCustomersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	customers := make([]GetAllCustomersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			price_per_lb
		FROM customers
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetAllCustomersQueryResponse
		var id uuid.UUID
		var rate decimal.NullDecimal

		if err = rows.Scan(&id, &item.Name, &rate); err != nil {
			return nil, err
		}

		customerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = customerID

		if rate.Valid {
			item.PricePerLb = &rate.Decimal
		}
		customers = append(customers, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return customers, nil
}
