package queries

import (
	"errors"

	"github.com/shopspring/decimal"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/pkg/guard"
)

var ErrGetAllCustomersQueryIsNotConstructed = errors.New(
	"GetAllCustomersQuery must be created via NewGetAllCustomersQuery constructor",
)

// GetAllCustomersQuery lists customers with their negotiated rates.
type GetAllCustomersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAllCustomersQuery() GetAllCustomersQuery {
	return GetAllCustomersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAllCustomersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllCustomersQueryIsNotConstructed)
}

// GetAllCustomersQueryResponse is one customer. PricePerLb is nil when the company default applies.
type GetAllCustomersQueryResponse struct {
	ID         kernel.UUID
	Name       string
	PricePerLb *decimal.Decimal
}
