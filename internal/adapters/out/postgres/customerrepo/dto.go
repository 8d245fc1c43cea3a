// Package customerrepo persists customer aggregates.
package customerrepo

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"courierdesk/internal/core/domain/model/customer"
	"courierdesk/internal/core/domain/model/kernel"
)

// CustomerDTO is the customers row. A NULL rate means the company default applies.
type CustomerDTO struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Name       string           `gorm:"type:varchar(200);not null"`
	PricePerLb *decimal.Decimal `gorm:"type:numeric(12,4)"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:         c.ID().Bytes(),
		Name:       c.Name(),
		PricePerLb: c.PricePerLb(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return customer.RestoreCustomer(id, dto.Name, dto.PricePerLb)
}
