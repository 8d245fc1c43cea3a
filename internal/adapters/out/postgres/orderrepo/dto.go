// Package orderrepo persists order aggregates and their status history.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/core/domain/model/order"
)

// OrderDTO is the orders row. History rows reference it and go away with it.
type OrderDTO struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Guide      string           `gorm:"type:varchar(40);not null;uniqueIndex"`
	CustomerID *uuid.UUID       `gorm:"type:uuid;index"`
	WeightLbs  *decimal.Decimal `gorm:"type:numeric"`
	Total      decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	Status     int              `gorm:"not null;index"`
	Facility   int              `gorm:"not null"`
	CreatedAt  time.Time        `gorm:"not null"`

	History []StatusHistoryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// StatusHistoryDTO is one append-only order_status_history row. ID only breaks
// ties between entries written in the same instant.
type StatusHistoryDTO struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index:idx_history_order_created,priority:1"`
	Status         int       `gorm:"not null"`
	PreviousStatus int       `gorm:"not null"`
	Kind           int       `gorm:"not null"`
	Description    string    `gorm:"type:varchar(500);not null"`
	CreatedAt      time.Time `gorm:"not null;index:idx_history_order_created,priority:2"`
	CreatedBy      string    `gorm:"type:varchar(100);not null"`
}

func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(o *order.Order) OrderDTO {
	var customerID *uuid.UUID
	if id := o.CustomerID(); id != nil {
		raw := id.Bytes()
		customerID = &raw
	}

	return OrderDTO{
		ID:         o.ID().Bytes(),
		Guide:      o.Guide(),
		CustomerID: customerID,
		WeightLbs:  o.WeightLbs(),
		Total:      o.Total(),
		Status:     int(o.Status()),
		Facility:   int(o.Facility()),
		CreatedAt:  o.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var customerID *kernel.UUID
	if dto.CustomerID != nil {
		cID, customerErr := kernel.UUIDFromBytes(dto.CustomerID[:])
		if customerErr != nil {
			return nil, customerErr
		}
		customerID = &cID
	}

	return order.RestoreOrder(
		id,
		dto.Guide,
		customerID,
		kernel.Facility(dto.Facility),
		dto.WeightLbs,
		dto.Total,
		order.Status(dto.Status),
		dto.CreatedAt,
	)
}

func historyFromDomain(entry order.HistoryEntry) StatusHistoryDTO {
	return StatusHistoryDTO{
		OrderID:        entry.OrderID().Bytes(),
		Status:         int(entry.Status()),
		PreviousStatus: int(entry.PreviousStatus()),
		Kind:           int(entry.Kind()),
		Description:    entry.Description(),
		CreatedAt:      entry.CreatedAt(),
		CreatedBy:      entry.CreatedBy(),
	}
}

func historyToDomain(dto StatusHistoryDTO) (order.HistoryEntry, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.HistoryEntry{}, err
	}

	return order.RestoreHistoryEntry(
		orderID,
		order.Status(dto.Status),
		order.Status(dto.PreviousStatus),
		order.TransitionKind(dto.Kind),
		dto.Description,
		dto.CreatedAt,
		dto.CreatedBy,
	)
}
