// Package voucherrepo persists voucher sequence counters and issued vouchers.
package voucherrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"courierdesk/internal/core/domain/model/voucher"
)

// VoucherSequenceDTO is one counter per (document type, establishment, emission point).
type VoucherSequenceDTO struct {
	DocumentType    string    `gorm:"type:char(2);primaryKey"`
	Establishment   string    `gorm:"type:char(3);primaryKey"`
	EmissionPoint   string    `gorm:"type:char(3);primaryKey"`
	CurrentSequence int64     `gorm:"not null;default:0;check:voucher_sequences_non_negative,current_sequence >= 0"`
	UpdatedAt       time.Time `gorm:"not null"`
}

func (VoucherSequenceDTO) TableName() string {
	return "voucher_sequences"
}

// VoucherDTO is an issued voucher. The unique index guarantees a number is never issued twice.
type VoucherDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DocumentType  string          `gorm:"type:char(2);not null;uniqueIndex:idx_vouchers_number,priority:1"`
	Establishment string          `gorm:"type:char(3);not null;uniqueIndex:idx_vouchers_number,priority:2"`
	EmissionPoint string          `gorm:"type:char(3);not null;uniqueIndex:idx_vouchers_number,priority:3"`
	Sequence      int64           `gorm:"not null;uniqueIndex:idx_vouchers_number,priority:4"`
	Number        string          `gorm:"type:varchar(21);not null"`
	OrderID       *uuid.UUID      `gorm:"type:uuid;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	IssuedAt      time.Time       `gorm:"not null"`
	IssuedBy      string          `gorm:"type:varchar(100);not null"`
}

func (VoucherDTO) TableName() string {
	return "vouchers"
}

func voucherFromDomain(v *voucher.Voucher) VoucherDTO {
	var orderID *uuid.UUID
	if id := v.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	key := v.Key()
	return VoucherDTO{
		ID:            v.ID().Bytes(),
		DocumentType:  key.DocumentType(),
		Establishment: key.Establishment(),
		EmissionPoint: key.EmissionPoint(),
		Sequence:      v.Sequence(),
		Number:        v.Number(),
		OrderID:       orderID,
		Amount:        v.Amount(),
		IssuedAt:      v.IssuedAt(),
		IssuedBy:      v.IssuedBy(),
	}
}
