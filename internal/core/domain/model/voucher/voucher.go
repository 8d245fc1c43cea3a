package voucher

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/pkg/errs"
	"courierdesk/internal/pkg/guard"
)

var ErrVoucherIsNotConstructed = errors.New("Voucher must be created via NewVoucher or RestoreVoucher")

// Voucher is an issued fiscal document. It is written in the same transaction that
// reserved its sequence and never changes afterwards.
type Voucher struct {
	id         kernel.UUID
	allocation Allocation
	orderID    *kernel.UUID
	amount     decimal.Decimal
	issuedAt   time.Time
	issuedBy   string
	guard      guard.ConstructorGuard
}

// NewVoucher builds a voucher for an allocation. orderID is optional.
func NewVoucher(
	id kernel.UUID,
	allocation Allocation,
	orderID *kernel.UUID,
	amount decimal.Decimal,
	issuedAt time.Time,
	issuedBy string,
) (*Voucher, error) {
	issuedBy = strings.TrimSpace(issuedBy)
	errList := []error{id.Validate(), allocation.Key.Validate()}
	if orderID != nil {
		errList = append(errList, orderID.Validate())
	}
	if amount.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount.String())))
	}
	if issuedAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("issued at"))
	}
	if issuedBy == "" {
		errList = append(errList, errs.NewValueIsRequiredError("issued by"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	v := &Voucher{
		id:         id,
		allocation: allocation,
		amount:     kernel.RoundMoney(amount),
		issuedAt:   issuedAt.UTC(),
		issuedBy:   issuedBy,
		guard:      guard.NewConstructorGuard(),
	}
	if orderID != nil {
		oid := *orderID
		v.orderID = &oid
	}
	return v, nil
}

// RestoreVoucher rebuilds a voucher read from storage.
func RestoreVoucher(
	id kernel.UUID,
	key Key,
	sequence int64,
	orderID *kernel.UUID,
	amount decimal.Decimal,
	issuedAt time.Time,
	issuedBy string,
) (*Voucher, error) {
	allocation, err := NewAllocation(key, sequence)
	if err != nil {
		return nil, err
	}
	return NewVoucher(id, allocation, orderID, amount, issuedAt, issuedBy)
}

func (v *Voucher) Validate() error {
	if v == nil {
		return ErrVoucherIsNotConstructed
	}
	return v.guard.Validate(ErrVoucherIsNotConstructed)
}

func (v *Voucher) ID() kernel.UUID {
	return v.id
}

func (v *Voucher) Key() Key {
	return v.allocation.Key
}

func (v *Voucher) Sequence() int64 {
	return v.allocation.Sequence
}

func (v *Voucher) Number() string {
	return v.allocation.Number
}

func (v *Voucher) Allocation() Allocation {
	return v.allocation
}

func (v *Voucher) OrderID() *kernel.UUID {
	if v.orderID == nil {
		return nil
	}
	id := *v.orderID
	return &id
}

func (v *Voucher) Amount() decimal.Decimal {
	return v.amount
}

func (v *Voucher) IssuedAt() time.Time {
	return v.issuedAt
}

func (v *Voucher) IssuedBy() string {
	return v.issuedBy
}
