package commands

import (
	"errors"

	"courierdesk/internal/core/domain/model/voucher"
	"courierdesk/internal/pkg/guard"
)

var ErrAllocateVoucherNumberCommandIsNotConstructed = errors.New(
	"AllocateVoucherNumberCommand must be created via NewAllocateVoucherNumberCommand constructor",
)

// AllocateVoucherNumberCommand reserves the next number of one voucher key.
type AllocateVoucherNumberCommand struct { //nolint:recvcheck //using for validation
	key voucher.Key

	guard guard.ConstructorGuard
}

// NewAllocateVoucherNumberCommand takes the raw codes, e.g. ("01", "001", "001").
func NewAllocateVoucherNumberCommand(
	documentType, establishment, emissionPoint string,
) (AllocateVoucherNumberCommand, error) {
	key, err := voucher.NewKey(documentType, establishment, emissionPoint)
	if err != nil {
		return AllocateVoucherNumberCommand{}, err
	}
	return AllocateVoucherNumberCommand{key: key, guard: guard.NewConstructorGuard()}, nil
}

func (c AllocateVoucherNumberCommand) Validate() error {
	return c.guard.Validate(ErrAllocateVoucherNumberCommandIsNotConstructed)
}

func (c AllocateVoucherNumberCommand) Key() voucher.Key {
	return c.key
}
