// Package customer holds the Customer aggregate: the pricing-relevant view of an account.
package customer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/pkg/errs"
	"courierdesk/internal/pkg/guard"
)

const MaxNameLength = 200

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer or RestoreCustomer")

// Customer owns orders and may carry a negotiated price per pound that overrides
// the company default.
type Customer struct {
	id         kernel.UUID
	name       string
	pricePerLb *decimal.Decimal
	guard      guard.ConstructorGuard
}

// NewCustomer validates and creates a customer. pricePerLb is optional; when set it must be positive.
func NewCustomer(id kernel.UUID, name string, pricePerLb *decimal.Decimal) (*Customer, error) {
	c := &Customer{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		id.Validate(),
		c.setName(name),
		c.setPricePerLb(pricePerLb),
	); err != nil {
		return nil, err
	}
	c.id = id

	return c, nil
}

// RestoreCustomer rebuilds a customer read from storage.
func RestoreCustomer(id kernel.UUID, name string, pricePerLb *decimal.Decimal) (*Customer, error) {
	return NewCustomer(id, name, pricePerLb)
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.UUID {
	return c.id
}

func (c *Customer) Name() string {
	return c.name
}

// PricePerLb is the negotiated rate, or nil when the company default applies.
func (c *Customer) PricePerLb() *decimal.Decimal {
	return kernel.OptionalDecimal(c.pricePerLb)
}

// ChangePricePerLb sets or clears (nil) the negotiated rate.
func (c *Customer) ChangePricePerLb(pricePerLb *decimal.Decimal) error {
	return c.setPricePerLb(pricePerLb)
}

func (c *Customer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return errs.NewValueIsOutOfRangeError("customer name length", n, 1, MaxNameLength)
	}
	c.name = name
	return nil
}

func (c *Customer) setPricePerLb(pricePerLb *decimal.Decimal) error {
	if pricePerLb != nil && !pricePerLb.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("price per lb",
			fmt.Errorf("%s is not greater than 0", pricePerLb.String()))
	}
	c.pricePerLb = kernel.OptionalDecimal(pricePerLb)
	return nil
}
