package services

import (
	"github.com/shopspring/decimal"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/core/domain/model/settings"
)

// RateSource tells which rate produced a quote.
type RateSource string

const (
	// RateSourceNone means no rate was applied and the total is zero.
	RateSourceNone     RateSource = "NONE"
	RateSourceCustomer RateSource = "CUSTOMER"
	RateSourceDefault  RateSource = "DEFAULT"
)

// Quote is the outcome of a price computation.
type Quote struct {
	Total  decimal.Decimal
	Rate   decimal.Decimal
	Source RateSource
}

// PriceCalculator is the pricing rule for shipments.
//
// Business rules:
//   - Automatic pricing disabled in settings: total is 0.00
//   - No weight, or weight not greater than zero: total is 0.00
//   - Otherwise rate is the customer's negotiated rate when present, else the company default
//   - Total is weight × rate rounded half-up to 2 decimal places
//
// Example usage:
//
//	calc := NewPriceCalculator()
//	weight := decimal.NewFromInt(10)
//	quote := calc.Quote(companySettings, nil, &weight)
//	// quote.Total == 35.00 with a default rate of 3.50
type PriceCalculator struct{}

func NewPriceCalculator() PriceCalculator {
	return PriceCalculator{}
}

// Quote computes the total and reports which rate was used.
//
// Parameters:
//   - s: settings snapshot read for this operation
//   - customerRate: negotiated rate, nil when the customer has none or there is no customer
//   - weightLbs: package weight, nil when not weighed yet
func (PriceCalculator) Quote(s settings.CompanySettings, customerRate, weightLbs *decimal.Decimal) Quote {
	zero := Quote{Total: kernel.RoundMoney(decimal.Zero), Rate: decimal.Zero, Source: RateSourceNone}

	if !s.AutoCalculatePrice() {
		return zero
	}
	if weightLbs == nil || !weightLbs.IsPositive() {
		return zero
	}

	rate, source := s.DefaultPricePerLb(), RateSourceDefault
	if customerRate != nil {
		rate, source = *customerRate, RateSourceCustomer
	}

	return Quote{
		Total:  kernel.RoundMoney(weightLbs.Mul(rate)),
		Rate:   rate,
		Source: source,
	}
}

// Total is Quote without the rate details.
func (c PriceCalculator) Total(s settings.CompanySettings, customerRate, weightLbs *decimal.Decimal) decimal.Decimal {
	return c.Quote(s, customerRate, weightLbs).Total
}
