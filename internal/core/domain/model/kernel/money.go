package kernel

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places kept for every monetary amount.
const MoneyPlaces int32 = 2

// RoundMoney rounds half-up to MoneyPlaces. Amounts in this domain are never
// negative, so decimal's round-half-away-from-zero is exactly half-up here.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// OptionalDecimal copies a decimal into a fresh pointer so aggregates never share
// storage with their callers. A nil input yields nil.
func OptionalDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
