package commands

import (
	"context"

	"github.com/shopspring/decimal"

	"courierdesk/internal/core/domain/model/kernel"
)

// OrderTotalCalculator prices an order. Implementations never fail: a lookup
// problem degrades the total to zero and is reported by the implementation itself.
type OrderTotalCalculator interface {
	ComputeTotal(ctx context.Context, customerID *kernel.UUID, weightLbs *decimal.Decimal) decimal.Decimal
}

func resolveTotal(
	ctx context.Context,
	calc OrderTotalCalculator,
	manualTotal *decimal.Decimal,
	customerID *kernel.UUID,
	weightLbs *decimal.Decimal,
) decimal.Decimal {
	if manualTotal != nil {
		return kernel.RoundMoney(*manualTotal)
	}
	return calc.ComputeTotal(ctx, customerID, weightLbs)
}
