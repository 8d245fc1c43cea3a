package queries

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/core/domain/services"
	"courierdesk/internal/pkg/guard"
)

var ErrComputeOrderTotalQueryIsNotConstructed = errors.New(
	"ComputeOrderTotalQuery must be created via NewComputeOrderTotalQuery constructor",
)

// ErrPricingLookupDegraded marks a quote whose total fell back to zero because
// the settings or the customer could not be read.
var ErrPricingLookupDegraded = errors.New("pricing lookup degraded")

// ComputeOrderTotalQuery prices a weight for an optional customer.
type ComputeOrderTotalQuery struct {
	customerID *kernel.UUID
	weightLbs  *decimal.Decimal
	guard      guard.ConstructorGuard
}

func NewComputeOrderTotalQuery(customerID *kernel.UUID, weightLbs *decimal.Decimal) (ComputeOrderTotalQuery, error) {
	q := ComputeOrderTotalQuery{
		weightLbs: kernel.OptionalDecimal(weightLbs),
		guard:     guard.NewConstructorGuard(),
	}
	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return ComputeOrderTotalQuery{}, err
		}
		id := *customerID
		q.customerID = &id
	}
	return q, nil
}

func (q ComputeOrderTotalQuery) Validate() error {
	return q.guard.Validate(ErrComputeOrderTotalQueryIsNotConstructed)
}

func (q ComputeOrderTotalQuery) CustomerID() *kernel.UUID {
	return q.customerID
}

func (q ComputeOrderTotalQuery) WeightLbs() *decimal.Decimal {
	return kernel.OptionalDecimal(q.weightLbs)
}

// ComputeOrderTotalQueryResponse is a quote. When Degraded is set Total is zero and
// Cause wraps ErrPricingLookupDegraded together with the lookup error.
type ComputeOrderTotalQueryResponse struct {
	Total      decimal.Decimal
	Rate       decimal.Decimal
	RateSource services.RateSource
	Degraded   bool
	Cause      error
}

func degradedResponse(lookup string, err error) ComputeOrderTotalQueryResponse {
	return ComputeOrderTotalQueryResponse{
		Total:      kernel.RoundMoney(decimal.Zero),
		Rate:       decimal.Zero,
		RateSource: services.RateSourceNone,
		Degraded:   true,
		Cause:      fmt.Errorf("%w: %s: %w", ErrPricingLookupDegraded, lookup, err),
	}
}
