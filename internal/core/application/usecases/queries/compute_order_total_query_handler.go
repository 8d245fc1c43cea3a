package queries

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/core/domain/services"
	"courierdesk/internal/core/ports"
	"courierdesk/internal/pkg/errs"
	"courierdesk/internal/pkg/logger"
)

type (
	// PricingSources are the reads pricing needs. They do not have to share a transaction:
	// each quote takes one settings snapshot and one customer read.
	PricingSources interface {
		SettingsRepository() ports.SettingsRepository
		CustomerRepository() ports.CustomerRepository
	}

	PricingSourcesFactory interface {
		Create() PricingSources
	}
)

// ComputeOrderTotalQueryHandler is the pricing engine. It never fails because of a
// lookup: settings or customer read errors degrade the total to 0.00, are logged,
// and are reported on the response.
//
// A customer that does not exist is not a degradation; the default rate applies.
//
// Example:
//
//	q, _ := queries.NewComputeOrderTotalQuery(&customerID, &weight)
//	quote, err := handler.Handle(ctx, q)
//	// quote.Total, quote.RateSource
type ComputeOrderTotalQueryHandler struct {
	sources    PricingSourcesFactory
	calculator services.PriceCalculator
	logger     *zap.Logger
}

func NewComputeOrderTotalQueryHandler(sources PricingSourcesFactory, log *zap.Logger) ComputeOrderTotalQueryHandler {
	return ComputeOrderTotalQueryHandler{
		sources:    sources,
		calculator: services.NewPriceCalculator(),
		logger:     logger.Component(log, "pricing"),
	}
}

// Handle returns an error only for a query that was not built by its constructor.
func (h ComputeOrderTotalQueryHandler) Handle(
	ctx context.Context,
	query ComputeOrderTotalQuery,
) (ComputeOrderTotalQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ComputeOrderTotalQueryResponse{}, err
	}
	return h.quote(ctx, query.CustomerID(), query.WeightLbs()), nil
}

// ComputeTotal lets the write side price orders through the same rules.
func (h ComputeOrderTotalQueryHandler) ComputeTotal(
	ctx context.Context,
	customerID *kernel.UUID,
	weightLbs *decimal.Decimal,
) decimal.Decimal {
	return h.quote(ctx, customerID, weightLbs).Total
}

func (h ComputeOrderTotalQueryHandler) quote(
	ctx context.Context,
	customerID *kernel.UUID,
	weightLbs *decimal.Decimal,
) ComputeOrderTotalQueryResponse {
	sources := h.sources.Create()

	snapshot, err := sources.SettingsRepository().Get(ctx)
	if err != nil {
		return h.degrade("company settings", customerID, err)
	}

	var customerRate *decimal.Decimal
	if customerID != nil && snapshot.AutoCalculatePrice() && weightLbs != nil && weightLbs.IsPositive() {
		c, lookupErr := sources.CustomerRepository().Get(ctx, *customerID)
		switch {
		case lookupErr == nil:
			customerRate = c.PricePerLb()
		case errors.Is(lookupErr, errs.ErrObjectNotFound):
			h.logger.Debug("customer not found, using default rate", zap.String("customerId", customerID.String()))
		default:
			return h.degrade("customer", customerID, lookupErr)
		}
	}

	q := h.calculator.Quote(snapshot, customerRate, weightLbs)
	return ComputeOrderTotalQueryResponse{
		Total:      q.Total,
		Rate:       q.Rate,
		RateSource: q.Source,
	}
}

func (h ComputeOrderTotalQueryHandler) degrade(
	lookup string,
	customerID *kernel.UUID,
	err error,
) ComputeOrderTotalQueryResponse {
	resp := degradedResponse(lookup, err)

	fields := []zap.Field{zap.String("lookup", lookup), zap.Error(err)}
	if customerID != nil {
		fields = append(fields, zap.String("customerId", customerID.String()))
	}
	h.logger.Warn("pricing lookup failed, total set to zero", fields...)

	return resp
}
