package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"courierdesk/internal/core/application/usecases/commands"
	"courierdesk/internal/core/application/usecases/queries"
	"courierdesk/internal/core/domain/model/customer"
	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/core/domain/model/order"
	"courierdesk/internal/core/domain/model/settings"
	"courierdesk/internal/core/domain/model/voucher"
	"courierdesk/internal/pkg/logger"
)

// ActorHeader names the operator on whose behalf a request runs.
const ActorHeader = "X-Actor"

type (
	CustomerCreator interface {
		Handle(ctx context.Context, cmd commands.CreateCustomerCommand) (*customer.Customer, error)
	}
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	OrderWeightUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderWeightCommand) (*order.Order, error)
	}
	OrderTransitioner interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderStatusCommand) (order.HistoryEntry, error)
	}
	OrderAdvancer interface {
		Handle(ctx context.Context, cmd commands.AdvanceOrderStatusCommand) (order.HistoryEntry, error)
	}
	BulkStatusApplier interface {
		Handle(ctx context.Context, cmd commands.ApplyBulkStatusCommand) (commands.ApplyBulkStatusResult, error)
	}
	VoucherNumberAllocator interface {
		Handle(ctx context.Context, cmd commands.AllocateVoucherNumberCommand) (voucher.Allocation, error)
	}
	VoucherIssuer interface {
		Handle(ctx context.Context, cmd commands.IssueVoucherCommand) (*voucher.Voucher, error)
	}
	SettingsUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateCompanySettingsCommand) (settings.CompanySettings, error)
	}
	CustomersLister interface {
		Handle(ctx context.Context, q queries.GetAllCustomersQuery) ([]queries.GetAllCustomersQueryResponse, error)
	}
	UndeliveredOrdersLister interface {
		Handle(
			ctx context.Context,
			q queries.GetUndeliveredOrdersQuery,
		) ([]queries.GetUndeliveredOrdersQueryResponse, error)
	}
	OrderHistoryReader interface {
		Handle(ctx context.Context, q queries.GetOrderHistoryQuery) ([]queries.HistoryItem, error)
	}
	OrderTotalQuoter interface {
		Handle(
			ctx context.Context,
			q queries.ComputeOrderTotalQuery,
		) (queries.ComputeOrderTotalQueryResponse, error)
	}
	VoucherSequenceAuditor interface {
		Handle(
			ctx context.Context,
			q queries.AuditVoucherSequencesQuery,
		) ([]queries.AuditVoucherSequencesQueryResponse, error)
	}
)

// Handlers groups the use cases the server exposes.
type Handlers struct {
	// Command handlers
	CreateCustomer    CustomerCreator
	CreateOrder       OrderCreator
	UpdateOrderWeight OrderWeightUpdater
	TransitionOrder   OrderTransitioner
	AdvanceOrder      OrderAdvancer
	ApplyBulkStatus   BulkStatusApplier
	AllocateVoucher   VoucherNumberAllocator
	IssueVoucher      VoucherIssuer
	UpdateSettings    SettingsUpdater

	// Query handlers
	GetAllCustomers       CustomersLister
	GetUndeliveredOrders  UndeliveredOrdersLister
	GetOrderHistory       OrderHistoryReader
	ComputeOrderTotal     OrderTotalQuoter
	AuditVoucherSequences VoucherSequenceAuditor
}

// Server translates HTTP requests into commands and queries.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h      Handlers
	logger *zap.Logger
}

func NewServer(h Handlers, log *zap.Logger) *Server {
	return &Server{h: h, logger: logger.Component(log, "http")}
}

// RegisterRoutes mounts every endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/customers", s.GetCustomers)
	api.POST("/customers", s.CreateCustomer)

	api.GET("/orders", s.GetOrders)
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/status/batch", s.ApplyBulkStatus)
	api.PUT("/orders/:id/weight", s.UpdateOrderWeight)
	api.POST("/orders/:id/status", s.TransitionOrderStatus)
	api.POST("/orders/:id/status/next", s.AdvanceOrderStatus)
	api.GET("/orders/:id/history", s.GetOrderHistory)

	api.GET("/pricing/quote", s.QuoteOrderTotal)

	api.POST("/vouchers", s.IssueVoucher)
	api.POST("/vouchers/allocate", s.AllocateVoucherNumber)
	api.GET("/vouchers/audit", s.AuditVoucherSequences)

	api.PUT("/settings", s.UpdateSettings)
}

// GetCustomers handles GET /api/v1/customers.
func (s *Server) GetCustomers(c echo.Context) error {
	result, err := s.h.GetAllCustomers.Handle(c.Request().Context(), queries.NewGetAllCustomersQuery())
	if err != nil {
		return s.respondError(c, err)
	}

	response := make([]CustomerResponse, len(result))
	for i, item := range result {
		response[i] = CustomerResponse{
			ID:         item.ID.String(),
			Name:       item.Name,
			PricePerLb: item.PricePerLb,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// CreateCustomer handles POST /api/v1/customers.
func (s *Server) CreateCustomer(c echo.Context) error {
	var req NewCustomerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewCreateCustomerCommand(kernel.NewUUID(), req.Name, req.PricePerLb)
	if err != nil {
		return s.respondError(c, err)
	}

	created, err := s.h.CreateCustomer.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, CustomerResponse{
		ID:         created.ID().String(),
		Name:       created.Name(),
		PricePerLb: created.PricePerLb(),
	})
}

// GetOrders handles GET /api/v1/orders - lists orders that are not delivered yet.
// Optional filters: facility, status, limit.
func (s *Server) GetOrders(c echo.Context) error {
	var (
		facility *kernel.Facility
		status   *order.Status
		limit    int
	)
	if raw := c.QueryParam("facility"); raw != "" {
		f, err := kernel.ParseFacility(raw)
		if err != nil {
			return badRequest(c, err.Error())
		}
		facility = &f
	}
	if raw := c.QueryParam("status"); raw != "" {
		st, err := order.ParseStatus(raw)
		if err != nil {
			return badRequest(c, err.Error())
		}
		status = &st
	}
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return badRequest(c, "limit must be an integer")
	}

	query, err := queries.NewGetUndeliveredOrdersQuery(facility, status, limit)
	if err != nil {
		return s.respondError(c, err)
	}

	result, err := s.h.GetUndeliveredOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}

	response := make([]OrderSummaryResponse, len(result))
	for i, item := range result {
		response[i] = OrderSummaryResponse{
			ID:         item.ID.String(),
			Guide:      item.Guide,
			CustomerID: optionalID(item.CustomerID),
			Facility:   item.Facility.String(),
			Status:     item.Status.String(),
			Total:      item.Total.StringFixed(2),
			CreatedAt:  item.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders. The order starts in PRE_ALERT.
func (s *Server) CreateOrder(c echo.Context) error {
	var req NewOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	customerID, err := parseOptionalID(req.CustomerID)
	if err != nil {
		return badRequest(c, err.Error())
	}
	facility := kernel.FacilityDefault
	if req.Facility != "" {
		if facility, err = kernel.ParseFacility(req.Facility); err != nil {
			return badRequest(c, err.Error())
		}
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), req.Guide, customerID, facility, req.WeightLbs, req.Total, actor(c),
	)
	if err != nil {
		return s.respondError(c, err)
	}

	created, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, orderResponse(created))
}

// UpdateOrderWeight handles PUT /api/v1/orders/:id/weight.
func (s *Server) UpdateOrderWeight(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	var req UpdateWeightRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewUpdateOrderWeightCommand(orderID, req.WeightLbs, req.Total)
	if err != nil {
		return s.respondError(c, err)
	}

	updated, err := s.h.UpdateOrderWeight.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, orderResponse(updated))
}

// TransitionOrderStatus handles POST /api/v1/orders/:id/status.
func (s *Server) TransitionOrderStatus(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	var req StatusChangeRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(orderID, target, req.Description, actor(c), req.Correction)
	if err != nil {
		return s.respondError(c, err)
	}

	entry, err := s.h.TransitionOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, historyEntryResponse(entry))
}

// AdvanceOrderStatus handles POST /api/v1/orders/:id/status/next.
func (s *Server) AdvanceOrderStatus(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	var req AdvanceStatusRequest
	if c.Request().ContentLength > 0 {
		if err = c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(orderID, req.Description, actor(c))
	if err != nil {
		return s.respondError(c, err)
	}

	entry, err := s.h.AdvanceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, historyEntryResponse(entry))
}

// ApplyBulkStatus handles POST /api/v1/orders/status/batch.
//
// Per-order failures do not fail the request: they are listed in the body with
// status 200. A systemic failure returns the partial result with a 5xx status.
func (s *Server) ApplyBulkStatus(c echo.Context) error {
	var req BulkStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	ids := make([]kernel.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(c, "Invalid order id: "+raw)
		}
		ids = append(ids, id)
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewApplyBulkStatusCommand(ids, target, req.Description, actor(c), req.Correction)
	if err != nil {
		return s.respondError(c, err)
	}

	result, err := s.h.ApplyBulkStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		status := statusFor(err)
		if status < http.StatusInternalServerError {
			return s.respondError(c, err)
		}
		s.logger.Error("bulk status change aborted", zap.Error(err),
			zap.Int("succeeded", len(result.Succeeded)), zap.Int("failed", len(result.Failed)))
		response := bulkStatusResponse(result)
		response.Error = "Bulk status change aborted"
		return c.JSON(status, response)
	}

	return c.JSON(http.StatusOK, bulkStatusResponse(result))
}

// GetOrderHistory handles GET /api/v1/orders/:id/history - oldest entry first.
func (s *Server) GetOrderHistory(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return s.respondError(c, err)
	}

	items, err := s.h.GetOrderHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}

	response := make([]HistoryEntryResponse, len(items))
	for i, item := range items {
		response[i] = HistoryEntryResponse{
			OrderID:        orderID.String(),
			Status:         item.Status.String(),
			PreviousStatus: previousStatus(item.PreviousStatus),
			Kind:           item.Kind.String(),
			Description:    item.Description,
			CreatedAt:      item.CreatedAt,
			CreatedBy:      item.CreatedBy,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// QuoteOrderTotal handles GET /api/v1/pricing/quote?customerId=&weightLbs=.
// A degraded quote is still a 200; the body says so.
func (s *Server) QuoteOrderTotal(c echo.Context) error {
	customerID, err := parseOptionalID(c.QueryParam("customerId"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	var weight *decimal.Decimal
	if raw := c.QueryParam("weightLbs"); raw != "" {
		w, parseErr := decimal.NewFromString(raw)
		if parseErr != nil {
			return badRequest(c, "weightLbs must be a decimal number")
		}
		weight = &w
	}

	query, err := queries.NewComputeOrderTotalQuery(customerID, weight)
	if err != nil {
		return s.respondError(c, err)
	}

	quote, err := s.h.ComputeOrderTotal.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, QuoteResponse{
		Total:      quote.Total.StringFixed(2),
		Rate:       quote.Rate.String(),
		RateSource: string(quote.RateSource),
		Degraded:   quote.Degraded,
	})
}

// IssueVoucher handles POST /api/v1/vouchers.
func (s *Server) IssueVoucher(c echo.Context) error {
	var req IssueVoucherRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	docType, err := voucher.ParseDocumentType(req.DocumentType)
	if err != nil {
		return badRequest(c, err.Error())
	}
	orderID, err := parseOptionalID(req.OrderID)
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewIssueVoucherCommand(kernel.NewUUID(), docType, orderID, req.Amount, actor(c))
	if err != nil {
		return s.respondError(c, err)
	}

	issued, err := s.h.IssueVoucher.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, VoucherResponse{
		ID:       issued.ID().String(),
		Number:   issued.Number(),
		Sequence: issued.Sequence(),
		OrderID:  optionalID(issued.OrderID()),
		Amount:   issued.Amount().StringFixed(2),
		IssuedAt: issued.IssuedAt(),
		IssuedBy: issued.IssuedBy(),
	})
}

// AllocateVoucherNumber handles POST /api/v1/vouchers/allocate.
func (s *Server) AllocateVoucherNumber(c echo.Context) error {
	var req AllocateNumberRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewAllocateVoucherNumberCommand(req.DocumentType, req.Establishment, req.EmissionPoint)
	if err != nil {
		return s.respondError(c, err)
	}

	allocation, err := s.h.AllocateVoucher.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusCreated, AllocationResponse{
		Key:      allocation.Key.String(),
		Sequence: allocation.Sequence,
		Number:   allocation.Number,
	})
}

// AuditVoucherSequences handles GET /api/v1/vouchers/audit.
func (s *Server) AuditVoucherSequences(c echo.Context) error {
	report, err := s.h.AuditVoucherSequences.Handle(c.Request().Context(), queries.NewAuditVoucherSequencesQuery())
	if err != nil {
		return s.respondError(c, err)
	}

	response := make([]SequenceAuditResponse, len(report))
	for i, item := range report {
		response[i] = SequenceAuditResponse{
			Key:             item.Key,
			CurrentSequence: item.CurrentSequence,
			IssuedCount:     item.IssuedCount,
			MaxIssued:       item.MaxIssued,
			Unissued:        item.Unissued,
			Inconsistent:    item.Inconsistent,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateSettings handles PUT /api/v1/settings.
func (s *Server) UpdateSettings(c echo.Context) error {
	var req SettingsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.DefaultPricePerLb == nil {
		return badRequest(c, "defaultPricePerLb is required")
	}

	cmd := commands.NewUpdateCompanySettingsCommand(
		*req.DefaultPricePerLb, req.AutoCalculatePrice, req.EstablishmentCode, req.EmissionPointCode,
	)

	saved, err := s.h.UpdateSettings.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(http.StatusOK, SettingsResponse{
		DefaultPricePerLb:  saved.DefaultPricePerLb().String(),
		AutoCalculatePrice: saved.AutoCalculatePrice(),
		EstablishmentCode:  saved.EstablishmentCode(),
		EmissionPointCode:  saved.EmissionPointCode(),
		UpdatedAt:          saved.UpdatedAt(),
	})
}

func actor(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get(ActorHeader))
}

func parseOptionalID(raw string) (*kernel.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil //nolint:nilnil // absent id
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, errors.New("invalid id: " + raw)
	}
	return &id, nil
}
