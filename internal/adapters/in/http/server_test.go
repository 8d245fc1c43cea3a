package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	httpadapter "courierdesk/internal/adapters/in/http"
	"courierdesk/internal/core/application/usecases/commands"
	"courierdesk/internal/core/application/usecases/queries"
	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/core/domain/model/order"
	"courierdesk/internal/core/domain/model/voucher"
	"courierdesk/internal/core/domain/services"
	"courierdesk/internal/pkg/errs"
)

type mockOrderCreator struct{ mock.Mock }

func (m *mockOrderCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type mockOrderTransitioner struct{ mock.Mock }

func (m *mockOrderTransitioner) Handle(
	ctx context.Context,
	cmd commands.TransitionOrderStatusCommand,
) (order.HistoryEntry, error) {
	args := m.Called(ctx, cmd)
	entry, _ := args.Get(0).(order.HistoryEntry)
	return entry, args.Error(1)
}

type mockOrderAdvancer struct{ mock.Mock }

func (m *mockOrderAdvancer) Handle(
	ctx context.Context,
	cmd commands.AdvanceOrderStatusCommand,
) (order.HistoryEntry, error) {
	args := m.Called(ctx, cmd)
	entry, _ := args.Get(0).(order.HistoryEntry)
	return entry, args.Error(1)
}

type mockBulkStatusApplier struct{ mock.Mock }

func (m *mockBulkStatusApplier) Handle(
	ctx context.Context,
	cmd commands.ApplyBulkStatusCommand,
) (commands.ApplyBulkStatusResult, error) {
	args := m.Called(ctx, cmd)
	result, _ := args.Get(0).(commands.ApplyBulkStatusResult)
	return result, args.Error(1)
}

type mockVoucherNumberAllocator struct{ mock.Mock }

func (m *mockVoucherNumberAllocator) Handle(
	ctx context.Context,
	cmd commands.AllocateVoucherNumberCommand,
) (voucher.Allocation, error) {
	args := m.Called(ctx, cmd)
	allocation, _ := args.Get(0).(voucher.Allocation)
	return allocation, args.Error(1)
}

type mockOrderHistoryReader struct{ mock.Mock }

func (m *mockOrderHistoryReader) Handle(
	ctx context.Context,
	q queries.GetOrderHistoryQuery,
) ([]queries.HistoryItem, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]queries.HistoryItem)
	return items, args.Error(1)
}

type mockOrderTotalQuoter struct{ mock.Mock }

func (m *mockOrderTotalQuoter) Handle(
	ctx context.Context,
	q queries.ComputeOrderTotalQuery,
) (queries.ComputeOrderTotalQueryResponse, error) {
	args := m.Called(ctx, q)
	resp, _ := args.Get(0).(queries.ComputeOrderTotalQueryResponse)
	return resp, args.Error(1)
}

// blockingAdvancer waits for the request deadline.
type blockingAdvancer struct{}

func (blockingAdvancer) Handle(ctx context.Context, _ commands.AdvanceOrderStatusCommand) (order.HistoryEntry, error) {
	<-ctx.Done()
	return order.HistoryEntry{}, ctx.Err()
}

func newTestRouter(h httpadapter.Handlers, timeout time.Duration) (http.Handler, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)
	return httpadapter.NewRouter(httpadapter.NewServer(h, log), timeout, log), logs
}

func doRequest(t *testing.T, h http.Handler, method, target, body, actor string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor != "" {
		req.Header.Set(httpadapter.ActorHeader, actor)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpadapter.Error {
	t.Helper()
	var body httpadapter.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	weight := decimal.NewFromInt(10)
	o, err := order.NewOrder(kernel.NewUUID(), "EC-1001", nil, kernel.FacilitySiteA, &weight,
		decimal.RequireFromString("35"), time.Now())
	require.NoError(t, err)
	return o
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(httpadapter.Handlers{}, time.Second)

	rec := doRequest(t, router, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestCreateOrder(t *testing.T) {
	t.Run("creates the order for the calling actor", func(t *testing.T) {
		creator := &mockOrderCreator{}
		created := pendingOrder(t)
		creator.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
			return cmd.Guide() == "EC-1001" &&
				cmd.Actor() == "front-desk" &&
				cmd.Facility() == kernel.FacilitySiteA &&
				cmd.WeightLbs().Equal(decimal.NewFromInt(10)) &&
				cmd.ManualTotal() == nil
		})).Return(created, nil).Once()
		router, _ := newTestRouter(httpadapter.Handlers{CreateOrder: creator}, time.Second)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/orders",
			`{"guide":"EC-1001","facility":"siteA","weightLbs":"10"}`, "front-desk")

		require.Equal(t, http.StatusCreated, rec.Code)
		var body httpadapter.OrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, created.ID().String(), body.ID)
		assert.Equal(t, "PRE_ALERT", body.Status)
		assert.Equal(t, "35.00", body.Total)
		assert.Equal(t, "siteA", body.Facility)
		assert.Nil(t, body.CustomerID)
		creator.AssertExpectations(t)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		creator := &mockOrderCreator{}
		router, _ := newTestRouter(httpadapter.Handlers{CreateOrder: creator}, time.Second)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/orders", `{"guide":`, "front-desk")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		creator.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("missing actor is rejected before the use case", func(t *testing.T) {
		creator := &mockOrderCreator{}
		router, _ := newTestRouter(httpadapter.Handlers{CreateOrder: creator}, time.Second)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/orders", `{"guide":"EC-1"}`, "")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "actor")
		creator.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("duplicate guide is a conflict", func(t *testing.T) {
		creator := &mockOrderCreator{}
		creator.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectAlreadyExistsError("order", "EC-1")).Once()
		router, _ := newTestRouter(httpadapter.Handlers{CreateOrder: creator}, time.Second)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/orders", `{"guide":"EC-1"}`, "front-desk")

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestTransitionOrderStatus_ErrorMapping(t *testing.T) {
	orderID := kernel.NewUUID()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errs.NewObjectNotFoundError("order", orderID), http.StatusNotFound},
		{"backward move", &order.InvalidTransitionError{From: order.InCustoms, To: order.Dispatched}, http.StatusUnprocessableEntity},
		{"already terminal", &order.AlreadyTerminalError{Status: order.Delivered, Target: order.Dispatched}, http.StatusConflict},
		{"conflict", errs.NewConcurrencyConflictError("order"), http.StatusServiceUnavailable},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transitioner := &mockOrderTransitioner{}
			transitioner.On("Handle", mock.Anything, mock.Anything).Return(order.HistoryEntry{}, tt.err).Once()
			router, _ := newTestRouter(httpadapter.Handlers{TransitionOrder: transitioner}, time.Second)

			rec := doRequest(t, router, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/status",
				`{"status":"DISPATCHED"}`, "operator")

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.want, decodeError(t, rec).Code)
		})
	}
}

func TestTransitionOrderStatus(t *testing.T) {
	t.Run("correction carries the reason", func(t *testing.T) {
		o := pendingOrder(t)
		req, err := order.AdministrativeCorrection(order.PreAlert, "scanned wrong package")
		require.NoError(t, err)
		_, err = o.Advance("", "operator", time.Now())
		require.NoError(t, err)
		entry, err := o.Transition(req, "supervisor", time.Now())
		require.NoError(t, err)

		transitioner := &mockOrderTransitioner{}
		transitioner.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.TransitionOrderStatusCommand) bool {
			return cmd.Request().IsCorrection() && cmd.Request().Target() == order.PreAlert
		})).Return(entry, nil).Once()
		router, _ := newTestRouter(httpadapter.Handlers{TransitionOrder: transitioner}, time.Second)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/status",
			`{"status":"pre_alert","description":"scanned wrong package","correction":true}`, "supervisor")

		require.Equal(t, http.StatusOK, rec.Code)
		var body httpadapter.HistoryEntryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "PRE_ALERT", body.Status)
		assert.Equal(t, "CAPTURED_AT_AGENCY", body.PreviousStatus)
		assert.Equal(t, "ADMINISTRATIVE_CORRECTION", body.Kind)
		assert.Equal(t, "supervisor", body.CreatedBy)
		transitioner.AssertExpectations(t)
	})

	t.Run("unknown status name is a bad request", func(t *testing.T) {
		transitioner := &mockOrderTransitioner{}
		router, _ := newTestRouter(httpadapter.Handlers{TransitionOrder: transitioner}, time.Second)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/status",
			`{"status":"LOST"}`, "operator")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		transitioner.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("malformed id is a bad request", func(t *testing.T) {
		router, _ := newTestRouter(httpadapter.Handlers{TransitionOrder: &mockOrderTransitioner{}}, time.Second)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/orders/not-a-uuid/status",
			`{"status":"DISPATCHED"}`, "operator")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAdvanceOrderStatus(t *testing.T) {
	t.Run("works without a body", func(t *testing.T) {
		o := pendingOrder(t)
		entry, err := o.Advance("", "operator", time.Now())
		require.NoError(t, err)

		advancer := &mockOrderAdvancer{}
		advancer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AdvanceOrderStatusCommand) bool {
			return cmd.OrderID() == o.ID() && cmd.Description() == ""
		})).Return(entry, nil).Once()
		router, _ := newTestRouter(httpadapter.Handlers{AdvanceOrder: advancer}, time.Second)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/status/next", "", "operator")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"CAPTURED_AT_AGENCY"`)
		advancer.AssertExpectations(t)
	})

	t.Run("delivered order is a conflict", func(t *testing.T) {
		advancer := &mockOrderAdvancer{}
		advancer.On("Handle", mock.Anything, mock.Anything).
			Return(order.HistoryEntry{}, &order.AlreadyTerminalError{Status: order.Delivered}).Once()
		router, _ := newTestRouter(httpadapter.Handlers{AdvanceOrder: advancer}, time.Second)

		rec := doRequest(t, router, http.MethodPost,
			"/api/v1/orders/"+kernel.NewUUID().String()+"/status/next", "", "operator")

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("request deadline is enforced", func(t *testing.T) {
		router, _ := newTestRouter(httpadapter.Handlers{AdvanceOrder: blockingAdvancer{}}, 20*time.Millisecond)

		rec := doRequest(t, router, http.MethodPost,
			"/api/v1/orders/"+kernel.NewUUID().String()+"/status/next", "", "operator")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestApplyBulkStatus(t *testing.T) {
	o := pendingOrder(t)
	entry, err := o.Advance("", "operator", time.Now())
	require.NoError(t, err)
	partial := commands.ApplyBulkStatusResult{
		Succeeded: []commands.BulkItemSuccess{{OrderID: o.ID(), Entry: entry}},
		Failed:    map[kernel.UUID]error{},
	}
	body := `{"orderIds":["` + o.ID().String() + `","` + kernel.NewUUID().String() + `"],"status":"CAPTURED_AT_AGENCY"}`

	t.Run("returns the per-order outcome", func(t *testing.T) {
		applier := &mockBulkStatusApplier{}
		applier.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ApplyBulkStatusCommand) bool {
			return len(cmd.OrderIDs()) == 2 && cmd.Request().Target() == order.CapturedAtAgency
		})).Return(partial, nil).Once()
		router, _ := newTestRouter(httpadapter.Handlers{ApplyBulkStatus: applier}, time.Second)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/orders/status/batch", body, "operator")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp httpadapter.BulkStatusResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Succeeded, 1)
		assert.Equal(t, o.ID().String(), resp.Succeeded[0].OrderID)
		assert.Empty(t, resp.Error)
		applier.AssertExpectations(t)
	})

	t.Run("systemic failure keeps the partial result", func(t *testing.T) {
		applier := &mockBulkStatusApplier{}
		applier.On("Handle", mock.Anything, mock.Anything).Return(partial, context.Canceled).Once()
		router, logs := newTestRouter(httpadapter.Handlers{ApplyBulkStatus: applier}, time.Second)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/orders/status/batch", body, "operator")

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var resp httpadapter.BulkStatusResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Succeeded, 1)
		assert.NotEmpty(t, resp.Error)
		assert.Equal(t, 1, logs.FilterMessage("bulk status change aborted").Len())
	})

	t.Run("oversized batch is unprocessable", func(t *testing.T) {
		applier := &mockBulkStatusApplier{}
		applier.On("Handle", mock.Anything, mock.Anything).
			Return(commands.ApplyBulkStatusResult{}, errs.NewValueIsOutOfRangeError("batch size", 2, 1, 1)).Once()
		router, _ := newTestRouter(httpadapter.Handlers{ApplyBulkStatus: applier}, time.Second)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/orders/status/batch", body, "operator")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("invalid id in the list is a bad request", func(t *testing.T) {
		applier := &mockBulkStatusApplier{}
		router, _ := newTestRouter(httpadapter.Handlers{ApplyBulkStatus: applier}, time.Second)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/orders/status/batch",
			`{"orderIds":["nope"],"status":"DISPATCHED"}`, "operator")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		applier.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestAllocateVoucherNumber(t *testing.T) {
	key, err := voucher.NewKey("01", "001", "002")
	require.NoError(t, err)

	t.Run("returns the formatted number", func(t *testing.T) {
		allocation, allocErr := voucher.NewAllocation(key, 42)
		require.NoError(t, allocErr)
		allocator := &mockVoucherNumberAllocator{}
		allocator.On("Handle", mock.Anything, mock.Anything).Return(allocation, nil).Once()
		router, _ := newTestRouter(httpadapter.Handlers{AllocateVoucher: allocator}, time.Second)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/vouchers/allocate",
			`{"documentType":"01","establishment":"001","emissionPoint":"002"}`, "")

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp httpadapter.AllocationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "01-001-002-000000042", resp.Number)
		assert.Equal(t, int64(42), resp.Sequence)
	})

	t.Run("exhausted retries are reported as unavailable", func(t *testing.T) {
		allocator := &mockVoucherNumberAllocator{}
		cause := errs.NewConcurrencyConflictError("voucher sequence")
		allocator.On("Handle", mock.Anything, mock.Anything).
			Return(voucher.Allocation{}, voucher.NewSequenceAllocationFailedError(key, 5, cause)).Once()
		router, logs := newTestRouter(httpadapter.Handlers{AllocateVoucher: allocator}, time.Second)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/vouchers/allocate",
			`{"documentType":"01","establishment":"001","emissionPoint":"002"}`, "")

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, http.StatusText(http.StatusServiceUnavailable), decodeError(t, rec).Message)
		assert.Equal(t, 1, logs.FilterMessage("request failed").Len())
	})

	t.Run("malformed codes are unprocessable", func(t *testing.T) {
		allocator := &mockVoucherNumberAllocator{}
		router, _ := newTestRouter(httpadapter.Handlers{AllocateVoucher: allocator}, time.Second)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/vouchers/allocate",
			`{"documentType":"01","establishment":"1","emissionPoint":"002"}`, "")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		allocator.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestGetOrderHistory(t *testing.T) {
	orderID := kernel.NewUUID()
	now := time.Now().UTC()
	reader := &mockOrderHistoryReader{}
	reader.On("Handle", mock.Anything, mock.Anything).Return([]queries.HistoryItem{
		{Status: order.PreAlert, PreviousStatus: order.Unknown, Kind: order.KindIntake, CreatedAt: now, CreatedBy: "desk"},
		{
			Status: order.Dispatched, PreviousStatus: order.PreAlert, Kind: order.KindForward,
			CreatedAt: now.Add(time.Minute), CreatedBy: "desk",
		},
	}, nil).Once()
	router, _ := newTestRouter(httpadapter.Handlers{GetOrderHistory: reader}, time.Second)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/orders/"+orderID.String()+"/history", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []httpadapter.HistoryEntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Empty(t, resp[0].PreviousStatus)
	assert.Equal(t, "INTAKE", resp[0].Kind)
	assert.Equal(t, "PRE_ALERT", resp[1].PreviousStatus)
	assert.Equal(t, orderID.String(), resp[1].OrderID)
}

func TestQuoteOrderTotal(t *testing.T) {
	t.Run("degraded quote is still a quote", func(t *testing.T) {
		quoter := &mockOrderTotalQuoter{}
		quoter.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ComputeOrderTotalQuery) bool {
			return q.WeightLbs() != nil && q.WeightLbs().Equal(decimal.RequireFromString("2.5"))
		})).Return(queries.ComputeOrderTotalQueryResponse{
			Total:      decimal.Zero,
			Rate:       decimal.Zero,
			RateSource: services.RateSourceNone,
			Degraded:   true,
		}, nil).Once()
		router, _ := newTestRouter(httpadapter.Handlers{ComputeOrderTotal: quoter}, time.Second)

		rec := doRequest(t, router, http.MethodGet, "/api/v1/pricing/quote?weightLbs=2.5", "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp httpadapter.QuoteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Degraded)
		assert.Equal(t, "0.00", resp.Total)
		assert.Equal(t, "NONE", resp.RateSource)
	})

	t.Run("non numeric weight is a bad request", func(t *testing.T) {
		router, _ := newTestRouter(httpadapter.Handlers{ComputeOrderTotal: &mockOrderTotalQuoter{}}, time.Second)

		rec := doRequest(t, router, http.MethodGet, "/api/v1/pricing/quote?weightLbs=heavy", "", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

type mockUndeliveredOrdersLister struct{ mock.Mock }

func (m *mockUndeliveredOrdersLister) Handle(
	ctx context.Context,
	q queries.GetUndeliveredOrdersQuery,
) ([]queries.GetUndeliveredOrdersQueryResponse, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]queries.GetUndeliveredOrdersQueryResponse)
	return items, args.Error(1)
}

func TestGetOrders(t *testing.T) {
	t.Run("passes the filters", func(t *testing.T) {
		lister := &mockUndeliveredOrdersLister{}
		id := kernel.NewUUID()
		lister.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetUndeliveredOrdersQuery) bool {
			return q.Facility() != nil && *q.Facility() == kernel.FacilitySiteB &&
				q.Status() != nil && *q.Status() == order.InCustoms &&
				q.Limit() == 20
		})).Return([]queries.GetUndeliveredOrdersQueryResponse{{
			ID: id, Guide: "EC-7", Status: order.InCustoms, Facility: kernel.FacilitySiteB,
			Total: decimal.RequireFromString("12.5"), CreatedAt: time.Now(),
		}}, nil).Once()
		router, _ := newTestRouter(httpadapter.Handlers{GetUndeliveredOrders: lister}, time.Second)

		rec := doRequest(t, router, http.MethodGet, "/api/v1/orders?facility=siteB&status=in_customs&limit=20", "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp []httpadapter.OrderSummaryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, id.String(), resp[0].ID)
		assert.Equal(t, "12.50", resp[0].Total)
		assert.Equal(t, "IN_CUSTOMS", resp[0].Status)
		lister.AssertExpectations(t)
	})

	t.Run("non numeric limit is a bad request", func(t *testing.T) {
		router, _ := newTestRouter(httpadapter.Handlers{GetUndeliveredOrders: &mockUndeliveredOrdersLister{}}, time.Second)

		rec := doRequest(t, router, http.MethodGet, "/api/v1/orders?limit=many", "", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delivered filter is unprocessable", func(t *testing.T) {
		router, _ := newTestRouter(httpadapter.Handlers{GetUndeliveredOrders: &mockUndeliveredOrdersLister{}}, time.Second)

		rec := doRequest(t, router, http.MethodGet, "/api/v1/orders?status=DELIVERED", "", "")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
