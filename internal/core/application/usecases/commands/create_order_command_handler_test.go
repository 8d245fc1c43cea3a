package commands_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"courierdesk/internal/core/application/usecases/commands"
	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/core/domain/model/order"
	"courierdesk/internal/pkg/errs"
)

func newCreateOrderCommand(t *testing.T, manualTotal *decimal.Decimal) commands.CreateOrderCommand {
	t.Helper()
	weight := decimal.NewFromInt(10)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "EC-1001", nil, kernel.FacilityDefault,
		&weight, manualTotal, "operator")
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, nil)

	pricing := new(MockOrderTotalCalculator)
	pricing.On("ComputeTotal", ctx, (*kernel.UUID)(nil), mock.Anything).
		Return(decimal.RequireFromString("35.00")).Once()

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		repo.On("AppendHistory", ctx, mock.MatchedBy(func(e order.HistoryEntry) bool {
			return e.Kind() == order.KindIntake && e.Status() == order.PreAlert && e.CreatedBy() == "operator"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, pricing)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.PreAlert, created.Status())
	assert.Equal(t, "35.00", created.Total().StringFixed(2))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	pricing.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ManualTotalSkipsPricing(t *testing.T) {
	ctx := t.Context()
	manual := decimal.RequireFromString("12.345")
	cmd := newCreateOrderCommand(t, &manual)

	pricing := new(MockOrderTotalCalculator)
	repo := new(MockOrderRepository)
	repo.On("Add", ctx, mock.Anything).Return(nil).Once()
	repo.On("AppendHistory", ctx, mock.Anything).Return(nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewCreateOrderCommandHandler(factory, pricing)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "12.35", created.Total().StringFixed(2))
	pricing.AssertNotCalled(t, "ComputeTotal", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, new(MockOrderTotalCalculator))

	_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, nil)

	pricing := new(MockOrderTotalCalculator)
	pricing.On("ComputeTotal", ctx, mock.Anything, mock.Anything).Return(decimal.Zero)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, pricing)
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_DuplicateGuide(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, nil)

	pricing := new(MockOrderTotalCalculator)
	pricing.On("ComputeTotal", ctx, mock.Anything, mock.Anything).Return(decimal.Zero)
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.Anything).Return(errs.NewObjectAlreadyExistsError("guide", "EC-1001")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, pricing)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
	repo.AssertNotCalled(t, "AppendHistory", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t, nil)

	pricing := new(MockOrderTotalCalculator)
	pricing.On("ComputeTotal", ctx, mock.Anything, mock.Anything).Return(decimal.Zero)
	repo := new(MockOrderRepository)
	repo.On("Add", ctx, mock.Anything).Return(nil).Once()
	repo.On("AppendHistory", ctx, mock.Anything).Return(nil).Once()
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, pricing)
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
	uow.AssertExpectations(t)
}
