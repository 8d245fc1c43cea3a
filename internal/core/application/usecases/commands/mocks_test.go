package commands_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"courierdesk/internal/core/application/usecases/commands"
	"courierdesk/internal/core/domain/model/customer"
	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/core/domain/model/order"
	"courierdesk/internal/core/domain/model/settings"
	"courierdesk/internal/core/domain/model/voucher"
	"courierdesk/internal/core/ports"
	"courierdesk/internal/pkg/errs"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) AppendHistory(ctx context.Context, entry order.HistoryEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockOrderRepository) History(ctx context.Context, id kernel.UUID) ([]order.HistoryEntry, error) {
	args := m.Called(ctx, id)
	entries, _ := args.Get(0).([]order.HistoryEntry)
	return entries, args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

type MockSettingsRepository struct{ mock.Mock }

func (m *MockSettingsRepository) Get(ctx context.Context) (settings.CompanySettings, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(settings.CompanySettings)
	return s, args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, s settings.CompanySettings) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSettingsRepository) EnsureDefaults(ctx context.Context, s settings.CompanySettings) error {
	return m.Called(ctx, s).Error(0)
}

type MockVoucherSequenceRepository struct{ mock.Mock }

func (m *MockVoucherSequenceRepository) Next(ctx context.Context, key voucher.Key) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVoucherSequenceRepository) Current(ctx context.Context, key voucher.Key) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

type MockVoucherRepository struct{ mock.Mock }

func (m *MockVoucherRepository) Add(ctx context.Context, v *voucher.Voucher) error {
	return m.Called(ctx, v).Error(0)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	return m.Called().Get(0).(ports.CustomerRepository)
}

func (m *MockUoW) SettingsRepository() ports.SettingsRepository {
	return m.Called().Get(0).(ports.SettingsRepository)
}

func (m *MockUoW) VoucherSequenceRepository() ports.VoucherSequenceRepository {
	return m.Called().Get(0).(ports.VoucherSequenceRepository)
}

func (m *MockUoW) VoucherRepository() ports.VoucherRepository {
	return m.Called().Get(0).(ports.VoucherRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockCustomerUoWFactory struct{ mock.Mock }

func (m *MockCustomerUoWFactory) Create() commands.CustomerUoW {
	return m.Called().Get(0).(commands.CustomerUoW)
}

type MockSettingsUoWFactory struct{ mock.Mock }

func (m *MockSettingsUoWFactory) Create() commands.SettingsUoW {
	return m.Called().Get(0).(commands.SettingsUoW)
}

type MockSequenceUoWFactory struct{ mock.Mock }

func (m *MockSequenceUoWFactory) Create() commands.SequenceUoW {
	return m.Called().Get(0).(commands.SequenceUoW)
}

type MockVoucherUoWFactory struct{ mock.Mock }

func (m *MockVoucherUoWFactory) Create() commands.VoucherUoW {
	return m.Called().Get(0).(commands.VoucherUoW)
}

type MockOrderTotalCalculator struct{ mock.Mock }

func (m *MockOrderTotalCalculator) ComputeTotal(
	ctx context.Context,
	customerID *kernel.UUID,
	weightLbs *decimal.Decimal,
) decimal.Decimal {
	return m.Called(ctx, customerID, weightLbs).Get(0).(decimal.Decimal)
}

// memOrderStore is an in-memory order store whose unit of work only publishes
// writes on Commit, so tests can check that failed transitions leave nothing behind.
type memOrderStore struct {
	mu        sync.Mutex
	orders    map[kernel.UUID]*order.Order
	history   map[kernel.UUID][]order.HistoryEntry
	beginErr  error
	beginHook func(n int) error
	begins    int
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{
		orders:  make(map[kernel.UUID]*order.Order),
		history: make(map[kernel.UUID][]order.HistoryEntry),
	}
}

func (s *memOrderStore) Create() commands.OrderUoW {
	return &memOrderUoW{store: s}
}

// put stores an order in the given status without history beyond intake.
func (s *memOrderStore) put(status order.Status) kernel.UUID {
	id := kernel.NewUUID()
	o, err := order.RestoreOrder(id, "G-"+id.String()[:8], nil, kernel.FacilityDefault, nil,
		decimal.Zero, status, time.Now())
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[id] = o
	return id
}

func (s *memOrderStore) status(id kernel.UUID) order.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id].Status()
}

func (s *memOrderStore) entries(id kernel.UUID) []order.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]order.HistoryEntry(nil), s.history[id]...)
}

type memOrderUoW struct {
	store   *memOrderStore
	active  bool
	updates []*order.Order
	added   []*order.Order
	entries []order.HistoryEntry
}

func (u *memOrderUoW) Begin(_ context.Context) error {
	u.store.mu.Lock()
	u.store.begins++
	n := u.store.begins
	err := u.store.beginErr
	hook := u.store.beginHook
	u.store.mu.Unlock()

	if hook != nil {
		if hookErr := hook(n); hookErr != nil {
			return hookErr
		}
	}
	if err != nil {
		return err
	}
	u.active = true
	return nil
}

func (u *memOrderUoW) Commit(_ context.Context) error {
	if !u.active {
		return errors.New("no transaction")
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	for _, o := range append(u.added, u.updates...) {
		u.store.orders[o.ID()] = o
	}
	for _, e := range u.entries {
		u.store.history[e.OrderID()] = append(u.store.history[e.OrderID()], e)
	}
	u.active = false
	return nil
}

func (u *memOrderUoW) Rollback(_ context.Context) error {
	u.active = false
	u.updates, u.added, u.entries = nil, nil, nil
	return nil
}

func (u *memOrderUoW) OrderRepository() ports.OrderRepository {
	return memOrderRepo{uow: u}
}

type memOrderRepo struct {
	uow *memOrderUoW
}

func (r memOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.uow.added = append(r.uow.added, o)
	return nil
}

func (r memOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.uow.updates = append(r.uow.updates, o)
	return nil
}

func (r memOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	o, ok := r.uow.store.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return order.RestoreOrder(o.ID(), o.Guide(), o.CustomerID(), o.Facility(), o.WeightLbs(), o.Total(),
		o.Status(), o.CreatedAt())
}

func (r memOrderRepo) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r memOrderRepo) AppendHistory(_ context.Context, entry order.HistoryEntry) error {
	r.uow.entries = append(r.uow.entries, entry)
	return nil
}

func (r memOrderRepo) History(_ context.Context, id kernel.UUID) ([]order.HistoryEntry, error) {
	return r.uow.store.entries(id), nil
}

var (
	zeroTotal = decimal.Zero
	fixedNow  = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
)
