package cmd

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	httpadapter "courierdesk/internal/adapters/in/http"
	"courierdesk/internal/adapters/out/postgres"
	"courierdesk/internal/core/application/usecases/commands"
	"courierdesk/internal/core/application/usecases/queries"
	"courierdesk/internal/core/domain/model/settings"
	"courierdesk/internal/jobs"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *zap.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, log *zap.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, log),
		logger:     log,
	}
}

func (c *CompositionRoot) retryPolicy() commands.RetryPolicy {
	return commands.RetryPolicy{MaxAttempts: c.config.VoucherMaxAttempts, Backoff: c.config.VoucherRetryBackoff}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateCustomerCommandHandler() commands.CreateCustomerCommandHandler {
	var f commands.CustomerUoWFactory = FuncCustomerUoWFactory(func() commands.CustomerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCustomerCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.CreateComputeOrderTotalQueryHandler())
}

func (c *CompositionRoot) CreateUpdateOrderWeightCommandHandler() commands.UpdateOrderWeightCommandHandler {
	return commands.NewUpdateOrderWeightCommandHandler(c.orderUoWFactory(), c.CreateComputeOrderTotalQueryHandler())
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	return commands.NewTransitionOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateApplyBulkStatusCommandHandler() commands.ApplyBulkStatusCommandHandler {
	return commands.NewApplyBulkStatusCommandHandler(c.orderUoWFactory(), c.config.BulkMaxBatchSize, c.logger)
}

func (c *CompositionRoot) CreateAllocateVoucherNumberCommandHandler() commands.AllocateVoucherNumberCommandHandler {
	var f commands.SequenceUoWFactory = FuncSequenceUoWFactory(func() commands.SequenceUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAllocateVoucherNumberCommandHandler(f, c.retryPolicy(), c.logger)
}

func (c *CompositionRoot) CreateIssueVoucherCommandHandler() commands.IssueVoucherCommandHandler {
	var f commands.VoucherUoWFactory = FuncVoucherUoWFactory(func() commands.VoucherUoW {
		return c.uowFactory.Create()
	})
	return commands.NewIssueVoucherCommandHandler(f, c.retryPolicy(), c.logger)
}

func (c *CompositionRoot) CreateUpdateCompanySettingsCommandHandler() commands.UpdateCompanySettingsCommandHandler {
	var f commands.SettingsUoWFactory = FuncSettingsUoWFactory(func() commands.SettingsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCompanySettingsCommandHandler(f)
}

// CreateComputeOrderTotalQueryHandler is the pricing engine; commands use it as
// their OrderTotalCalculator.
func (c *CompositionRoot) CreateComputeOrderTotalQueryHandler() queries.ComputeOrderTotalQueryHandler {
	var f queries.PricingSourcesFactory = FuncPricingSourcesFactory(func() queries.PricingSources {
		return c.uowFactory.Create()
	})
	return queries.NewComputeOrderTotalQueryHandler(f, c.logger)
}

func (c *CompositionRoot) CreateGetAllCustomersQueryHandler() queries.GetAllCustomersQueryHandler {
	return queries.NewGetAllCustomersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUndeliveredOrdersQueryHandler() queries.GetUndeliveredOrdersQueryHandler {
	return queries.NewGetUndeliveredOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateAuditVoucherSequencesQueryHandler() queries.AuditVoucherSequencesQueryHandler {
	return queries.NewAuditVoucherSequencesQueryHandler(c.gormDB)
}

// CreateServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	createCustomer := c.CreateCreateCustomerCommandHandler()
	createOrder := c.CreateCreateOrderCommandHandler()
	updateWeight := c.CreateUpdateOrderWeightCommandHandler()
	transition := c.CreateTransitionOrderStatusCommandHandler()
	advance := c.CreateAdvanceOrderStatusCommandHandler()
	bulk := c.CreateApplyBulkStatusCommandHandler()
	allocate := c.CreateAllocateVoucherNumberCommandHandler()
	issue := c.CreateIssueVoucherCommandHandler()
	updateSettings := c.CreateUpdateCompanySettingsCommandHandler()

	return httpadapter.NewServer(httpadapter.Handlers{
		CreateCustomer:    &createCustomer,
		CreateOrder:       &createOrder,
		UpdateOrderWeight: &updateWeight,
		TransitionOrder:   &transition,
		AdvanceOrder:      &advance,
		ApplyBulkStatus:   &bulk,
		AllocateVoucher:   &allocate,
		IssueVoucher:      &issue,
		UpdateSettings:    &updateSettings,

		GetAllCustomers:       c.CreateGetAllCustomersQueryHandler(),
		GetUndeliveredOrders:  c.CreateGetUndeliveredOrdersQueryHandler(),
		GetOrderHistory:       c.CreateGetOrderHistoryQueryHandler(),
		ComputeOrderTotal:     c.CreateComputeOrderTotalQueryHandler(),
		AuditVoucherSequences: c.CreateAuditVoucherSequencesQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateAuditVoucherSequencesQueryHandler(), c.config.VoucherAuditSchedule, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCustomerUoWFactory func() commands.CustomerUoW

func (f FuncCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}

type FuncSettingsUoWFactory func() commands.SettingsUoW

func (f FuncSettingsUoWFactory) Create() commands.SettingsUoW {
	return f()
}

type FuncSequenceUoWFactory func() commands.SequenceUoW

func (f FuncSequenceUoWFactory) Create() commands.SequenceUoW {
	return f()
}

type FuncVoucherUoWFactory func() commands.VoucherUoW

func (f FuncVoucherUoWFactory) Create() commands.VoucherUoW {
	return f()
}

type FuncPricingSourcesFactory func() queries.PricingSources

func (f FuncPricingSourcesFactory) Create() queries.PricingSources {
	return f()
}

// SeedCompanySettings stores the configured defaults unless settings already exist.
func (c *CompositionRoot) SeedCompanySettings(ctx context.Context) error {
	defaults, err := settings.NewCompanySettings(
		c.config.DefaultPricePerLb,
		true,
		c.config.DefaultEstablishmentCode,
		c.config.DefaultEmissionPointCode,
		time.Now(),
	)
	if err != nil {
		return err
	}
	return c.uowFactory.Create().SettingsRepository().EnsureDefaults(ctx, defaults)
}
