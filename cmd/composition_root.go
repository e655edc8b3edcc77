package cmd

import (
	"log/slog"

	"ordering/internal/adapters/in/events"
	orderhttp "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/observability"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/adapters/out/redis/eventpublisher"
	"ordering/internal/adapters/out/redis/processedevents"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"
	"ordering/internal/pkg/telemetry"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const instrumentationName = "ordering"

type CompositionRoot struct {
	cfg         Config
	gormDB      *gorm.DB
	redis       redis.UniversalClient
	instruments *telemetry.Instruments
	logger      *slog.Logger
	uowFactory  *postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	redisClient redis.UniversalClient,
	instruments *telemetry.Instruments,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		cfg:         cfg,
		gormDB:      gormDB,
		redis:       redisClient,
		instruments: instruments,
		logger:      logger,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return observedUoW{UnitOfWork: c.uowFactory.Create(), observe: c.observe}
	})
}

func (c *CompositionRoot) observe(repo ports.OrderRepository) ports.OrderRepository {
	return observability.NewRepository(repo,
		observability.WithLogger(c.logger),
		observability.WithTracer(c.instruments.Tracer(instrumentationName)),
		observability.WithMeter(c.instruments.Meter(instrumentationName)),
	)
}

// orderReader serves the queries outside any transaction.
func (c *CompositionRoot) orderReader() queries.OrderReader {
	return c.observe(orderrepo.NewGormOrderRepository(c.gormDB, discardTracker{}))
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	h := commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() *commands.ConfirmOrderCommandHandler {
	h := commands.NewConfirmOrderCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() *commands.ChangeOrderStatusCommandHandler {
	h := commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() *commands.CancelOrderCommandHandler {
	h := commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateApplyDiscountCommandHandler() *commands.ApplyDiscountCommandHandler {
	h := commands.NewApplyDiscountCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateRemoveDiscountCommandHandler() *commands.RemoveDiscountCommandHandler {
	h := commands.NewRemoveDiscountCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateAddOrderLineCommandHandler() *commands.AddOrderLineCommandHandler {
	h := commands.NewAddOrderLineCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateRemoveOrderLineCommandHandler() *commands.RemoveOrderLineCommandHandler {
	h := commands.NewRemoveOrderLineCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateUpdateOrderLineQuantityCommandHandler() *commands.UpdateOrderLineQuantityCommandHandler {
	h := commands.NewUpdateOrderLineQuantityCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateForceOrderStatusCommandHandler() *commands.ForceOrderStatusCommandHandler {
	h := commands.NewForceOrderStatusCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateAddInternalNotesCommandHandler() *commands.AddInternalNotesCommandHandler {
	h := commands.NewAddInternalNotesCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateCancelStalePendingOrdersCommandHandler() *commands.CancelStalePendingOrdersCommandHandler {
	h := commands.NewCancelStalePendingOrdersCommandHandler(c.orderUoWFactory(), c.logger)
	return &h
}

// CreateHTTPHandlers wires every use case served by the API.
func (c *CompositionRoot) CreateHTTPHandlers() orderhttp.Handlers {
	reader := c.orderReader()
	return orderhttp.Handlers{
		CreateOrder:            c.CreateCreateOrderCommandHandler(),
		ConfirmOrder:           c.CreateConfirmOrderCommandHandler(),
		ChangeOrderStatus:      c.CreateChangeOrderStatusCommandHandler(),
		CancelOrder:            c.CreateCancelOrderCommandHandler(),
		ApplyDiscount:          c.CreateApplyDiscountCommandHandler(),
		RemoveDiscount:         c.CreateRemoveDiscountCommandHandler(),
		AddOrderLine:           c.CreateAddOrderLineCommandHandler(),
		RemoveOrderLine:        c.CreateRemoveOrderLineCommandHandler(),
		UpdateOrderLineQty:     c.CreateUpdateOrderLineQuantityCommandHandler(),
		ForceOrderStatus:       c.CreateForceOrderStatusCommandHandler(),
		AddInternalNotes:       c.CreateAddInternalNotesCommandHandler(),
		CancelStalePending:     c.CreateCancelStalePendingOrdersCommandHandler(),
		GetOrder:               queries.NewGetOrderQueryHandler(reader),
		ListOrders:             queries.NewListOrdersQueryHandler(reader),
		GetOrderHistory:        queries.NewGetOrderHistoryQueryHandler(reader),
		GetOrderStatistics:     queries.NewGetOrderStatisticsQueryHandler(reader),
		CanCreateOrder:         queries.NewCanCreateOrderForCustomerQueryHandler(reader),
		ListStalePendingOrders: queries.NewListStalePendingOrdersQueryHandler(reader),
		SearchOrders:           queries.NewSearchOrdersQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateEventSubscriber() *events.RedisSubscriber {
	handler := events.NewHandler(
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		processedevents.NewRedisProcessedEvents(c.redis, c.cfg.ServiceName),
		c.cfg.ProcessedEventTTL,
		c.logger,
	)
	return events.NewRedisSubscriber(c.redis, c.cfg.InboundChannels, handler, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewStaleOrderCancellationJob(
			c.CreateCancelStalePendingOrdersCommandHandler(),
			c.cfg.StaleOrderAge,
			c.cfg.StaleOrderSchedule,
			c.logger,
		),
		jobs.NewOutboxRelayJob(
			outboxrepo.NewGormOutboxRepository(c.gormDB),
			eventpublisher.NewRedisEventPublisher(c.redis, c.cfg.EventsChannelPrefix),
			c.cfg.OutboxRelaySchedule,
			c.logger,
		),
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// observedUoW hands out instrumented repositories bound to its transaction.
type observedUoW struct {
	ports.UnitOfWork
	observe func(ports.OrderRepository) ports.OrderRepository
}

func (u observedUoW) OrderRepository() ports.OrderRepository {
	return u.observe(u.UnitOfWork.OrderRepository())
}

// discardTracker backs the read-only repository; nothing saved through it
// reaches an outbox.
type discardTracker struct{}

func (discardTracker) TrackAggregate(kernel.UUID, any) {}
