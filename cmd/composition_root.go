package cmd

import (
	"fmt"
	"log/slog"
	"time"

	httpadapter "buffet/internal/adapters/in/http"
	"buffet/internal/adapters/out/postgres"
	"buffet/internal/adapters/out/postgres/identityrepo"
	"buffet/internal/adapters/out/postgres/orderrepo"
	redisadapter "buffet/internal/adapters/out/redis"
	"buffet/internal/adapters/out/smtp"
	"buffet/internal/core/application/notify"
	"buffet/internal/core/application/usecases/commands"
	"buffet/internal/core/application/usecases/queries"
	"buffet/internal/core/domain/services"
	"buffet/internal/core/ports"
	"buffet/internal/jobs"
	"buffet/internal/pkg/envelope"
	"buffet/internal/pkg/telemetry"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived collaborators and builds the handlers
// from them.
type CompositionRoot struct {
	config     Config
	uowFactory *postgres.GormUnitOfWorkFactory
	orders     *orderrepo.GormOrderRepository
	directory  *identityrepo.GormIdentityDirectory
	codec      *envelope.Codec
	metrics    *telemetry.Metrics
	dispatcher *notify.Dispatcher
	verifier   *httpadapter.TokenVerifier
	logger     *slog.Logger
}

// NewCompositionRoot wires the adapters. redisClient may be nil, in which
// case ready emails are not deduplicated across retries.
func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient goredis.UniversalClient, logger *slog.Logger) (*CompositionRoot, error) {
	codec, err := envelope.NewCodecFromHex(config.OrderEmailKey)
	if err != nil {
		return nil, fmt.Errorf("order email key: %w", err)
	}

	verifier, err := httpadapter.NewTokenVerifier(config.JWTSecret)
	if err != nil {
		return nil, err
	}

	composer, err := services.NewReceiptComposer(config.MailLanguage, config.Location())
	if err != nil {
		return nil, fmt.Errorf("mail language: %w", err)
	}

	mailer, err := smtp.NewMailer(smtp.Config{
		Host:     config.SMTPHost,
		Port:     config.SMTPPort,
		Username: config.SMTPUsername,
		Password: config.SMTPPassword,
		From:     config.MailFrom,
	})
	if err != nil {
		return nil, err
	}

	var guard ports.NotificationGuard = notify.NopGuard{}
	if redisClient != nil {
		guard = redisadapter.NewGuard(redisClient)
	}

	metrics := telemetry.NewMetrics()

	return &CompositionRoot{
		config:     config,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		orders:     orderrepo.NewGormOrderRepository(gormDB),
		directory:  identityrepo.NewGormIdentityDirectory(gormDB),
		codec:      codec,
		metrics:    metrics,
		dispatcher: notify.NewDispatcher(composer, mailer, guard, metrics, logger, config.MailTimeout),
		verifier:   verifier,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(),
		c.directory,
		c.codec,
		c.dispatcher,
		c.metrics,
		time.Now,
	)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(
		c.orderUoWFactory(),
		c.codec,
		c.dispatcher,
		c.metrics,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetOrderByPickupCodeQueryHandler() queries.GetOrderByPickupCodeQueryHandler {
	return queries.NewGetOrderByPickupCodeQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateGetMyOrdersQueryHandler() queries.GetMyOrdersQueryHandler {
	return queries.NewGetMyOrdersQueryHandler(c.orders, c.codec, c.logger)
}

func (c *CompositionRoot) CreateGetBuffetOrdersQueryHandler() queries.GetBuffetOrdersQueryHandler {
	return queries.NewGetBuffetOrdersQueryHandler(c.orders, c.codec)
}

func (c *CompositionRoot) CreateGetStatusSummaryQueryHandler() queries.GetStatusSummaryQueryHandler {
	return queries.NewGetStatusSummaryQueryHandler(c.orders)
}

// CreateServer builds the HTTP server with every use case attached.
func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	createOrder := c.CreateCreateOrderCommandHandler()
	changeStatus := c.CreateChangeOrderStatusCommandHandler()

	return httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:       &createOrder,
		ChangeOrderStatus: &changeStatus,
		GetByPickupCode:   c.CreateGetOrderByPickupCodeQueryHandler(),
		GetAllOrders:      c.CreateGetAllOrdersQueryHandler(),
		GetMyOrders:       c.CreateGetMyOrdersQueryHandler(),
		GetBuffetOrders:   c.CreateGetBuffetOrdersQueryHandler(),
	}, c.verifier, c.metrics.Handler(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetStatusSummaryQueryHandler(),
		c.metrics,
		c.config.BacklogJobSchedule,
		c.logger,
	)
}

// Dispatcher exposes the notification dispatcher so shutdown can drain it.
func (c *CompositionRoot) Dispatcher() *notify.Dispatcher {
	return c.dispatcher
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
