package cmd

import (
	"log/slog"

	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/ports"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs   Config
	gormDB    *gorm.DB
	publisher ports.NotificationPublisher
	logger    *slog.Logger
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	publisher ports.NotificationPublisher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		configs:   configs,
		gormDB:    gormDB,
		publisher: publisher,
		logger:    logger,
	}
}

func (c *CompositionRoot) createOrderRepository() *orderrepo.Repository {
	repository, err := orderrepo.NewRepository(c.gormDB)
	if err != nil {
		log.Fatalf("cannot create order repository: %v", err)
	}
	return repository
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.createOrderRepository(),
		c.publisher,
		c.configs.Environment,
		c.configs.KafkaOrderCreatedTopic,
		c.logger,
	)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.createOrderRepository(), c.logger)
}

func (c *CompositionRoot) CreateSearchOrdersQueryHandler() queries.SearchOrdersQueryHandler {
	return queries.NewSearchOrdersQueryHandler(c.createOrderRepository(), c.logger)
}
