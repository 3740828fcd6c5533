package cmd

import (
	"strings"

	"orderregistry/internal/adapters/out/msgbroker"
	"orderregistry/internal/adapters/out/postgres"
	"orderregistry/internal/core/application/usecases/commands"
	"orderregistry/internal/core/application/usecases/queries"
	"orderregistry/internal/core/ports"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB         *gorm.DB
	uowFactory     postgres.GormUnitOfWorkFactory
	eventPublisher ports.EventPublisher
	kafkaPublisher *msgbroker.KafkaOrderPublisher
	logger         *zap.Logger
}

// NewCompositionRoot wires the adapters and use case handlers together.
// With no Kafka host configured, processed events go to the log publisher;
// local development needs no broker.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) (CompositionRoot, error) {
	root := CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}

	if config.KafkaHost == "" {
		root.eventPublisher = msgbroker.NewLogEventPublisher(logger)
		return root, nil
	}

	publisher, err := msgbroker.NewKafkaOrderPublisher(
		strings.Split(config.KafkaHost, ","),
		config.KafkaOrderProcessedTopic,
		logger,
	)
	if err != nil {
		return CompositionRoot{}, err
	}

	root.eventPublisher = publisher
	root.kafkaPublisher = publisher
	return root, nil
}

// Close releases resources held by outbound adapters.
func (c *CompositionRoot) Close() {
	if c.kafkaPublisher != nil {
		c.kafkaPublisher.Close()
	}
}

func (c *CompositionRoot) CreateRegisterOrderCommandHandler() commands.RegisterOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterOrderCommandHandler(f, c.eventPublisher, c.logger)
}

func (c *CompositionRoot) CreateFailStalledOrdersCommandHandler() commands.FailStalledOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewFailStalledOrdersCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
