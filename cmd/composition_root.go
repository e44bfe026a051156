package cmd

import (
	"log/slog"
	"strings"

	"parcelflow/internal/adapters/out/blob"
	"parcelflow/internal/adapters/out/geo"
	"parcelflow/internal/adapters/out/kafka"
	"parcelflow/internal/adapters/out/postgres"
	"parcelflow/internal/adapters/out/postgres/orderrepo"
	"parcelflow/internal/adapters/out/postgres/recipientrepo"
	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/application/usecases/queries"
	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/core/domain/services"
	"parcelflow/internal/core/ports"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB       *gorm.DB
	uowFactory   postgres.GormUnitOfWorkFactory
	resolver     ports.AddressResolver
	photoStorage ports.PhotoStorage
	publisher    *kafka.StatusPublisher
	logger       *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	var resolver ports.AddressResolver = geo.NewClient(configs.GeoAPIBaseURL)
	if configs.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
		resolver = geo.NewCachingResolver(resolver, redisClient, logger)
	}

	return CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		resolver:     resolver,
		photoStorage: blob.NewFilesystemPhotoStorage(configs.PhotoStorageDir),
		publisher:    kafka.NewStatusPublisher(strings.Split(configs.KafkaHost, ","), configs.KafkaStatusChangedTopic),
		logger:       logger,
	}
}

// Close releases resources held by outbound adapters.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderAccountUoWFactory = FuncOrderAccountUoWFactory(func() commands.OrderAccountUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, services.NewTransitionAuthority(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	var f commands.OrderAccountUoWFactory = FuncOrderAccountUoWFactory(func() commands.OrderAccountUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteDeliveryCommandHandler(
		f, services.NewTransitionAuthority(), c.photoStorage, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGeocodeRecipientsCommandHandler() commands.GeocodeRecipientsCommandHandler {
	var f commands.RecipientUoWFactory = FuncRecipientUoWFactory(func() commands.RecipientUoW {
		return c.uowFactory.Create()
	})
	return commands.NewGeocodeRecipientsCommandHandler(f, c.resolver, c.logger)
}

func (c *CompositionRoot) CreateGetNearbyDeliveriesQueryHandler() queries.GetNearbyDeliveriesQueryHandler {
	return queries.NewGetNearbyDeliveriesQueryHandler(
		orderrepo.NewGormOrderRepository(c.gormDB, readOnlyTracker{}),
		recipientrepo.NewGormRecipientRepository(c.gormDB),
		c.resolver,
		services.NewNearbyMatcher(c.logger),
	)
}

func (c *CompositionRoot) CreateGetAgentOrdersQueryHandler() queries.GetAgentOrdersQueryHandler {
	return queries.NewGetAgentOrdersQueryHandler(c.gormDB)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderAccountUoWFactory func() commands.OrderAccountUoW

func (f FuncOrderAccountUoWFactory) Create() commands.OrderAccountUoW {
	return f()
}

type FuncRecipientUoWFactory func() commands.RecipientUoW

func (f FuncRecipientUoWFactory) Create() commands.RecipientUoW {
	return f()
}

// readOnlyTracker backs repositories used outside a unit of work, where
// nothing mutates and tracked aggregates would never be flushed.
type readOnlyTracker struct{}

func (readOnlyTracker) TrackAggregate(kernel.UUID, any) {}
