package router

import (
	"github.com/Jaaccob/SagaApp/config"
	"github.com/Jaaccob/SagaApp/internal/application"
	"github.com/Jaaccob/SagaApp/internal/container"
	"github.com/Jaaccob/SagaApp/internal/domain/repository"
	"github.com/Jaaccob/SagaApp/internal/domain/service"
	"github.com/Jaaccob/SagaApp/internal/infrastructure/cache"
	pginfra "github.com/Jaaccob/SagaApp/internal/infrastructure/postgres"
	"github.com/Jaaccob/SagaApp/internal/infrastructure/search"
	handlers "github.com/Jaaccob/SagaApp/internal/interface/http"
	"github.com/Jaaccob/SagaApp/internal/router/modules"
	"github.com/Jaaccob/SagaApp/pkg/helpers"
)

// pipelineOptions applies the configured publish mode and timeouts to every
// command handler.
func pipelineOptions() []application.Option {
	cfg := container.GetConfig()
	opts := []application.Option{
		application.WithLogger(container.GetLogger()),
		application.WithMetrics(container.GetMetrics()),
		application.WithTimeouts(cfg.CommandTimeout, cfg.PublishTimeout),
	}
	if cfg.UseOutbox() {
		opts = append(opts, application.WithOutbox())
	}
	return opts
}

// productReadModel picks the projection backend and puts the redis cache in
// front of it when a TTL is configured.
func productReadModel(store *pginfra.ProductRepository) repository.ProductQueryRepository {
	cfg := container.GetConfig()

	var rm repository.ProductQueryRepository = store
	if cfg.ProjectionBackend == config.ProjectionElasticsearch {
		rm = search.NewProductIndex(container.GetES(), cfg.ESProductsIndex)
	}
	if cfg.ProjectionCacheTTL > 0 {
		rm = cache.NewProjectionCache(rm, container.GetRedis(), cfg.ProjectionCacheTTL, container.GetLogger())
	}
	return rm
}

func buildProductHandler() *handlers.ProductHandler {
	store := pginfra.NewProductRepository(container.GetPGPool())

	create := application.NewProductCreateCommandHandler(
		service.NewProductDomainService(),
		store,
		container.GetPublisher(),
		pipelineOptions()...,
	)
	query := application.NewGetProductQueryHandler(productReadModel(store))

	return handlers.NewProductHandler(create, query, container.GetLogger())
}

func buildUserHandler() *handlers.UserHandler {
	pool := container.GetPGPool()

	svc := application.NewUserService(
		service.NewUserDomainService(),
		pginfra.NewUserRepository(pool),
		application.NewRoleCache(pginfra.NewRoleRepository(pool)),
		helpers.NewBcryptHasher(),
		container.GetJWT(),
		container.GetPublisher(),
		pipelineOptions()...,
	)
	return handlers.NewUserHandler(svc, container.GetLogger())
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	r.Add(modules.NewProductModule(buildProductHandler(), container.GetJWT()))
	r.Add(modules.NewUserModule(buildUserHandler()))
	if container.GetConfig().MetricsEnabled {
		r.Add(modules.NewMetricsModule())
	}
}
