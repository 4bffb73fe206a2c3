package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/Jaaccob/SagaApp/config"
	"github.com/Jaaccob/SagaApp/internal/container"
	"github.com/Jaaccob/SagaApp/internal/infrastructure/broker"
	"github.com/Jaaccob/SagaApp/internal/infrastructure/metrics"
	pginfra "github.com/Jaaccob/SagaApp/internal/infrastructure/postgres"
	"github.com/Jaaccob/SagaApp/internal/infrastructure/search"
	"github.com/Jaaccob/SagaApp/internal/interface/middleware"
	"github.com/Jaaccob/SagaApp/internal/router"
	"github.com/Jaaccob/SagaApp/pkg/helpers"
	"github.com/Jaaccob/SagaApp/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Initialize Postgres pool
	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{
		DSN:         cfg.PostgresDSN(),
		MaxConns:    cfg.DBMaxConns,
		MinConns:    cfg.DBMinConns,
		MaxConnLife: cfg.DBMaxConnLife,
	})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// Redis backs rate limiting and the projection cache
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	if cfg.ProjectionBackend == config.ProjectionElasticsearch {
		es, err := helpers.NewESClient(ctx, cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			log.Fatalf("failed to init elasticsearch: %v", err)
		}
		if err := search.NewProductIndex(es, cfg.ESProductsIndex).EnsureIndex(ctx); err != nil {
			log.Fatalf("failed to ensure index %s: %v", cfg.ESProductsIndex, err)
		}
		container.SetES(es)
	}

	// Outbox mode leaves delivery to the relay, so the API never touches the broker.
	if !cfg.UseOutbox() {
		b, err := broker.Open(cfg)
		if err != nil {
			log.Fatalf("failed to open event broker: %v", err)
		}
		defer func() { _ = b.Close() }()
		container.SetPublisher(b)
	}
	logger.WithFields(logrus.Fields{
		"publish_mode": cfg.PublishMode,
		"broker":       cfg.EventBroker,
		"read_model":   cfg.ProjectionBackend,
	}).Info("event pipeline configured")

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetRedis(rdb)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL))
	container.SetMetrics(metrics.New(prometheus.DefaultRegisterer))

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	// CORS
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
