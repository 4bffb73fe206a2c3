package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Jaaccob/SagaApp/config"
	"github.com/Jaaccob/SagaApp/internal/application"
	"github.com/Jaaccob/SagaApp/internal/infrastructure/broker"
	"github.com/Jaaccob/SagaApp/internal/infrastructure/deadletter"
	"github.com/Jaaccob/SagaApp/internal/infrastructure/metrics"
	pginfra "github.com/Jaaccob/SagaApp/internal/infrastructure/postgres"
	"github.com/Jaaccob/SagaApp/pkg/helpers"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-outbox-relay", cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	b, err := broker.Open(cfg)
	if err != nil {
		log.Fatalf("failed to open event broker: %v", err)
	}
	defer func() { _ = b.Close() }()

	// Dead records are still marked dead without a bucket; they just are not copied out.
	var archive application.DeadLetterArchive
	if cfg.GCSBucket != "" {
		gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcs.Close() }()
		archive = deadletter.NewArchive(helpers.NewGCSUploader(gcs, cfg.GCSBucket), cfg.GCSDeadLetterPrefix)
	} else {
		logger.Warn("GCS_BUCKET not set; dead outbox records will not be archived")
	}

	relay := application.NewOutboxRelay(
		pginfra.NewOutboxStore(pool),
		b,
		archive,
		application.RelayConfig{
			BatchSize:   cfg.OutboxBatchSize,
			MaxAttempts: cfg.OutboxMaxAttempts,
			Lease:       cfg.OutboxLease,
			SendTimeout: cfg.PublishTimeout,
		},
		logger,
		metrics.New(prometheus.DefaultRegisterer),
	)

	logger.WithFields(logrus.Fields{
		"broker":   cfg.EventBroker,
		"interval": cfg.OutboxPollInterval.String(),
		"batch":    cfg.OutboxBatchSize,
	}).Info("outbox relay starting")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return relay.Run(gctx, cfg.OutboxPollInterval) })
	if cfg.MetricsEnabled {
		g.Go(func() error { return metrics.Serve(gctx, cfg.MetricsAddr, prometheus.DefaultGatherer, logger) })
	}
	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("outbox relay stopped with error")
		return
	}
	logger.Info("outbox relay exited properly")
}
