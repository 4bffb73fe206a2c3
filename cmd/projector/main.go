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
	"github.com/Jaaccob/SagaApp/internal/infrastructure/cache"
	"github.com/Jaaccob/SagaApp/internal/infrastructure/kafka"
	"github.com/Jaaccob/SagaApp/internal/infrastructure/metrics"
	"github.com/Jaaccob/SagaApp/internal/infrastructure/search"
	"github.com/Jaaccob/SagaApp/pkg/helpers"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-projector", cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	es, err := helpers.NewESClient(ctx, cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("failed to init elasticsearch: %v", err)
	}
	index := search.NewProductIndex(es, cfg.ESProductsIndex)
	if err := index.EnsureIndex(ctx); err != nil {
		log.Fatalf("failed to ensure index %s: %v", cfg.ESProductsIndex, err)
	}

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	projector := application.NewProductProjector(
		index,
		cache.NewDeduplicator(rdb, cfg.ProjectorDedupTTL),
		logger,
		metrics.New(prometheus.DefaultRegisterer),
	)

	consumer := kafka.NewConsumer(kafka.NewReader(cfg.KafkaBrokers(), cfg.KafkaProductTopic, cfg.KafkaProjectorGroup), logger)
	defer func() { _ = consumer.Close() }()

	logger.WithFields(logrus.Fields{
		"topic": cfg.KafkaProductTopic,
		"group": cfg.KafkaProjectorGroup,
		"index": cfg.ESProductsIndex,
	}).Info("projector starting")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return consumer.Run(gctx, projector.Handle) })
	if cfg.MetricsEnabled {
		g.Go(func() error { return metrics.Serve(gctx, cfg.MetricsAddr, prometheus.DefaultGatherer, logger) })
	}
	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("projector stopped with error")
		return
	}
	logger.Info("projector exited properly")
}
