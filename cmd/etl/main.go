package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/epitrack/disease-data-etl/internal/adapter/http"
	kafkaadapter "github.com/epitrack/disease-data-etl/internal/adapter/kafka"
	"github.com/epitrack/disease-data-etl/internal/config"
	"github.com/epitrack/disease-data-etl/internal/observability"
	"github.com/epitrack/disease-data-etl/internal/pipeline"
	"github.com/epitrack/disease-data-etl/internal/source"
	"github.com/epitrack/disease-data-etl/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	transformers := make([]source.Transformer, 0, len(cfg.Sources))
	for _, src := range cfg.Sources {
		t, err := source.New(src.Name, src.URI, logger)
		if err != nil {
			logger.Error("failed to build source", "source", src.Name, "error", err)
			os.Exit(1)
		}
		transformers = append(transformers, t)
	}

	db, err := store.Open(cfg.DatabasePath, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Kafka publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var publisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, logger)
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	sink := pipeline.Store(db)
	if publisher != nil {
		sink = &publishingStore{store: db, publisher: publisher, logger: logger}
	}

	p := pipeline.New(transformers, sink, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, db, p, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Run the load cycle once at startup; the query API keeps serving
	// from the result until the process is restarted with fresh data.
	if err := p.Run(ctx); err != nil {
		logger.Error("load cycle failed", "error", err)
		stop()
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
