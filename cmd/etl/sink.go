package main

import (
	"context"
	"log/slog"

	kafkaadapter "github.com/epitrack/disease-data-etl/internal/adapter/kafka"
	"github.com/epitrack/disease-data-etl/internal/domain"
	"github.com/epitrack/disease-data-etl/internal/pipeline"
)

// publishingStore decorates the store with Kafka publishing. The table
// rebuild is authoritative; a publish failure is logged but does not
// fail the load.
type publishingStore struct {
	store     pipeline.Store
	publisher *kafkaadapter.Publisher
	logger    *slog.Logger
}

func (s *publishingStore) ReplaceAll(ctx context.Context, records []domain.Record) error {
	if err := s.store.ReplaceAll(ctx, records); err != nil {
		return err
	}
	if err := s.publisher.PublishBatch(ctx, records); err != nil {
		s.logger.Error("kafka publish failed", "error", err)
	}
	return nil
}
