// Package kafka publishes loaded canonical batches to a sink topic for
// downstream consumers. Publishing is optional and enabled by
// configuration; the ETL itself never depends on Kafka being reachable.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/epitrack/disease-data-etl/internal/config"
	"github.com/epitrack/disease-data-etl/internal/domain"
)

// Publisher produces canonical records to a Kafka topic.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured sink topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishBatch serializes and publishes a batch of canonical records in a
// single WriteMessages call.
func (p *Publisher) PublishBatch(ctx context.Context, records []domain.Record) error {
	if len(records) == 0 {
		return nil
	}
	loadedAt := domain.Now().Format(time.RFC3339)

	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(records[i], loadedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish batch: %w", err)
	}
	p.logger.Info("published canonical batch", "records", len(records))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a record into a Kafka message keyed by
// disease slug so one disease's rows stay on one partition.
func serializeToMessage(record domain.Record, loadedAt string) (kafkago.Message, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize record: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(record.DiseaseSlug),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "data_source", Value: []byte(record.DataSource)},
			{Key: "loaded_at", Value: []byte(loadedAt)},
		},
	}, nil
}
