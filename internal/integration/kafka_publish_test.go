//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaadapter "github.com/epitrack/disease-data-etl/internal/adapter/kafka"
	"github.com/epitrack/disease-data-etl/internal/config"
	"github.com/epitrack/disease-data-etl/internal/domain"
	"github.com/epitrack/disease-data-etl/internal/pipeline"
)

const testSinkTopic = "canonical-disease-data-test"

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// startKafka launches a single-broker Kafka container and returns its
// bootstrap address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("disease-etl-test"),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkago.Dial("tcp",
		net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestPublishCanonicalBatch verifies that a finalized batch round-trips
// through Kafka with its payload and headers intact.
func TestPublishCanonicalBatch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:   []string{broker},
		KafkaSinkTopic: testSinkTopic,
	}

	subtype := "B"
	records := []domain.Record{
		{
			ReportPeriodStart:     time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC),
			ReportPeriodEnd:       time.Date(2022, 1, 8, 0, 0, 0, 0, time.UTC),
			DateType:              "mmwr",
			TimeUnit:              "week",
			DiseaseName:           "meningococcus",
			OriginalDiseaseName:   "Meningococcal disease, Serogroup B",
			DiseaseSubtype:        &subtype,
			State:                 "CA",
			ReportingJurisdiction: "CA",
			GeoName:               "CALIFORNIA",
			GeoUnit:               "state",
			Outcome:               "cases",
			Count:                 3,
		},
	}
	require.NoError(t, pipeline.Finalize(domain.SourceNNDSS, records))

	publisher := kafkaadapter.NewPublisher(cfg, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	require.NoError(t, publisher.PublishBatch(ctx, records))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		Topic:   testSinkTopic,
		GroupID: "integration-consumer",
	})
	t.Cleanup(func() { _ = consumer.Close() })

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	assert.Equal(t, "meningococcus", string(msg.Key))

	var got domain.Record
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "meningococcus", got.DiseaseSlug)
	assert.Equal(t, "CA", got.State)
	assert.Equal(t, domain.SourceNNDSS, got.DataSource)
	require.NotNil(t, got.DiseaseSubtypeSlug)
	assert.Equal(t, "b", *got.DiseaseSubtypeSlug)

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "nndss", headers["data_source"])
	assert.NotEmpty(t, headers["loaded_at"])
}
