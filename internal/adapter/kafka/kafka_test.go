package kafka

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epitrack/disease-data-etl/internal/config"
	"github.com/epitrack/disease-data-etl/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestSerializeToMessage(t *testing.T) {
	subtype := "B"
	record := domain.Record{
		ReportPeriodStart: time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC),
		ReportPeriodEnd:   time.Date(2022, 1, 8, 0, 0, 0, 0, time.UTC),
		DateType:          "mmwr",
		TimeUnit:          "week",
		DiseaseName:       "meningococcus",
		DiseaseSlug:       "meningococcus",
		DiseaseSubtype:    &subtype,
		State:             "CA",
		Count:             3,
		DataSource:        domain.SourceNNDSS,
	}

	msg, err := serializeToMessage(record, "2022-01-09T00:00:00Z")
	require.NoError(t, err)

	assert.Equal(t, []byte("meningococcus"), msg.Key)
	assert.Contains(t, string(msg.Value), `"disease_slug":"meningococcus"`)
	assert.Contains(t, string(msg.Value), `"disease_subtype":"B"`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "data_source", msg.Headers[0].Key)
	assert.Equal(t, []byte("nndss"), msg.Headers[0].Value)
	assert.Equal(t, "loaded_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2022-01-09T00:00:00Z"), msg.Headers[1].Value)
}

func TestSerializeOmitsNullableFields(t *testing.T) {
	record := domain.Record{DiseaseSlug: "pertussis", DataSource: domain.SourceTracker}

	msg, err := serializeToMessage(record, "2022-01-09T00:00:00Z")
	require.NoError(t, err)
	assert.NotContains(t, string(msg.Value), "disease_subtype")
	assert.NotContains(t, string(msg.Value), "age_group")
}

func TestNewPublisherConfiguresWriter(t *testing.T) {
	cfg := &config.Config{
		KafkaBrokers:   []string{"broker1:9092", "broker2:9092"},
		KafkaSinkTopic: "canonical-disease-data",
	}

	p := NewPublisher(cfg, testLogger())
	defer p.Close()

	assert.Equal(t, "canonical-disease-data", p.writer.Topic)
	assert.Equal(t, "broker1:9092,broker2:9092", p.writer.Addr.String())
}
