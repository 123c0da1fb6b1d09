package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "disease_data.db", cfg.DatabasePath)
	assert.Equal(t, []Source{
		{Name: "tracker", URI: "./tracker"},
		{Name: "nndss", URI: "./nndss"},
	}, cfg.Sources)
	assert.False(t, cfg.KafkaEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "canonical-disease-data", cfg.KafkaSinkTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("DATABASE_PATH", "/var/lib/etl/facts.db")
	t.Setenv("TRACKER_DATA_URI", "/srv/tracker")
	t.Setenv("NNDSS_DATA_URI", "/srv/nndss")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/var/lib/etl/facts.db", cfg.DatabasePath)
	assert.Equal(t, "/srv/tracker", cfg.Sources[0].URI)
	assert.Equal(t, "/srv/nndss", cfg.Sources[1].URI)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
}

func TestLoad_SourcesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sources:
  - name: nndss
    uri: /srv/nndss
  - name: tracker
    uri: /srv/tracker
`), 0o644))
	t.Setenv("SOURCES_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	require.Len(t, cfg.Sources, 2)
	assert.Equal(t, Source{Name: "nndss", URI: "/srv/nndss"}, cfg.Sources[0], "file order is load order")
	assert.Equal(t, Source{Name: "tracker", URI: "/srv/tracker"}, cfg.Sources[1])
}

func TestLoad_SourcesFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv("SOURCES_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("empty source list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sources.yaml")
		require.NoError(t, os.WriteFile(path, []byte("sources: []\n"), 0o644))
		t.Setenv("SOURCES_FILE", path)
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("entry missing uri", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sources.yaml")
		require.NoError(t, os.WriteFile(path, []byte("sources:\n  - name: tracker\n"), 0o644))
		t.Setenv("SOURCES_FILE", path)
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_KafkaDisabledOverride(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092")
	t.Setenv("KAFKA_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}
