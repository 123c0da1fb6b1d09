// Package config loads service settings from environment variables,
// with an optional YAML file for the source list.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Source names one data feed and where its raw files live.
type Source struct {
	Name string `yaml:"name"`
	URI  string `yaml:"uri"`
}

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	DatabasePath string

	// Sources run in listed order; defaults to tracker then NNDSS from
	// TRACKER_DATA_URI and NNDSS_DATA_URI, overridable wholesale via a
	// SOURCES_FILE YAML document.
	Sources []Source

	// Kafka publishing of loaded batches, enabled when brokers are set.
	KafkaBrokers   []string
	KafkaSinkTopic string
	KafkaEnabled   bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	sources, err := loadSources()
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		DatabasePath:    envOrDefault("DATABASE_PATH", "disease_data.db"),
		Sources:         sources,
		KafkaBrokers:    brokers,
		KafkaSinkTopic:  envOrDefault("KAFKA_SINK_TOPIC", "canonical-disease-data"),
		KafkaEnabled:    kafkaEnabled,
	}

	if len(cfg.Sources) == 0 {
		return nil, errors.New("no data sources configured")
	}
	for _, s := range cfg.Sources {
		if s.Name == "" || s.URI == "" {
			return nil, fmt.Errorf("source entry missing name or uri: %+v", s)
		}
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

// loadSources builds the source list from SOURCES_FILE when set, else
// from the per-source URI variables.
func loadSources() ([]Source, error) {
	if path := os.Getenv("SOURCES_FILE"); path != "" {
		return readSourcesFile(path)
	}
	return []Source{
		{Name: "tracker", URI: envOrDefault("TRACKER_DATA_URI", "./tracker")},
		{Name: "nndss", URI: envOrDefault("NNDSS_DATA_URI", "./nndss")},
	}, nil
}

func readSourcesFile(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	var doc struct {
		Sources []Source `yaml:"sources"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse sources file %s: %w", path, err)
	}
	if len(doc.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s lists no sources", path)
	}
	return doc.Sources, nil
}

func parseShutdownTimeout() (time.Duration, error) {
	s := envOrDefault("SHUTDOWN_TIMEOUT", "10s")
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	return d, nil
}

func parseBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
