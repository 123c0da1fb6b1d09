// Package pipeline orchestrates the load cycle: run each configured
// source transformer, finalize its batch into the canonical schema, and
// rebuild the store from the combined result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/epitrack/disease-data-etl/internal/domain"
	"github.com/epitrack/disease-data-etl/internal/observability"
	"github.com/epitrack/disease-data-etl/internal/source"
)

// Store atomically replaces the fact table with a finalized batch.
type Store interface {
	ReplaceAll(ctx context.Context, records []domain.Record) error
}

// Pipeline runs the configured transformers in order and rebuilds the
// store from their combined output. The whole cycle is all-or-nothing: a
// failed source aborts the load and leaves the previous table intact.
type Pipeline struct {
	transformers []source.Transformer
	store        Store
	logger       *slog.Logger
	metrics      *observability.Metrics
	ready        atomic.Bool
}

// New creates a Pipeline over the given transformers, store, and observability.
func New(transformers []source.Transformer, store Store, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		transformers: transformers,
		store:        store,
		logger:       logger,
		metrics:      metrics,
	}
}

// CheckReadiness returns nil once at least one full load has completed,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no load cycle has completed yet")
	}
	return nil
}

// Run executes one complete load cycle. Sources run sequentially in
// configured order; an empty source is a warning, a failed transform or
// schema violation is fatal.
func (p *Pipeline) Run(ctx context.Context) error {
	p.metrics.LoadRunning.Set(1)
	defer p.metrics.LoadRunning.Set(0)

	cycleStart := time.Now()
	var batch []domain.Record

	for _, t := range p.transformers {
		records, err := p.loadSource(ctx, t)
		if err != nil {
			p.metrics.LoadErrors.WithLabelValues(t.SourceName()).Inc()
			return fmt.Errorf("load source %s: %w", t.SourceName(), err)
		}
		batch = append(batch, records...)
	}

	if err := p.store.ReplaceAll(ctx, batch); err != nil {
		return fmt.Errorf("rebuild store: %w", err)
	}

	p.metrics.StoreRows.Set(float64(len(batch)))
	p.metrics.LastLoadTime.Set(float64(domain.Now().Unix()))
	p.ready.Store(true)

	p.logger.Info("load cycle complete",
		"sources", len(p.transformers),
		"rows", len(batch),
		"duration", time.Since(cycleStart).Round(time.Millisecond))
	return nil
}

// loadSource runs one transformer and finalizes its batch.
func (p *Pipeline) loadSource(ctx context.Context, t source.Transformer) ([]domain.Record, error) {
	name := t.SourceName()
	start := time.Now()

	records, stats, err := t.Transform(ctx)
	if err != nil {
		return nil, err
	}
	p.recordStats(name, stats)

	if len(records) == 0 {
		p.logger.Warn("source produced no records", "source", name)
		return nil, nil
	}

	if err := Finalize(name, records); err != nil {
		return nil, err
	}

	p.metrics.RowsTransformed.WithLabelValues(name).Add(float64(len(records)))
	p.metrics.LoadDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	p.logger.Info("source loaded",
		"source", name,
		"rows", len(records),
		"dropped", stats.Dropped(),
		"files_read", stats.FilesRead)
	return records, nil
}

func (p *Pipeline) recordStats(name string, stats source.Stats) {
	p.metrics.FilesRead.WithLabelValues(name).Add(float64(stats.FilesRead))
	p.metrics.FilesSkipped.WithLabelValues(name).Add(float64(stats.FilesSkipped))

	for reason, n := range map[string]int{
		"missing_count":   stats.DroppedMissingCount,
		"missing_period":  stats.DroppedMissingPeriod,
		"missing_disease": stats.DroppedMissingDisease,
		"non_state":       stats.DroppedNonState,
	} {
		if n > 0 {
			p.metrics.RowsDropped.WithLabelValues(name, reason).Add(float64(n))
		}
	}
}

// Finalize applies the cross-source post-processing every batch receives
// regardless of origin: disease aliasing, slug derivation for every
// dimension, source tagging, and schema validation. Transformers never
// set slug columns themselves; deriving them in one place keeps the
// slugging rules identical across sources.
func Finalize(sourceName string, records []domain.Record) error {
	for i := range records {
		r := &records[i]
		r.DiseaseName = domain.ApplyDiseaseAlias(r.DiseaseName)
		r.DiseaseSlug = domain.Slugify(r.DiseaseName)
		r.DiseaseSubtypeSlug = domain.SlugifyPtr(r.DiseaseSubtype)
		r.StateSlug = domain.Slugify(r.State)
		r.ReportingJurisdictionSlug = domain.Slugify(r.ReportingJurisdiction)
		r.GeoNameSlug = domain.Slugify(r.GeoName)
		r.GeoUnitSlug = domain.Slugify(r.GeoUnit)
		r.AgeGroupSlug = domain.SlugifyPtr(r.AgeGroup)
		r.DataSource = sourceName
	}
	return domain.ValidateBatch(sourceName, records)
}
