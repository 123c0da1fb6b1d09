// Package source implements the per-feed transformers that turn raw
// tracker and NNDSS CSV files into canonical records, plus the registry
// the loader uses to resolve transformers by name.
package source

import (
	"context"

	"github.com/epitrack/disease-data-etl/internal/domain"
)

// Transformer converts one source's raw files into canonical records.
// Implementations own file discovery, column extraction, and type
// coercion; tagging, slug generation, and schema validation are the
// pipeline's job.
type Transformer interface {
	// SourceName returns the data_source tag ("tracker" or "nndss").
	SourceName() string

	// Transform reads the source and returns its canonical records along
	// with drop statistics. An empty result is not an error: it means the
	// source currently has no usable data. Per-row problems (unparseable
	// counts or periods) are counted in Stats, never returned as errors.
	Transform(ctx context.Context) ([]domain.Record, Stats, error)
}

// Stats aggregates per-batch observability counters. Per-row drops are
// deliberately not logged individually; at feed scale that would drown the
// logs, so transformers expose totals instead.
type Stats struct {
	FilesFound   int
	FilesRead    int
	FilesSkipped int
	RowsIn       int

	DroppedMissingCount   int
	DroppedMissingPeriod  int
	DroppedMissingDisease int
	DroppedNonState       int
}

// Dropped returns the total rows excluded from the batch.
func (s Stats) Dropped() int {
	return s.DroppedMissingCount + s.DroppedMissingPeriod +
		s.DroppedMissingDisease + s.DroppedNonState
}
