package source

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/epitrack/disease-data-etl/internal/domain"
	"github.com/epitrack/disease-data-etl/internal/storage"
)

// NNDSS column names as published in the weekly export.
const (
	nndssColArea   = "Reporting Area"
	nndssColYear   = "Current MMWR Year"
	nndssColWeek   = "MMWR WEEK"
	nndssColLabel  = "Label"
	nndssColCount  = "Current week"
	nndssColRegion = "LOCATION2"
)

// NNDSS transforms the CDC's weekly surveillance CSV. The feed mixes
// state rows with pre-aggregated regional and national rollups; only
// state rows are kept, since a rollup computed from state rows would
// double-count against the published ones.
type NNDSS struct {
	uri    string
	fs     storage.Storage
	base   string
	logger *slog.Logger
}

// NewNNDSS creates an NNDSS transformer rooted at uri.
func NewNNDSS(uri string, logger *slog.Logger) (*NNDSS, error) {
	fs, base, err := storage.Resolve(uri)
	if err != nil {
		return nil, fmt.Errorf("nndss source: %w", err)
	}
	return &NNDSS{uri: uri, fs: fs, base: base, logger: logger}, nil
}

func (n *NNDSS) SourceName() string { return domain.SourceNNDSS }

// Transform loads the most recent weekly file and maps it to the canonical
// schema. A missing directory or zero matching files yields an empty,
// non-error result.
func (n *NNDSS) Transform(ctx context.Context) ([]domain.Record, Stats, error) {
	var stats Stats

	file, err := n.findLatestFile()
	if err != nil {
		return nil, stats, err
	}
	if file == "" {
		n.logger.Warn("no NNDSS CSV files found", "uri", n.uri)
		return nil, stats, nil
	}
	stats.FilesFound = 1

	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	f, err := n.fs.Open(file)
	if err != nil {
		return nil, stats, fmt.Errorf("open NNDSS file %s: %w", file, err)
	}
	defer f.Close()

	table, err := storage.ReadTable(f)
	if err != nil {
		return nil, stats, fmt.Errorf("parse NNDSS file %s: %w", file, err)
	}
	for _, col := range []string{nndssColArea, nndssColYear, nndssColWeek, nndssColLabel, nndssColCount} {
		if !table.HasColumn(col) {
			return nil, stats, fmt.Errorf("NNDSS file %s: missing required column %q", file, col)
		}
	}

	stats.FilesRead = 1
	stats.RowsIn = table.Len()
	n.logger.Info("loaded NNDSS file", "file", file, "rows", table.Len())

	records := make([]domain.Record, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		if rec, ok := n.mapRow(table, i, &stats); ok {
			records = append(records, rec)
		}
	}

	n.logger.Info("transformed NNDSS records",
		"kept", len(records),
		"dropped_non_state", stats.DroppedNonState,
		"dropped_no_count", stats.DroppedMissingCount,
		"dropped_no_period", stats.DroppedMissingPeriod)
	return records, stats, nil
}

// findLatestFile returns the lexicographically-last weekly export, whose
// filename embeds the publish date, or "" when none exist.
func (n *NNDSS) findLatestFile() (string, error) {
	exists, err := n.fs.Exists(n.base)
	if err != nil {
		return "", fmt.Errorf("check NNDSS directory: %w", err)
	}
	if !exists {
		return "", nil
	}

	files, err := n.fs.Glob(path.Join(n.base, "NNDSS_Weekly_Data_*.csv"))
	if err != nil {
		return "", fmt.Errorf("glob NNDSS files: %w", err)
	}
	if len(files) == 0 {
		return "", nil
	}
	return files[len(files)-1], nil
}

// mapRow converts one NNDSS row. Rows are dropped (counted, not logged)
// when the period or count is unusable, when the label is empty, and when
// the geography is a regional or national rollup.
func (n *NNDSS) mapRow(table *storage.Table, row int, stats *Stats) (domain.Record, bool) {
	var rec domain.Record

	area, _ := table.Value(row, nndssColArea)
	area = strings.TrimSpace(area)
	if area == "" {
		stats.DroppedMissingDisease++
		return rec, false
	}
	geoUnit := domain.ClassifyGeoUnit(area)

	start, end, ok := parseMMWRPeriod(table, row)
	if !ok {
		stats.DroppedMissingPeriod++
		return rec, false
	}

	count, ok := cleanNNDSSCount(cell(table, row, nndssColCount))
	if !ok {
		stats.DroppedMissingCount++
		return rec, false
	}

	label, _ := table.Value(row, nndssColLabel)
	base, subtype := domain.ParseNNDSSLabel(label)
	disease := domain.ResolveNNDSSDisease(base)
	if disease == "" {
		stats.DroppedMissingDisease++
		return rec, false
	}

	// Rollup rows get a jurisdiction too so the drop is the only thing
	// separating them from the stored shape, then the state-only filter
	// applies last.
	var state string
	switch geoUnit {
	case domain.GeoUnitNational:
		state = "US"
	case domain.GeoUnitRegion:
		state = cellOrDefault(table, row, nndssColRegion, area)
	default:
		state = domain.StateNameToCode(area)
	}

	if geoUnit != domain.GeoUnitState {
		stats.DroppedNonState++
		return rec, false
	}

	rec = domain.Record{
		ReportPeriodStart:     start,
		ReportPeriodEnd:       end,
		DateType:              "mmwr",
		TimeUnit:              "week",
		DiseaseName:           disease,
		OriginalDiseaseName:   strings.TrimSpace(label),
		DiseaseSubtype:        subtype,
		State:                 state,
		ReportingJurisdiction: state,
		GeoName:               area,
		GeoUnit:               geoUnit,
		Outcome:               "cases",
		Count:                 count,
	}
	return rec, true
}

func parseMMWRPeriod(table *storage.Table, row int) (start, end time.Time, ok bool) {
	year, okYear := parseIntCell(cell(table, row, nndssColYear))
	week, okWeek := parseIntCell(cell(table, row, nndssColWeek))
	if !okYear || !okWeek {
		return time.Time{}, time.Time{}, false
	}
	start = domain.MMWRWeekStart(year, week)
	if start.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	return start, domain.MMWRWeekEnd(year, week), true
}

func parseIntCell(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}

// cleanNNDSSCount strips every non-digit character from a raw count cell
// ("1,234" becomes 1234). Sentinels like "-" and "N" strip to nothing and
// report not-ok so the row is dropped.
func cleanNNDSSCount(raw string) (int64, bool) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
