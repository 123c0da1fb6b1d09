package source

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/epitrack/disease-data-etl/internal/domain"
	"github.com/epitrack/disease-data-etl/internal/storage"
)

// trackerDateLayouts are the period formats tracker uploads have been seen
// to use. Tried in order.
var trackerDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// Tracker transforms the state-submitted disease tracker CSV tree.
//
// Files live under <root>/data/states/<STATE>/ with sortable
// YYYYMMDD-HHMMSS filename prefixes; only the lexicographically-latest
// filename per state directory is authoritative. The tie-break is the raw
// filename string, not the parsed timestamp, so non-timestamp suffixes act
// as a secondary deterministic tiebreak.
type Tracker struct {
	uri    string
	fs     storage.Storage
	base   string
	logger *slog.Logger
}

// NewTracker creates a tracker transformer rooted at uri.
func NewTracker(uri string, logger *slog.Logger) (*Tracker, error) {
	fs, base, err := storage.Resolve(uri)
	if err != nil {
		return nil, fmt.Errorf("tracker source: %w", err)
	}
	return &Tracker{uri: uri, fs: fs, base: base, logger: logger}, nil
}

func (t *Tracker) SourceName() string { return domain.SourceTracker }

// Transform loads the latest CSV per state and maps it to the canonical
// schema. A single unreadable or malformed file is logged and skipped; the
// batch continues. Zero usable files yields an empty, non-error result.
func (t *Tracker) Transform(ctx context.Context) ([]domain.Record, Stats, error) {
	var stats Stats

	dataPath := path.Join(t.base, "data", "states")
	exists, err := t.fs.Exists(dataPath)
	if err != nil {
		return nil, stats, fmt.Errorf("check tracker data directory: %w", err)
	}
	if !exists {
		t.logger.Warn("tracker data directory not found", "path", dataPath)
		return nil, stats, nil
	}

	allFiles, err := t.fs.Glob(path.Join(dataPath, "*", "*.csv"))
	if err != nil {
		return nil, stats, fmt.Errorf("glob tracker files: %w", err)
	}
	stats.FilesFound = len(allFiles)
	if len(allFiles) == 0 {
		t.logger.Warn("no tracker CSV files found", "path", dataPath)
		return nil, stats, nil
	}

	files := latestPerState(allFiles)
	t.logger.Info("selected latest tracker file per state",
		"total_files", len(allFiles), "selected", len(files))

	var records []domain.Record
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		recs, n, err := t.loadFile(file, &stats)
		if err != nil {
			t.logger.Error("skipping tracker file", "file", file, "error", err)
			stats.FilesSkipped++
			continue
		}
		stats.FilesRead++
		stats.RowsIn += n
		records = append(records, recs...)
	}

	if stats.FilesRead == 0 {
		t.logger.Warn("no tracker files loaded successfully")
		return nil, stats, nil
	}
	return records, stats, nil
}

// latestPerState groups files by their parent directory (the state) and
// keeps the lexicographically-greatest filename per group. Results come
// back sorted by state for deterministic batch order.
func latestPerState(files []string) []string {
	latest := map[string]string{}
	for _, file := range files {
		state := path.Base(path.Dir(file))
		name := path.Base(file)
		if current, ok := latest[state]; !ok || name > path.Base(current) {
			latest[state] = file
		}
	}

	states := make([]string, 0, len(latest))
	for state := range latest {
		states = append(states, state)
	}
	sort.Strings(states)

	selected := make([]string, 0, len(states))
	for _, state := range states {
		selected = append(selected, latest[state])
	}
	return selected
}

func (t *Tracker) loadFile(file string, stats *Stats) ([]domain.Record, int, error) {
	f, err := t.fs.Open(file)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	table, err := storage.ReadTable(f)
	if err != nil {
		return nil, 0, err
	}

	for _, col := range []string{"report_period_start", "report_period_end", "disease_name", "count"} {
		if !table.HasColumn(col) {
			return nil, 0, fmt.Errorf("missing required column %q", col)
		}
	}
	if !table.HasColumn("state") && !table.HasColumn("reporting_jurisdiction") {
		return nil, 0, fmt.Errorf("missing both state and reporting_jurisdiction columns")
	}

	records := make([]domain.Record, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		if rec, ok := t.mapRow(table, i, stats); ok {
			records = append(records, rec)
		}
	}
	return records, table.Len(), nil
}

// mapRow converts one CSV row, applying defaults for absent columns and
// dropping rows whose period, disease, or count cannot be used.
func (t *Tracker) mapRow(table *storage.Table, row int, stats *Stats) (domain.Record, bool) {
	var rec domain.Record

	start, okStart := parseTrackerDate(cell(table, row, "report_period_start"))
	end, okEnd := parseTrackerDate(cell(table, row, "report_period_end"))
	if !okStart || !okEnd {
		stats.DroppedMissingPeriod++
		return rec, false
	}

	disease := strings.TrimSpace(cell(table, row, "disease_name"))
	if disease == "" {
		stats.DroppedMissingDisease++
		return rec, false
	}

	count, ok := parseTrackerCount(cell(table, row, "count"))
	if !ok {
		stats.DroppedMissingCount++
		return rec, false
	}

	// Synthesize whichever of the state/jurisdiction pair is absent.
	state := strings.TrimSpace(cell(table, row, "state"))
	jurisdiction := strings.TrimSpace(cell(table, row, "reporting_jurisdiction"))
	if state == "" {
		state = jurisdiction
	}
	if jurisdiction == "" {
		jurisdiction = state
	}

	rec = domain.Record{
		ReportPeriodStart:     start,
		ReportPeriodEnd:       end,
		DateType:              cellOrDefault(table, row, "date_type", "cccd"),
		TimeUnit:              cellOrDefault(table, row, "time_unit", "month"),
		DiseaseName:           disease,
		OriginalDiseaseName:   disease,
		DiseaseSubtype:        domain.NormalizeTrackerSubtype(cell(table, row, "disease_subtype")),
		State:                 state,
		ReportingJurisdiction: jurisdiction,
		GeoName:               cellOrDefault(table, row, "geo_name", state),
		GeoUnit:               cellOrDefault(table, row, "geo_unit", domain.GeoUnitState),
		AgeGroup:              domain.CleanNullable(cell(table, row, "age_group")),
		ConfirmationStatus:    domain.CleanNullable(cell(table, row, "confirmation_status")),
		Outcome:               cellOrDefault(table, row, "outcome", "cases"),
		Count:                 count,
	}
	return rec, true
}

func parseTrackerDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range trackerDateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC().Truncate(24 * time.Hour), true
		}
	}
	return time.Time{}, false
}

func parseTrackerCount(value string) (int64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// cell returns the raw cell value, or "" when absent/null.
func cell(table *storage.Table, row int, column string) string {
	v, _ := table.Value(row, column)
	return v
}

// cellOrDefault returns the cell value or the stated default when the
// column is absent or the cell is null.
func cellOrDefault(table *storage.Table, row int, column, def string) string {
	if v, ok := table.Value(row, column); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}
