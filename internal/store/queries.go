package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/epitrack/disease-data-etl/internal/domain"
)

// Disease is one distinct disease present in the fact table, with the
// feeds it came from.
type Disease struct {
	Name    string   `json:"disease_name"`
	Slug    string   `json:"disease_slug"`
	Records int64    `json:"records"`
	Sources []string `json:"sources"`
}

// StateTotal is the cumulative count for one state. Fips carries the
// 2-digit FIPS code for choropleth rendering, empty for jurisdictions
// without one.
type StateTotal struct {
	State string `json:"state"`
	Fips  string `json:"fips,omitempty"`
	Total int64  `json:"total"`
}

// PeriodTotal is the nationwide count for one reporting period, summed
// across states.
type PeriodTotal struct {
	PeriodStart string `json:"report_period_start"`
	PeriodEnd   string `json:"report_period_end"`
	Total       int64  `json:"total"`
}

// SourceSummary is the per-feed slice of the loaded table.
type SourceSummary struct {
	Source string `json:"data_source"`
	Rows   int64  `json:"rows"`
	Cases  int64  `json:"cases"`
}

// Summary describes the overall shape of the loaded table.
type Summary struct {
	Rows           int64           `json:"rows"`
	Cases          int64           `json:"cases"`
	Diseases       int64           `json:"diseases"`
	States         int64           `json:"states"`
	EarliestPeriod string          `json:"earliest_period"`
	LatestPeriod   string          `json:"latest_period"`
	BySource       []SourceSummary `json:"by_source"`
}

// sourceClause appends an optional data_source predicate. source == ""
// means no filtering.
func sourceClause(conds []string, args []any, source string) ([]string, []any) {
	if source != "" {
		conds = append(conds, "data_source = ?")
		args = append(args, source)
	}
	return conds, args
}

func whereSQL(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// Diseases lists every distinct disease with its record count and
// contributing feeds, ordered by slug. source narrows to one feed.
func (s *Store) Diseases(ctx context.Context, source string) ([]Disease, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conds, args := sourceClause(nil, nil, source)
	rows, err := s.db.QueryContext(ctx, `
		SELECT disease_name, disease_slug, COUNT(*),
		       GROUP_CONCAT(DISTINCT data_source)
		FROM disease_data`+whereSQL(conds)+`
		GROUP BY disease_name, disease_slug
		ORDER BY disease_slug`, args...)
	if err != nil {
		return nil, fmt.Errorf("query diseases: %w", err)
	}
	defer rows.Close()

	var out []Disease
	for rows.Next() {
		var d Disease
		var sources string
		if err := rows.Scan(&d.Name, &d.Slug, &d.Records, &sources); err != nil {
			return nil, fmt.Errorf("scan disease: %w", err)
		}
		d.Sources = strings.Split(sources, ",")
		out = append(out, d)
	}
	return out, rows.Err()
}

// States lists every distinct state code present, ordered alphabetically.
func (s *Store) States(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT state FROM disease_data ORDER BY state`)
	if err != nil {
		return nil, fmt.Errorf("query states: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var state string
		if err := rows.Scan(&state); err != nil {
			return nil, fmt.Errorf("scan state: %w", err)
		}
		out = append(out, state)
	}
	return out, rows.Err()
}

// DiseaseTotals sums counts per state for one disease slug, largest
// first. source narrows to one feed.
func (s *Store) DiseaseTotals(ctx context.Context, diseaseSlug, source string) ([]StateTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conds, args := sourceClause([]string{"disease_slug = ?"}, []any{diseaseSlug}, source)
	rows, err := s.db.QueryContext(ctx, `
		SELECT state, SUM(count)
		FROM disease_data`+whereSQL(conds)+`
		GROUP BY state
		ORDER BY SUM(count) DESC, state`, args...)
	if err != nil {
		return nil, fmt.Errorf("query disease totals: %w", err)
	}
	defer rows.Close()

	var out []StateTotal
	for rows.Next() {
		var t StateTotal
		if err := rows.Scan(&t.State, &t.Total); err != nil {
			return nil, fmt.Errorf("scan state total: %w", err)
		}
		t.Fips, _ = domain.StateToFIPS(t.State)
		out = append(out, t)
	}
	return out, rows.Err()
}

// NationalTimeseries sums counts across all states per reporting period
// for one disease slug, chronologically. source narrows to one feed.
func (s *Store) NationalTimeseries(ctx context.Context, diseaseSlug, source string) ([]PeriodTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conds, args := sourceClause([]string{"disease_slug = ?"}, []any{diseaseSlug}, source)
	rows, err := s.db.QueryContext(ctx, `
		SELECT report_period_start, report_period_end, SUM(count)
		FROM disease_data`+whereSQL(conds)+`
		GROUP BY report_period_start, report_period_end
		ORDER BY report_period_start`, args...)
	if err != nil {
		return nil, fmt.Errorf("query national timeseries: %w", err)
	}
	defer rows.Close()

	var out []PeriodTotal
	for rows.Next() {
		var t PeriodTotal
		if err := rows.Scan(&t.PeriodStart, &t.PeriodEnd, &t.Total); err != nil {
			return nil, fmt.Errorf("scan period total: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SummaryStats reports table-wide cardinalities, the period range, and
// the per-feed breakdown.
func (s *Store) SummaryStats(ctx context.Context) (Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum Summary
	var cases sql.NullInt64
	var earliest, latest sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       SUM(count),
		       COUNT(DISTINCT disease_slug),
		       COUNT(DISTINCT state),
		       MIN(report_period_start),
		       MAX(report_period_end)
		FROM disease_data`).
		Scan(&sum.Rows, &cases, &sum.Diseases, &sum.States, &earliest, &latest)
	if err != nil {
		return Summary{}, fmt.Errorf("query summary: %w", err)
	}
	sum.Cases = cases.Int64
	sum.EarliestPeriod = earliest.String
	sum.LatestPeriod = latest.String

	rows, err := s.db.QueryContext(ctx, `
		SELECT data_source, COUNT(*), SUM(count)
		FROM disease_data
		GROUP BY data_source
		ORDER BY data_source`)
	if err != nil {
		return Summary{}, fmt.Errorf("query summary by source: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var src SourceSummary
		if err := rows.Scan(&src.Source, &src.Rows, &src.Cases); err != nil {
			return Summary{}, fmt.Errorf("scan source summary: %w", err)
		}
		sum.BySource = append(sum.BySource, src)
	}
	return sum, rows.Err()
}

// Rows returns the current fact table row count, or zero when no load
// has created the table yet.
func (s *Store) Rows(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'disease_data'`).
		Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("check fact table: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}

	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM disease_data`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return n, nil
}
