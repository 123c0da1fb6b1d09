// Package store persists the canonical fact table in SQLite and serves
// the canned aggregate queries over it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/epitrack/disease-data-etl/internal/domain"
)

const dateLayout = "2006-01-02"

// factTableDDL defines the canonical schema. Dates are stored as ISO
// strings so lexicographic ordering matches chronological ordering.
const factTableDDL = `
CREATE TABLE disease_data (
	report_period_start         TEXT NOT NULL,
	report_period_end           TEXT NOT NULL,
	date_type                   TEXT NOT NULL,
	time_unit                   TEXT NOT NULL,
	disease_name                TEXT NOT NULL,
	disease_slug                TEXT NOT NULL,
	original_disease_name       TEXT NOT NULL,
	disease_subtype             TEXT,
	disease_subtype_slug        TEXT,
	state                       TEXT NOT NULL,
	state_slug                  TEXT NOT NULL,
	reporting_jurisdiction      TEXT NOT NULL,
	reporting_jurisdiction_slug TEXT NOT NULL,
	geo_name                    TEXT NOT NULL,
	geo_name_slug               TEXT NOT NULL,
	geo_unit                    TEXT NOT NULL,
	geo_unit_slug               TEXT NOT NULL,
	age_group                   TEXT,
	age_group_slug              TEXT,
	confirmation_status         TEXT,
	outcome                     TEXT NOT NULL,
	count                       INTEGER NOT NULL,
	data_source                 TEXT NOT NULL
)`

var factTableIndexes = []string{
	`CREATE INDEX idx_disease_data_disease_slug ON disease_data (disease_slug)`,
	`CREATE INDEX idx_disease_data_state ON disease_data (state)`,
	`CREATE INDEX idx_disease_data_period_start ON disease_data (report_period_start)`,
}

// Store wraps the SQLite database holding the fact table. Loads rebuild
// the table wholesale inside a transaction; the RWMutex keeps readers
// off the connection while a rebuild is in flight.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	logger *slog.Logger
}

// Open opens (creating if needed) the SQLite database at path. Use
// ":memory:" for an ephemeral store in tests.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}
	// SQLite serializes writers; a second connection would only add
	// lock contention during rebuilds.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database %s: %w", path, err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is usable.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db.PingContext(ctx)
}

// ReplaceAll rebuilds the fact table from the batch in one transaction:
// drop, create, insert, index. Readers see either the previous table or
// the new one, never a partial load.
func (s *Store) ReplaceAll(ctx context.Context, records []domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS disease_data`); err != nil {
		return fmt.Errorf("drop fact table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, factTableDDL); err != nil {
		return fmt.Errorf("create fact table: %w", err)
	}

	if err := insertBatch(ctx, tx, records); err != nil {
		return err
	}

	for _, ddl := range factTableIndexes {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rebuild: %w", err)
	}
	s.logger.Info("fact table rebuilt", "rows", len(records))
	return nil
}

func insertBatch(ctx context.Context, tx *sql.Tx, records []domain.Record) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(domain.Columns)), ",")
	query := fmt.Sprintf("INSERT INTO disease_data (%s) VALUES (%s)",
		strings.Join(domain.Columns, ", "), placeholders)

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		r := &records[i]
		_, err := stmt.ExecContext(ctx,
			r.ReportPeriodStart.Format(dateLayout),
			r.ReportPeriodEnd.Format(dateLayout),
			r.DateType,
			r.TimeUnit,
			r.DiseaseName,
			r.DiseaseSlug,
			r.OriginalDiseaseName,
			r.DiseaseSubtype,
			r.DiseaseSubtypeSlug,
			r.State,
			r.StateSlug,
			r.ReportingJurisdiction,
			r.ReportingJurisdictionSlug,
			r.GeoName,
			r.GeoNameSlug,
			r.GeoUnit,
			r.GeoUnitSlug,
			r.AgeGroup,
			r.AgeGroupSlug,
			r.ConfirmationStatus,
			r.Outcome,
			r.Count,
			r.DataSource,
		)
		if err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return nil
}
