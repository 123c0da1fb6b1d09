package domain

import (
	"fmt"
	"strings"
	"time"
)

// Data source tags stored in the data_source column.
const (
	SourceTracker = "tracker"
	SourceNNDSS   = "nndss"
)

// Record is one row of the canonical fact table: a case count for one
// disease in one jurisdiction over one reporting period, optionally
// stratified by subtype or age group. Records are produced in bulk by a
// transformer, validated by the pipeline, and inserted as an immutable
// batch; nothing mutates a record after load.
type Record struct {
	ReportPeriodStart time.Time `json:"report_period_start"`
	ReportPeriodEnd   time.Time `json:"report_period_end"`
	DateType          string    `json:"date_type"` // "cccd" or "mmwr"
	TimeUnit          string    `json:"time_unit"` // "week" or "month"

	DiseaseName         string  `json:"disease_name"`
	DiseaseSlug         string  `json:"disease_slug"`
	OriginalDiseaseName string  `json:"original_disease_name"` // unmodified source label, audit only
	DiseaseSubtype      *string `json:"disease_subtype,omitempty"`
	DiseaseSubtypeSlug  *string `json:"disease_subtype_slug,omitempty"`

	State                     string `json:"state"`
	StateSlug                 string `json:"state_slug"`
	ReportingJurisdiction     string `json:"reporting_jurisdiction"`
	ReportingJurisdictionSlug string `json:"reporting_jurisdiction_slug"`
	GeoName                   string `json:"geo_name"`
	GeoNameSlug               string `json:"geo_name_slug"`
	GeoUnit                   string `json:"geo_unit"`
	GeoUnitSlug               string `json:"geo_unit_slug"`

	AgeGroup           *string `json:"age_group,omitempty"`
	AgeGroupSlug       *string `json:"age_group_slug,omitempty"`
	ConfirmationStatus *string `json:"confirmation_status,omitempty"`

	Outcome    string `json:"outcome"` // what count measures, presently always "cases"
	Count      int64  `json:"count"`
	DataSource string `json:"data_source"`
}

// Columns is the canonical column order of the fact table. The store and
// every serialized output follow it exactly.
var Columns = []string{
	"report_period_start",
	"report_period_end",
	"date_type",
	"time_unit",
	"disease_name",
	"disease_slug",
	"original_disease_name",
	"disease_subtype",
	"disease_subtype_slug",
	"state",
	"state_slug",
	"reporting_jurisdiction",
	"reporting_jurisdiction_slug",
	"geo_name",
	"geo_name_slug",
	"geo_unit",
	"geo_unit_slug",
	"age_group",
	"age_group_slug",
	"confirmation_status",
	"outcome",
	"count",
	"data_source",
}

// SchemaError reports canonical-schema violations for one source's batch.
// It is fatal: a violation after a transformer claims success signals an
// implementation bug, not messy input data.
type SchemaError struct {
	Source     string
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema validation failed for %s: %s",
		e.Source, strings.Join(e.Violations, "; "))
}

// ValidateBatch checks every record against the canonical schema's
// nullability and range rules. Violations aggregate per rule with row
// counts rather than logging per row.
func ValidateBatch(source string, records []Record) error {
	nullCounts := map[string]int{}
	var badPeriods, negativeCounts int

	for i := range records {
		r := &records[i]
		for col, val := range map[string]string{
			"date_type":                   r.DateType,
			"time_unit":                   r.TimeUnit,
			"disease_name":                r.DiseaseName,
			"disease_slug":                r.DiseaseSlug,
			"original_disease_name":       r.OriginalDiseaseName,
			"state":                       r.State,
			"state_slug":                  r.StateSlug,
			"reporting_jurisdiction":      r.ReportingJurisdiction,
			"reporting_jurisdiction_slug": r.ReportingJurisdictionSlug,
			"geo_name":                    r.GeoName,
			"geo_name_slug":               r.GeoNameSlug,
			"geo_unit":                    r.GeoUnit,
			"geo_unit_slug":               r.GeoUnitSlug,
			"outcome":                     r.Outcome,
			"data_source":                 r.DataSource,
		} {
			if val == "" {
				nullCounts[col]++
			}
		}
		if r.ReportPeriodStart.IsZero() {
			nullCounts["report_period_start"]++
		}
		if r.ReportPeriodEnd.IsZero() {
			nullCounts["report_period_end"]++
		}
		if !r.ReportPeriodStart.IsZero() && !r.ReportPeriodEnd.IsZero() &&
			r.ReportPeriodEnd.Before(r.ReportPeriodStart) {
			badPeriods++
		}
		if r.Count < 0 {
			negativeCounts++
		}
	}

	var violations []string
	// Report columns in canonical order for stable error messages.
	for _, col := range Columns {
		if n := nullCounts[col]; n > 0 {
			violations = append(violations, fmt.Sprintf("column %q has %d null values", col, n))
		}
	}
	if badPeriods > 0 {
		violations = append(violations, fmt.Sprintf("%d rows have report_period_end before report_period_start", badPeriods))
	}
	if negativeCounts > 0 {
		violations = append(violations, fmt.Sprintf("%d rows have negative counts", negativeCounts))
	}

	if len(violations) > 0 {
		return &SchemaError{Source: source, Violations: violations}
	}
	return nil
}
