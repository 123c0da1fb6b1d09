package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the ETL service.
type Metrics struct {
	RowsTransformed *prometheus.CounterVec // labels: source={tracker,nndss}
	RowsDropped     *prometheus.CounterVec // labels: source, reason={missing_count,missing_period,missing_disease,non_state}
	FilesRead       *prometheus.CounterVec // labels: source
	FilesSkipped    *prometheus.CounterVec // labels: source
	LoadErrors      *prometheus.CounterVec // labels: source

	LoadDuration *prometheus.HistogramVec // labels: source
	LoadRunning  prometheus.Gauge
	StoreRows    prometheus.Gauge
	LastLoadTime prometheus.Gauge

	// Query serving metrics.
	QueryRequests *prometheus.CounterVec   // labels: endpoint, outcome={success,error}
	QueryDuration *prometheus.HistogramVec // labels: endpoint
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsTransformed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disease_etl",
			Name:      "rows_transformed_total",
			Help:      "Canonical rows produced per source.",
		}, []string{"source"}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disease_etl",
			Name:      "rows_dropped_total",
			Help:      "Source rows excluded from a batch, by drop reason.",
		}, []string{"source", "reason"}),
		FilesRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disease_etl",
			Name:      "files_read_total",
			Help:      "Source files read successfully.",
		}, []string{"source"}),
		FilesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disease_etl",
			Name:      "files_skipped_total",
			Help:      "Source files skipped due to read or parse errors.",
		}, []string{"source"}),
		LoadErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disease_etl",
			Name:      "load_errors_total",
			Help:      "Failed source loads.",
		}, []string{"source"}),
		LoadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "disease_etl",
			Name:      "load_duration_seconds",
			Help:      "Duration of a complete per-source transform-validate-load cycle.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"source"}),
		LoadRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "disease_etl",
			Name:      "load_running",
			Help:      "1 while a load cycle is active, 0 otherwise.",
		}),
		StoreRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "disease_etl",
			Name:      "store_rows",
			Help:      "Rows currently in the canonical fact table.",
		}),
		LastLoadTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "disease_etl",
			Name:      "last_load_timestamp_seconds",
			Help:      "Unix time of the last successful full load.",
		}),
		QueryRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disease_etl",
			Name:      "query_requests_total",
			Help:      "Aggregate query requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "disease_etl",
			Name:      "query_duration_seconds",
			Help:      "Aggregate query duration in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"endpoint"}),
	}

	prometheus.MustRegister(
		m.RowsTransformed,
		m.RowsDropped,
		m.FilesRead,
		m.FilesSkipped,
		m.LoadErrors,
		m.LoadDuration,
		m.LoadRunning,
		m.StoreRows,
		m.LastLoadTime,
		m.QueryRequests,
		m.QueryDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsTransformed: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disease_etl", Name: "rows_transformed_total"}, []string{"source"}),
		RowsDropped:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disease_etl", Name: "rows_dropped_total"}, []string{"source", "reason"}),
		FilesRead:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disease_etl", Name: "files_read_total"}, []string{"source"}),
		FilesSkipped:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disease_etl", Name: "files_skipped_total"}, []string{"source"}),
		LoadErrors:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disease_etl", Name: "load_errors_total"}, []string{"source"}),
		LoadDuration:    prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "disease_etl", Name: "load_duration_seconds"}, []string{"source"}),
		LoadRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "disease_etl", Name: "load_running"}),
		StoreRows:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "disease_etl", Name: "store_rows"}),
		LastLoadTime:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "disease_etl", Name: "last_load_timestamp_seconds"}),
		QueryRequests:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disease_etl", Name: "query_requests_total"}, []string{"endpoint", "outcome"}),
		QueryDuration:   prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "disease_etl", Name: "query_duration_seconds"}, []string{"endpoint"}),
	}
}
