// Package http exposes the query API plus health, readiness, and
// metrics endpoints over the loaded fact table.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/epitrack/disease-data-etl/internal/observability"
	"github.com/epitrack/disease-data-etl/internal/store"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Queries is the read surface of the store the API serves. An empty
// source means no feed filtering.
type Queries interface {
	Diseases(ctx context.Context, source string) ([]store.Disease, error)
	States(ctx context.Context) ([]string, error)
	DiseaseTotals(ctx context.Context, diseaseSlug, source string) ([]store.StateTotal, error)
	NationalTimeseries(ctx context.Context, diseaseSlug, source string) ([]store.PeriodTotal, error)
	SummaryStats(ctx context.Context) (store.Summary, error)
}

// Server exposes the aggregate query API and operational endpoints.
type Server struct {
	httpServer *http.Server
	queries    Queries
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with query routes under /api/v1 plus
// /healthz, /readyz, and /metrics.
func NewServer(addr string, queries Queries, ready ReadinessChecker, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		queries: queries,
		logger:  logger,
		metrics: metrics,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/diseases", s.handleDiseases)
	mux.HandleFunc("GET /api/v1/states", s.handleStates)
	mux.HandleFunc("GET /api/v1/summary", s.handleSummary)
	mux.HandleFunc("GET /api/v1/diseases/{slug}/totals", s.handleDiseaseTotals)
	mux.HandleFunc("GET /api/v1/diseases/{slug}/timeseries", s.handleTimeseries)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleDiseases(w http.ResponseWriter, r *http.Request) {
	src := r.URL.Query().Get("source")
	serveQuery(s, w, r, "diseases", func(ctx context.Context) (any, error) {
		diseases, err := s.queries.Diseases(ctx, src)
		return map[string]any{"diseases": diseases}, err
	})
}

func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	serveQuery(s, w, r, "states", func(ctx context.Context) (any, error) {
		states, err := s.queries.States(ctx)
		return map[string]any{"states": states}, err
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	serveQuery(s, w, r, "summary", func(ctx context.Context) (any, error) {
		summary, err := s.queries.SummaryStats(ctx)
		return summary, err
	})
}

func (s *Server) handleDiseaseTotals(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	src := r.URL.Query().Get("source")
	serveQuery(s, w, r, "disease_totals", func(ctx context.Context) (any, error) {
		totals, err := s.queries.DiseaseTotals(ctx, slug, src)
		return map[string]any{"disease_slug": slug, "totals": totals}, err
	})
}

func (s *Server) handleTimeseries(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	src := r.URL.Query().Get("source")
	serveQuery(s, w, r, "timeseries", func(ctx context.Context) (any, error) {
		series, err := s.queries.NationalTimeseries(ctx, slug, src)
		return map[string]any{"disease_slug": slug, "timeseries": series}, err
	})
}

// serveQuery wraps one store query with timing, metrics, and uniform
// error handling.
func serveQuery(s *Server, w http.ResponseWriter, r *http.Request, endpoint string, query func(ctx context.Context) (any, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	start := time.Now()
	body, err := query(ctx)
	s.metrics.QueryDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.QueryRequests.WithLabelValues(endpoint, "error").Inc()
		s.logger.Error("query failed", "endpoint", endpoint, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}

	s.metrics.QueryRequests.WithLabelValues(endpoint, "success").Inc()
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response body
}
