package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	enrichmentCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_calls_total",
			Help: "Per-record enrichment outcomes",
		},
		[]string{"provider", "outcome"},
	)

	prospectsImported = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "prospects_imported_total",
			Help: "Prospects admitted by import and bulk add",
		},
	)

	duplicatesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "prospects_duplicates_total",
			Help: "Rows skipped as email duplicates",
		},
	)

	rescorePasses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rescore_passes_total",
			Help: "Full rescore passes triggered by profile changes",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordEnrichment(provider string, ok bool) {
	outcome := "error"
	if ok {
		outcome = "success"
	}
	if provider == "" {
		provider = "none"
	}
	enrichmentCalls.WithLabelValues(provider, outcome).Inc()
}

func RecordImport(imported, duplicates int) {
	prospectsImported.Add(float64(imported))
	duplicatesSkipped.Add(float64(duplicates))
}

func RecordRescore() {
	rescorePasses.Inc()
}
