package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes recorded on FetchesTotal.
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeCanceled = "canceled"
)

// Metrics represents the collection of all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP surface
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Table reads
	FetchesTotal    *prometheus.CounterVec
	FetchDuration   *prometheus.HistogramVec
	RowsFetched     *prometheus.GaugeVec
	FetchesInFlight prometheus.Gauge
}

// NewMetrics creates all collectors and registers them on a fresh registry,
// together with the Go and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	m.FetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supaview_fetches_total",
			Help: "Total number of table reads by source and outcome",
		},
		[]string{"source", "table", "outcome"},
	)

	m.FetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "supaview_fetch_duration_seconds",
			Help:    "Duration of table reads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source", "table"},
	)

	m.RowsFetched = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "supaview_rows_fetched",
			Help: "Number of rows returned by the last successful read",
		},
		[]string{"source", "table"},
	)

	m.FetchesInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "supaview_fetches_in_flight",
			Help: "Number of table reads currently in flight",
		},
	)

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.FetchesTotal,
		m.FetchDuration,
		m.RowsFetched,
		m.FetchesInFlight,
	)

	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFetch records one finished table read.
func (m *Metrics) ObserveFetch(source, table, outcome string, rows int, elapsed time.Duration) {
	m.FetchesTotal.WithLabelValues(source, table, outcome).Inc()
	m.FetchDuration.WithLabelValues(source, table).Observe(elapsed.Seconds())
	if outcome == OutcomeSuccess {
		m.RowsFetched.WithLabelValues(source, table).Set(float64(rows))
	}
}

// Middleware for tracking HTTP requests
func (m *Metrics) RequestTrackingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer wrapper to capture status code
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		m.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rw.statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

// responseWriter is a wrapper to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Handler returns the Prometheus HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
