// Package metrics records label-service traffic and the HTTP server's
// requests in a private Prometheus registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teabag-labs/teabag-snap/internal/core/ports/driven"
)

// Ensure Metrics implements the interface.
var _ driven.Observer = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// GraphQLRequests counts label-service operations by outcome.
	GraphQLRequests *prometheus.CounterVec
	// GraphQLLatency tracks label-service round trips.
	GraphQLLatency *prometheus.HistogramVec
	// Refreshes counts token refreshes by result.
	Refreshes *prometheus.CounterVec
	// Logouts counts credentials cleared after UNAUTHENTICATED.
	Logouts prometheus.Counter
	// HTTPRequests counts requests served by the local HTTP server.
	HTTPRequests *prometheus.CounterVec
	// HTTPLatency tracks local HTTP request latency.
	HTTPLatency *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers all metrics under namespace.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		GraphQLRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "graphql_requests_total",
				Help:      "Label service operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		GraphQLLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "graphql_request_duration_seconds",
				Help:      "Label service round-trip latency in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"operation"},
		),
		Refreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_refreshes_total",
				Help:      "Token refreshes by result",
			},
			[]string{"result"},
		),
		Logouts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_logouts_total",
				Help:      "Stored state cleared after the label service rejected the credential",
			},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"endpoint", "method", "status"},
		),
		HTTPLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint", "method"},
		),
	}

	m.registry.MustRegister(
		m.GraphQLRequests,
		m.GraphQLLatency,
		m.Refreshes,
		m.Logouts,
		m.HTTPRequests,
		m.HTTPLatency,
	)
	return m
}

// Handler returns a Prometheus handler for these metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one label-service operation.
func (m *Metrics) ObserveRequest(operation, outcome string, d time.Duration) {
	m.GraphQLRequests.WithLabelValues(operation, outcome).Inc()
	m.GraphQLLatency.WithLabelValues(operation).Observe(d.Seconds())
}

// ObserveRefresh records a refresh attempt.
func (m *Metrics) ObserveRefresh(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Refreshes.WithLabelValues(result).Inc()
}

// ObserveLogout records a forced logout.
func (m *Metrics) ObserveLogout() {
	m.Logouts.Inc()
}

// RecordHTTPRequest records one request served locally.
func (m *Metrics) RecordHTTPRequest(endpoint, method, status string, d time.Duration) {
	m.HTTPRequests.WithLabelValues(endpoint, method, status).Inc()
	m.HTTPLatency.WithLabelValues(endpoint, method).Observe(d.Seconds())
}
