// Package metrics exposes Prometheus collectors for crawler triggers.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Start outcomes.
const (
	OutcomeStarted         = "started"
	OutcomeAlreadyRunning  = "already_running"
	OutcomeClientError     = "client_error"
	OutcomeUnexpectedError = "unexpected_error"
)

var (
	crawlerStartTotal           *prometheus.CounterVec
	crawlerStartDurationSeconds *prometheus.HistogramVec
	httpRequestsTotal           *prometheus.CounterVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		crawlerStartTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "peregrine_crawler_start_total",
				Help: "Total number of crawler start requests, labeled by crawler and outcome.",
			},
			[]string{"crawler", "outcome"},
		)

		crawlerStartDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "peregrine_crawler_start_duration_seconds",
				Help:    "Histogram of StartCrawler round-trip latencies, labeled by crawler.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"crawler"},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "peregrine_http_requests_total",
				Help: "Total number of HTTP requests, labeled by method, route and code.",
			},
			[]string{"method", "route", "code"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveStart records one crawler start attempt.
func ObserveStart(crawler, outcome string, duration time.Duration) {
	crawlerStartTotal.WithLabelValues(crawler, outcome).Inc()
	crawlerStartDurationSeconds.WithLabelValues(crawler).Observe(duration.Seconds())
}

// ObserveHTTPRequest increments the HTTP request counter.
func ObserveHTTPRequest(method, route string, code int) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}

