package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector records HTTP request metrics for Prometheus scraping.
type MetricsCollector struct {
	requests *prometheus.CounterVec
	latency  prometheus.Histogram
}

// NewMetricsCollector creates a collector and registers its metrics with the
// given registry.
func NewMetricsCollector(reg prometheus.Registerer) *MetricsCollector {
	c := &MetricsCollector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "conferencecentral_http_requests_total",
			Help: "Total HTTP requests by method and status code.",
		}, []string{"method", "status_code"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "conferencecentral_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(c.requests, c.latency)
	return c
}

// Middleware wraps next, recording request count and latency per request.
func (c *MetricsCollector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		c.requests.WithLabelValues(r.Method, strconv.Itoa(wrapped.status)).Inc()
		c.latency.Observe(time.Since(start).Seconds())
	})
}

// MetricsHandler returns the Prometheus scrape handler for the registry.
func MetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
