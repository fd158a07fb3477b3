package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Push outcomes.
const (
	PushSent    = "sent"
	PushGone    = "gone"
	PushFailed  = "failed"
	PushDropped = "dropped"
)

// Metrics holds all Prometheus metrics. Each instance owns its registry.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Business metrics
	ReviewsSubmitted   *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	ReviewsListed      prometheus.Counter

	PushNotifications *prometheus.CounterVec
	RateLimitHits     prometheus.Counter
}

// New registers every metric on a fresh registry, along with the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),
		ReviewsSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reviews_submitted_total",
				Help: "Review submissions by result",
			},
			[]string{"result"},
		),
		ValidationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "review_validation_failures_total",
				Help: "Rejected review drafts by validation code",
			},
			[]string{"code"},
		),
		ReviewsListed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "reviews_listed_total",
				Help: "Number of full review list reads",
			},
		),
		PushNotifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "push_notifications_total",
				Help: "New-review alerts by outcome",
			},
			[]string{"outcome"},
		),
		RateLimitHits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_limit_hits_total",
				Help: "Total number of rate limited requests",
			},
		),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the Prometheus HTTP handler for this instance.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinHandler returns a Gin-compatible handler for Prometheus metrics.
func (m *Metrics) GinHandler() gin.HandlerFunc {
	h := m.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// Middleware collects HTTP metrics.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordSubmission records a review submission result ("created",
// "invalid" or "error").
func (m *Metrics) RecordSubmission(result string) {
	if m == nil {
		return
	}
	m.ReviewsSubmitted.WithLabelValues(result).Inc()
}

// RecordValidationFailure records a rejected draft.
func (m *Metrics) RecordValidationFailure(code string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(code).Inc()
}

// RecordList records one full list read.
func (m *Metrics) RecordList() {
	if m == nil {
		return
	}
	m.ReviewsListed.Inc()
}

// RecordPush records a push outcome.
func (m *Metrics) RecordPush(outcome string) {
	if m == nil {
		return
	}
	m.PushNotifications.WithLabelValues(outcome).Inc()
}

// RecordRateLimitHit records a rejected request.
func (m *Metrics) RecordRateLimitHit() {
	if m == nil {
		return
	}
	m.RateLimitHits.Inc()
}
