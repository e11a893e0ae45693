// Package metrics holds the Prometheus collectors of the gateway and the
// Fiber glue that records and exposes them.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const namespace = "tubegate"

// Metrics holds all Prometheus collectors for the gateway.
type Metrics struct {
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	UpstreamCalls    *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	RateLimited      prometheus.Counter
	AuthRejected     prometheus.Counter

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on reg.
// reg must also implement prometheus.Gatherer to serve /metrics from it;
// *prometheus.Registry does.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "HTTP request duration in seconds, by endpoint and method.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint", "method", "status"},
		),
		RequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being served.",
			},
		),
		UpstreamCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_calls_total",
				Help:      "Calls to upstream providers, by provider and outcome.",
			},
			[]string{"provider", "outcome"},
		),
		UpstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_call_duration_seconds",
				Help:      "Duration of upstream provider calls.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		RateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the rate limiter.",
			},
		),
		AuthRejected: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_rejected_total",
				Help:      "Requests rejected for a missing or invalid API key.",
			},
		),
	}

	reg.MustRegister(
		m.RequestDuration,
		m.RequestsInFlight,
		m.UpstreamCalls,
		m.UpstreamDuration,
		m.RateLimited,
		m.AuthRejected,
	)
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	} else {
		m.gatherer = prometheus.DefaultGatherer
	}
	return m
}

// ObserveUpstream records one provider call.
func (m *Metrics) ObserveUpstream(provider string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamCalls.WithLabelValues(provider, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// IncRateLimited counts a request rejected by the rate limiter.
func (m *Metrics) IncRateLimited() {
	if m != nil {
		m.RateLimited.Inc()
	}
}

// IncAuthRejected counts a request rejected by the API-key check.
func (m *Metrics) IncAuthRejected() {
	if m != nil {
		m.AuthRejected.Inc()
	}
}

// Middleware records request duration and in-flight count.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next(); Fiber
		// returns slices backed by the fasthttp buffer which can be reused.
		endpoint := sanitizeEndpoint(string([]byte(c.Path())))
		method := string([]byte(c.Method()))

		m.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		status := strconv.Itoa(c.Response().StatusCode())
		m.RequestDuration.WithLabelValues(endpoint, method, status).Observe(time.Since(start).Seconds())
		m.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint folds unknown paths into one label to bound cardinality.
func sanitizeEndpoint(path string) string {
	switch path {
	case "/search", "/download", "/health/live", "/health/ready":
		return path
	default:
		return "other"
	}
}

// Handler serves the Prometheus exposition format via Fiber.
func (m *Metrics) Handler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
