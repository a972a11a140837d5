package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "heremap",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "heremap",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Controller metrics
	Activations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "heremap",
		Subsystem: "mapctl",
		Name:      "activations_total",
		Help:      "Mode activations, by mode",
	}, []string{"mode"})

	StaleResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "heremap",
		Subsystem: "mapctl",
		Name:      "stale_results_total",
		Help:      "Async completions dropped because the mode changed first",
	}, []string{"capability"})

	SkippedItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "heremap",
		Subsystem: "mapctl",
		Name:      "skipped_items_total",
		Help:      "Malformed response items skipped while rendering",
	}, []string{"kind"})

	// Service gateway metrics
	GatewayCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "heremap",
		Subsystem: "gateway",
		Name:      "calls_total",
		Help:      "External capability calls, by outcome",
	}, []string{"capability", "outcome"})

	GatewayDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "heremap",
		Subsystem: "gateway",
		Name:      "call_duration_seconds",
		Help:      "Latency of external capability calls",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"capability"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "heremap",
		Subsystem: "ws",
		Name:      "active_sessions",
		Help:      "Current number of connected map sessions",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "heremap",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "heremap",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})
)

// ObserveCall records one gateway call.
func ObserveCall(capability string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	GatewayCalls.WithLabelValues(capability, outcome).Inc()
	GatewayDuration.WithLabelValues(capability).Observe(time.Since(start).Seconds())
}

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
