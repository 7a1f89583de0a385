package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "film_backend",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "film_backend",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	coreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "film_backend",
			Subsystem: "engine",
			Name:      "operations_total",
			Help:      "Affinity and ranking engine operations by outcome.",
		},
		[]string{"op", "outcome"},
	)

	resultSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "film_backend",
			Subsystem: "engine",
			Name:      "result_size",
			Help:      "Number of records returned by engine operations.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 1000},
		},
		[]string{"op"},
	)
)

func init() {
	Registry.MustRegister(httpRequests, httpDuration, coreOps, resultSize)
}

// Handler exposes the registry for scraping.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}

// Middleware records request counts and latency keyed by route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// ObserveOp records the outcome of one engine operation. A nil err counts as
// "ok" and the size is recorded; errors only bump the "error" counter.
func ObserveOp(op string, size int, err error) {
	if err != nil {
		coreOps.WithLabelValues(op, "error").Inc()
		return
	}
	coreOps.WithLabelValues(op, "ok").Inc()
	resultSize.WithLabelValues(op).Observe(float64(size))
}
