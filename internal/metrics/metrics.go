package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talla_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "talla_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Chart cache metrics
	chartCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "talla_chart_cache_hits_total",
			Help: "Total number of chart lookups served from the in-memory cache",
		},
	)

	chartCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "talla_chart_cache_misses_total",
			Help: "Total number of chart lookups that went to disk",
		},
	)

	chartLoadFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talla_chart_load_failures_total",
			Help: "Total number of failed chart loads by reason",
		},
		[]string{"reason"},
	)
)

// ChartCacheHit registers a lookup served from memory.
func ChartCacheHit() { chartCacheHits.Inc() }

// ChartCacheMiss registers a lookup that had to read the backing file.
func ChartCacheMiss() { chartCacheMisses.Inc() }

// ChartLoadFailure registers a failed load. reason: "missing" | "malformed" | "io".
func ChartLoadFailure(reason string) { chartLoadFailures.WithLabelValues(reason).Inc() }

// Middleware instruments HTTP requests (RED metrics).
// Uses the route template, not the raw path, to keep label cardinality bounded.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
