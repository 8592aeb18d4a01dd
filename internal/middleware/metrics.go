package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smallbooks_http_requests_total",
		Help: "Total HTTP requests processed, by path, method and status.",
	}, []string{"path", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "smallbooks_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "method"})

	entriesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "smallbooks_ledger_entries_posted_total",
		Help: "Total ledger entries successfully posted.",
	})
)

// Metrics records per-request Prometheus metrics. Uses the route template
// (FullPath) rather than the raw URL to keep cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// CountEntryPosted increments the posted-entries counter.
func CountEntryPosted() {
	entriesPosted.Inc()
}
