package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	validationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "miniapp_auth_validations_total",
		Help: "Init-data validations by outcome (valid or failure reason).",
	}, []string{"outcome"})

	profileSyncsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "miniapp_profile_syncs_total",
		Help: "Profile synchronizations by path (create or update).",
	}, []string{"path"})

	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "miniapp_requests_total",
		Help: "Total HTTP requests by method, path, and response status.",
	}, []string{"method", "path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "miniapp_request_duration_seconds",
		Help:    "Request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// PrometheusMiddleware returns a Gin middleware that records per-request metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		requestsTotal.WithLabelValues(method, path, status).Inc()
		requestDuration.WithLabelValues(method, path).Observe(duration)
	}
}

// Handler returns a Gin handler that serves Prometheus metrics.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// RecordValidation records an init-data validation outcome.
func RecordValidation(outcome string) {
	validationsTotal.WithLabelValues(outcome).Inc()
}

// RecordProfileSync records a profile synchronization path.
func RecordProfileSync(path string) {
	profileSyncsTotal.WithLabelValues(path).Inc()
}
