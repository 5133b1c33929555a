package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	initOnce sync.Once

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
)

// InitMetrics registers the HTTP collectors. Safe to call more than once.
func InitMetrics() {
	initOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "filehub_http_requests_total",
			Help: "Number of HTTP requests processed, by method, route and status.",
		}, []string{"method", "route", "status"})

		requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "filehub_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"})

		prometheus.MustRegister(requestsTotal, requestDuration)
	})
}

// Middleware records request counts and latencies per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		if requestsTotal != nil {
			requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		}
		if requestDuration != nil {
			requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
		}
	}
}

// Register attaches the Prometheus metrics endpoint to the router.
func Register(router *gin.Engine, path string) {
	router.GET(path, gin.WrapH(promhttp.Handler()))
}
