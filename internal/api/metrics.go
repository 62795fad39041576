package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jonesrussell/content-manager/internal/handlers"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "content_manager_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "content_manager_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
	}, []string{"method", "route"})

	fallbackServes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "content_manager_fallback_serves_total",
		Help: "Responses served from the local fallback store, by route",
	}, []string{"route"})
)

// metricsMiddleware records per-request counters and latency. Responses
// answered from the local store are counted separately via the backend
// header the handlers set.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		requestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

		if c.Writer.Header().Get(handlers.BackendHeader) == "local" {
			fallbackServes.WithLabelValues(route).Inc()
		}
	}
}
