// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "counseling_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "counseling_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	BookingSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "counseling_booking_submissions_total",
		Help: "Booking wizard submissions by outcome.",
	}, []string{"outcome"})

	WizardTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "counseling_wizard_transitions_total",
		Help: "Booking wizard step changes by action.",
	}, []string{"action"})

	EventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "counseling_events_processed_total",
		Help: "Queue events handled by the worker by type and outcome.",
	}, []string{"type", "outcome"})
)

// Middleware records request count and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
