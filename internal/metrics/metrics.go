// Package metrics exposes Prometheus HTTP instrumentation for the fiber app.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "electrictools",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "electrictools",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// AccessDenied counts guard rejections by status (401 or 403).
	AccessDenied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "electrictools",
			Subsystem: "auth",
			Name:      "denied_total",
			Help:      "Requests rejected by an authorization guard.",
		},
		[]string{"status"},
	)

	PaymentsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "electrictools",
		Subsystem: "orders",
		Name:      "payments_confirmed_total",
		Help:      "Successful payment confirmations, including idempotent repeats.",
	})
)

// Middleware records duration and count per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		labels := prometheus.Labels{
			"method": c.Method(),
			"path":   c.Route().Path,
			"status": strconv.Itoa(status),
		}
		RequestDuration.With(labels).Observe(time.Since(start).Seconds())
		RequestTotal.With(labels).Inc()
		return err
	}
}

// Handler serves the default registry.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
