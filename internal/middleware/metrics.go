package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis errors by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "admindesk_redis_errors_total",
	Help: "Total number of Redis errors by command",
}, []string{"command"})

// StoreCommandLatency records document store command latency by command name.
var StoreCommandLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "admindesk_store_command_latency_seconds",
	Help:    "Document store command latency in seconds",
	Buckets: prometheus.DefBuckets,
}, []string{"command"})

// InitMetrics sets up the Prometheus HTTP metrics middleware.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler recording per-request metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
