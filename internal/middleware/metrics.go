package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "reunion_redis_errors_total",
	Help: "Total number of Redis errors by command",
}, []string{"command"})

// FollowMutations counts follow graph mutations by outcome.
var FollowMutations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "reunion_follow_mutations_total",
	Help: "Total follow/unfollow operations by outcome",
}, []string{"outcome"})

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-metrics Fiber handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
