package health

import (
	"maroon_shop/services"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registerOnce sync.Once

type HealthRoutesManager struct {
	healthService *services.HealthService
	logger        *gecho.Logger
}

func NewHealthRoutesManager(logger *gecho.Logger, healthService *services.HealthService) *HealthRoutesManager {
	return &HealthRoutesManager{
		healthService: healthService,
		logger:        logger,
	}
}

func (hrm *HealthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/health/server", hrm.GetServerHealth)
	r.Get("/health/database", hrm.GetDatabaseHealth)
	r.Get("/health/cache", hrm.GetCacheHealth)

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	registerOnce.Do(func() {
		prometheus.MustRegister(HttpDuration, HttpRequests, services.OrdersPlaced, services.OrderNotificationFailures)
	})
}
