package health

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (hrm *HealthRoutesManager) GetServerHealth(w http.ResponseWriter, r *http.Request) {
	healthStatus := hrm.healthService.GetServerHealthStatus()
	gecho.Success(w,
		gecho.WithData(healthStatus),
		gecho.Send(),
	)
}

func (hrm *HealthRoutesManager) GetDatabaseHealth(w http.ResponseWriter, r *http.Request) {
	dbHealthStatus, err := hrm.healthService.GetDatabaseHealthStatus(r.Context())
	if err != nil {
		hrm.logger.Warn("Database health check failed", gecho.Field("error", err))
		gecho.ServiceUnavailable(w,
			gecho.WithMessage("Database health check failed"),
			gecho.WithData(dbHealthStatus),
			gecho.Send(),
		)
		return
	}
	gecho.Success(w,
		gecho.WithData(dbHealthStatus),
		gecho.Send(),
	)
}

func (hrm *HealthRoutesManager) GetCacheHealth(w http.ResponseWriter, r *http.Request) {
	stats, err := hrm.healthService.GetCacheHealthStatus(r.Context())
	if err != nil {
		hrm.logger.Warn("Cache health check failed", gecho.Field("error", err))
		gecho.ServiceUnavailable(w,
			gecho.WithMessage("Cache health check failed"),
			gecho.WithData(stats),
			gecho.Send(),
		)
		return
	}
	gecho.Success(w,
		gecho.WithData(stats),
		gecho.Send(),
	)
}
