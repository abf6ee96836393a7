package api

import (
	"maroon_shop/api/middleware"
	"maroon_shop/config"
	"maroon_shop/services"
	"maroon_shop/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

// App builds the API router over the given services.
func App(cfg *structs.Config, sm *services.ServiceManager) chi.Router {
	r := chi.NewRouter()

	// create loggers
	mwLogger := config.NewLogger(false)
	standardLogger := config.NewLogger(true)

	// Initialize middleware
	mw := middleware.NewMiddleware(cfg, mwLogger, sm.CacheService, sm.AuthService)

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)

	// Limits & security
	r.Use(mw.BodyLimit(cfg.Server.MaxBodyBytes))
	r.Use(mw.SecurityHeaders("default-src 'none'; frame-ancestors 'none'"))

	// Observability
	r.Use(middleware.MetricsMiddleware)
	r.Use(mw.RequestLogging())

	// CORS
	r.Use(mw.SetupCORS().Handler)
	r.Use(mw.RateLimitMiddleware())

	// Register all routes
	NewRouterManager(standardLogger, sm).RegisterRoutes(r)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		gecho.Success(w,
			gecho.WithMessage("Welcome to the "+cfg.Server.AppName+" API"),
			gecho.Send(),
		)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w,
			gecho.Send(),
		)
	})

	return r
}
