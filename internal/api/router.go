package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/inest/inest-backend/docs"
	"github.com/inest/inest-backend/internal/api/handler"
	"github.com/inest/inest-backend/internal/api/middleware"
	"github.com/inest/inest-backend/internal/core/domain"
	"github.com/inest/inest-backend/internal/core/ports"
)

// Deps carries everything the router needs to build its handlers.
type Deps struct {
	Auth     ports.AuthService
	Verifier ports.TokenVerifier
	Bakers   ports.ListingService[domain.Baker]
	Laundry  ports.ListingService[domain.Laundry]
	Medicals ports.ListingService[domain.Medical]
	Reports  ports.ReportService
	// Health maps dependency names to readiness probes.
	Health map[string]handler.Pinger
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// HTTP metrics go to a per-router registry so that building several
	// routers in one process never registers the same collector twice.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "inest",
		Registerer: reg,
	}))

	// --- Operational endpoints (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authMW := middleware.Auth(deps.Verifier)
	api := e.Group("/api")

	// --- Health probes ---
	health := handler.NewHealthHandler(deps.Health)
	api.GET("/health", health.Liveness)        // liveness  – is the process alive?
	api.GET("/health/ready", health.Readiness) // readiness – are dependencies up?

	// --- Users ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	api.POST("/users/register", authHandler.Register)
	api.POST("/users/login", authHandler.Login)

	// --- Listings ---
	bakers := handler.NewBakerHandler(deps.Bakers)
	bakerWrite := []echo.MiddlewareFunc{authMW, middleware.RBAC(domain.RoleCook)}
	api.GET("/bakers", bakers.List)
	api.POST("/bakers", bakers.Create, bakerWrite...)
	api.PUT("/bakers/:id", bakers.Update, bakerWrite...)
	api.DELETE("/bakers/:id", bakers.Delete, bakerWrite...)

	laundry := handler.NewLaundryHandler(deps.Laundry)
	laundryWrite := []echo.MiddlewareFunc{authMW, middleware.RBAC(domain.RoleOwner)}
	api.GET("/laundry", laundry.List)
	api.POST("/laundry", laundry.Create, laundryWrite...)
	api.PUT("/laundry/:id", laundry.Update, laundryWrite...)
	api.DELETE("/laundry/:id", laundry.Delete, laundryWrite...)

	medicals := handler.NewMedicalHandler(deps.Medicals)
	medicalWrite := []echo.MiddlewareFunc{authMW, middleware.RBAC(domain.RoleAdmin)}
	api.GET("/medicals", medicals.List)
	api.POST("/medicals", medicals.Create, medicalWrite...)
	api.PUT("/medicals/:id", medicals.Update, medicalWrite...)
	api.DELETE("/medicals/:id", medicals.Delete, medicalWrite...)

	// --- WhistleNest ---
	reports := handler.NewReportHandler(deps.Reports)
	adminOnly := []echo.MiddlewareFunc{authMW, middleware.RBAC(domain.RoleAdmin)}
	api.POST("/whistlenest", reports.Submit, middleware.OptionalAuth(deps.Verifier))
	api.GET("/whistlenest/user", reports.ListMine, authMW)
	api.GET("/whistlenest/admin", reports.ListAll, adminOnly...)
	api.PATCH("/whistlenest/:id/status", reports.UpdateStatus, adminOnly...)

	return e
}

// requestLogger emits one structured line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
