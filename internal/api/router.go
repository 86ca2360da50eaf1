package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/ecom-api/docs"
	"github.com/99minutos/ecom-api/internal/api/handler"
	"github.com/99minutos/ecom-api/internal/api/middleware"
	"github.com/99minutos/ecom-api/internal/core/ports"
)

// Dependencies is everything the HTTP layer needs from the composition root.
type Dependencies struct {
	AuthService ports.AuthService
	RoleService ports.RoleService
	Cookies     handler.CookieConfig

	// RoleManagePermission, when set, is required on every /role route.
	RoleManagePermission string
	ReadinessChecks      map[string]handler.CheckFunc

	// Registerer receives the HTTP request metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	reg := deps.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "ecom",
		Subsystem:  "http",
		Registerer: reg,
	}))

	authHandler := handler.NewAuthHandler(deps.AuthService, deps.Cookies)
	roleHandler := handler.NewRoleHandler(deps.RoleService)
	session := middleware.Session(deps.AuthService)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/register", authHandler.Register)
	auth.POST("/hash", authHandler.Hash)
	auth.POST("/refresh", authHandler.Refresh)
	auth.GET("/me", authHandler.Me, session)

	// --- Role routes (session required) ---
	role := e.Group("/role", session, middleware.RequirePermission(deps.RoleManagePermission))
	role.GET("", roleHandler.List)
	role.POST("", roleHandler.Create)
	role.GET("/:id", roleHandler.Get)
	role.DELETE("/:id", roleHandler.Delete)
	role.PATCH("/:id", roleHandler.Update)
	role.PUT("/:id", roleHandler.UpdateStatus)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)                             // liveness  – is the process alive?
	e.GET("/health/ready", handler.NewReadinessHandler(deps.ReadinessChecks).Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
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
