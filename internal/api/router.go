package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bloglane/blog-api/docs"
	"github.com/bloglane/blog-api/internal/api/handler"
	"github.com/bloglane/blog-api/internal/api/middleware"
	"github.com/bloglane/blog-api/internal/core/ports"
)

// Deps carries everything the router needs. Readiness may be nil, in which
// case /health/ready reports ok with no dependencies.
type Deps struct {
	AuthService ports.AuthService
	PostService ports.PostService
	Tokens      ports.TokenIssuer
	Readiness   *handler.HealthDependenciesHandler
	Log         zerolog.Logger

	// Registry receives the HTTP metrics. Nil means the default Prometheus
	// registry, which also holds the metrics package collectors.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(metricsMiddleware(d.Registry))

	authHandler := handler.NewAuthHandler(d.AuthService)
	postHandler := handler.NewPostHandler(d.PostService)
	requireToken := middleware.Auth(d.Tokens)

	// --- Account routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.PUT("/disable", authHandler.Disable, requireToken)
	e.PUT("/enable", authHandler.Enable, requireToken)
	e.GET("/isuser", authHandler.IsUser, requireToken)

	// --- Post routes ---
	posts := e.Group("/posts", requireToken)
	posts.POST("", postHandler.CreatePost)
	posts.GET("", postHandler.ListPosts)
	posts.GET("/:id", postHandler.GetPost)
	posts.PUT("/:id", postHandler.UpdatePost)
	posts.DELETE("/:id", postHandler.DeletePost)
	posts.PUT("/:id/like", postHandler.LikePost)
	posts.PUT("/:id/unlike", postHandler.UnlikePost)

	// --- Health probes (no auth required) ---
	readiness := d.Readiness
	if readiness == nil {
		readiness = handler.NewReadinessHandler(nil)
	}
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", readiness.Readiness)

	// --- Ops ---
	e.GET("/metrics", metricsHandler(d.Registry))
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
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

func metricsMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	if reg == nil {
		return echoprometheus.NewMiddleware("blog")
	}
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "blog",
		Registerer: reg,
	})
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
