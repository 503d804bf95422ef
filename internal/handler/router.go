package handler

import (
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sumire/projectmanager/internal/service"
)

// RouterConfig holds the dependencies and options for NewRouter.
type RouterConfig struct {
	Projects *service.ProjectService
	Logger   *zap.Logger

	// Registry receives the HTTP metrics and backs GET /metrics. A fresh
	// registry is created when nil.
	Registry *prometheus.Registry

	AllowedOrigins []string

	// RateLimit is requests per second per client IP. Zero disables it.
	RateLimit float64
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// NewRouter builds the echo instance serving the project API.
func NewRouter(cfg RouterConfig) *echo.Echo {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	metrics := NewMetrics(cfg.Registry)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewAppValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLogger(cfg.Logger))
	e.Use(metrics.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderAccept, echo.HeaderContentType},
		ExposeHeaders: []string{echo.HeaderXRequestID},
		MaxAge:        300,
	}))
	if cfg.RateLimit > 0 {
		e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(cfg.RateLimit),
				Burst:     int(math.Max(1, math.Ceil(cfg.RateLimit))),
				ExpiresIn: 3 * time.Minute,
			}),
		}))
	}

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, WelcomeMessage)
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))

	projects := NewProjectHandler(cfg.Projects, metrics)
	api := e.Group("/api/projects")
	api.GET("", projects.List)
	api.GET("/count", projects.Count)
	api.GET("/:id", projects.Get)
	api.POST("", projects.Create)
	api.PUT("/:id", projects.Update)
	api.DELETE("/:id", projects.Delete)

	return e
}
