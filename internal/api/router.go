package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/allegro-music/allegro/docs"
	"github.com/allegro-music/allegro/internal/api/handler"
	"github.com/allegro-music/allegro/internal/api/middleware"
	"github.com/allegro-music/allegro/internal/core/domain"
	"github.com/allegro-music/allegro/internal/core/ports"
	"github.com/allegro-music/allegro/internal/infrastructure/http/handlers"
)

// Deps are the services the router exposes.
type Deps struct {
	Auth      ports.AuthService
	Catalog   ports.CatalogService
	Readiness *handlers.ReadinessHandler
	Logger    zerolog.Logger

	// Registry receives the HTTP metrics and backs /metrics. Defaults to the
	// Prometheus default registry, where the custom metrics live.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{"*"},
		MaxAge:       3600,
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "allegro",
		Subsystem:  "http",
		Registerer: registerer,
	}))
	e.Use(middleware.BearerToken())

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	auth := e.Group("/auth")
	auth.POST("/adduser", authHandler.AddUser)
	auth.POST("/login", authHandler.Login)
	auth.GET("/countuser", authHandler.CountUsers)

	// --- Catalog routes ---
	catalog := handler.NewCatalogHandler(deps.Catalog)

	add := e.Group("/music/add")
	add.POST("/artist", catalog.AddArtist)
	add.POST("/piece", catalog.AddPiece)
	add.POST("/release", catalog.AddRelease)
	add.POST("/recording", catalog.AddRecording)

	get := e.Group("/music/get")
	search := e.Group("/music/search")
	for _, kind := range domain.ContributorKinds {
		get.POST("/"+kind.String(), catalog.GetContributor(kind))
		get.GET("/"+kind.String()+"s", catalog.ListContributors(kind))
		search.POST("/"+kind.String(), catalog.SearchContributors(kind))
	}
	get.POST("/piece", catalog.GetPiece)
	get.GET("/pieces", catalog.ListPieces)
	get.POST("/release", catalog.GetRelease)
	get.GET("/releases", catalog.ListReleases)
	get.POST("/recording", catalog.GetRecording)
	get.GET("/recordings", catalog.ListRecordings)
	search.POST("/piece", catalog.SearchPieces)
	search.POST("/release", catalog.SearchReleases)
	search.POST("/recording", catalog.SearchRecordings)

	// --- Health probes, metrics and docs ---
	readiness := deps.Readiness
	if readiness == nil {
		readiness = handlers.NewReadinessHandler()
	}
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", readiness.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
