// Package api assembles the HTTP server: echo routing, middleware, and the
// huma-registered v1 endpoints.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tcgtrack/tcg-price-tracker/internal/api/handlers"
	"github.com/tcgtrack/tcg-price-tracker/internal/api/middleware"
	"github.com/tcgtrack/tcg-price-tracker/internal/store"
	"github.com/tcgtrack/tcg-price-tracker/pkg/catalog"
)

// Server is the HTTP API server.
type Server struct {
	echo *echo.Echo
	log  *slog.Logger
}

// NewServer wires middleware, operational endpoints, and the v1 API.
func NewServer(s store.Store, provider *catalog.Provider, log *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(s)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	cfg := huma.DefaultConfig("tcg-price-tracker API", "1.0.0")
	api := humaecho.New(e, cfg)

	handlers.RegisterListingRoutes(api, handlers.NewListingsHandler(s))
	handlers.RegisterParseRoutes(api, handlers.NewParseHandler(provider))
	handlers.RegisterStatsRoutes(api, handlers.NewStatsHandler(s))
	handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(s))

	return &Server{echo: e, log: log}
}

// Start begins serving on addr and blocks until the server stops.
func (s *Server) Start(addr string) error {
	s.log.Info("starting server", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
