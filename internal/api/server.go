// Package api is the HTTP server for the dashboard page and its JSON API.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apihandler "github.com/newthinker/evaldash/internal/api/handler/api"
	"github.com/newthinker/evaldash/internal/api/handler/web"
	"github.com/newthinker/evaldash/internal/api/middleware"
	"github.com/newthinker/evaldash/internal/dashboard"
	"github.com/newthinker/evaldash/internal/metrics"
	"github.com/newthinker/evaldash/internal/view/page"
	"go.uber.org/zap"
)

// Server represents the HTTP server for evaldash
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	web        *web.Handler
}

// Config holds server configuration
type Config struct {
	Host             string
	Port             int
	APIKey           string
	Title            string
	MetricsPath      string
	PredictionsLimit int
}

// Dependencies are the dashboard components the server exposes.
type Dependencies struct {
	Controller *dashboard.Controller
	Document   *page.Document
	Charts     *page.Registry
	// Metrics is optional; when nil no metrics endpoint or middleware is set up.
	Metrics *metrics.Registry
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()

	var handler http.Handler = mux
	if deps.Metrics != nil {
		handler = metrics.HTTPMiddleware(deps.Metrics)(handler)
	}
	handler = metrics.LoggingMiddleware(logger)(handler)

	s := &Server{
		httpServer: &http.Server{
			Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:     handler,
			ReadTimeout: 15 * time.Second,
			// A refresh waits for a full load cycle against the Metrics Service.
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
		mux:    mux,
	}

	if err := s.setupRoutes(cfg, deps); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config, deps Dependencies) error {
	webHandler, err := web.NewHandler(web.Deps{
		Title:      cfg.Title,
		Document:   deps.Document,
		Charts:     deps.Charts,
		Controller: deps.Controller,
		Logger:     s.logger,
	})
	if err != nil {
		return fmt.Errorf("creating web handler: %w", err)
	}
	s.web = webHandler

	// Web UI routes
	s.mux.HandleFunc("GET /", webHandler.Dashboard)
	s.mux.HandleFunc("POST /refresh", webHandler.Refresh)
	s.mux.HandleFunc("POST /retry", webHandler.Retry)

	// API routes
	auth := middleware.APIKeyAuth(cfg.APIKey)
	stateHandler := apihandler.NewStateHandler(deps.Controller, cfg.PredictionsLimit)
	reloadsHandler := apihandler.NewReloadsHandler(deps.Controller.History())

	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.Handle("GET /api/state", auth(http.HandlerFunc(stateHandler.Get)))
	s.mux.Handle("GET /api/reloads", auth(http.HandlerFunc(reloadsHandler.List)))
	s.mux.Handle("GET /api/reloads/{id}", auth(http.HandlerFunc(reloadsHandler.Get)))

	if deps.Metrics != nil && cfg.MetricsPath != "" {
		s.mux.Handle("GET "+cfg.MetricsPath, deps.Metrics.Handler())
	}

	return nil
}

// Web returns the page handler, which also renders exported reports.
func (s *Server) Web() *web.Handler {
	return s.web
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
