package server

import (
	"context"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"keywordlab/internal/analyzer"
	"keywordlab/internal/display"
	"keywordlab/internal/handlers"
	"keywordlab/internal/handlers/api"
	"keywordlab/internal/keywordsource"
	"keywordlab/internal/logger"
	"keywordlab/internal/middleware"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(views *analyzer.Registry, source *keywordsource.Source, format *display.Formatter) {
	// Initialize middleware
	viewMiddleware := middleware.NewViewMiddleware(views)

	// Initialize handlers
	analyzerHandler := handlers.NewAnalyzerHandler(s.Cfg, format)
	probeHandler := handlers.NewProbeHandler(s.readinessDeps())
	ideasHandler := api.NewIdeasHandler(source)
	stateHandler := api.NewStateHandler()

	// Probes
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)

	if s.Cfg.MetricsEnabled {
		s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	// Frontend routes
	s.App.Get("/", viewMiddleware.RequireView, analyzerHandler.Index)
	s.App.Get("/analyze/check", viewMiddleware.RequireView, analyzerHandler.CheckKeyword)
	s.App.Post("/analyze", viewMiddleware.RequireView, analyzerHandler.Analyze)
	s.App.Get("/results", viewMiddleware.RequireView, analyzerHandler.Results)

	// JSON API
	apiGroup := s.App.Group("/api")
	apiGroup.Get("/ideas", ideasHandler.Ideas)
	apiGroup.Get("/providers/:provider/ideas", ideasHandler.ProviderIdeas)
	apiGroup.Get("/state", viewMiddleware.OptionalView, stateHandler.State)

	logger.WithField("result_source", s.Cfg.ResultSource).Info("routes registered")
}

// readinessDeps lists the dependencies the readiness probe pings.
func (s *Server) readinessDeps() map[string]handlers.Pinger {
	deps := map[string]handlers.Pinger{}
	if s.storage != nil {
		storage := s.storage
		deps["session storage"] = handlers.PingFunc(func(ctx context.Context) error {
			return storage.Conn().Ping(ctx).Err()
		})
	}
	return deps
}
