package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/storage/redis/v3"

	"keywordlab/internal/analyzer"
	"keywordlab/internal/config"
	"keywordlab/internal/display"
	"keywordlab/internal/jobs"
	"keywordlab/internal/keywordsource"
	"keywordlab/internal/logger"
	"keywordlab/internal/metrics"
	"keywordlab/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: "stdout",
	})
	logger.SetLogger(log)

	srcCfg, err := config.LoadSourceConfig()
	if err != nil {
		log.WithError(err).Fatal("failed to load keyword source config")
	}
	policy, err := keywordsource.ParsePolicy(srcCfg.Policy)
	if err != nil {
		log.WithError(err).Fatal("invalid keyword source policy")
	}

	format, err := display.NewFormatter(cfg.DisplayLocale, cfg.CPCCurrency)
	if err != nil {
		log.WithError(err).Fatal("invalid display settings")
	}

	source := keywordsource.NewDefaultSource(keywordsource.Options{
		Policy:  policy,
		Timeout: srcCfg.ProviderTimeout,
		Observe: metrics.RecordFetch,
	}, srcCfg.FallbackKeyword)

	viewOpts := analyzer.Options{
		Latency:  cfg.AnalysisLatency,
		Observer: metrics.RecordRun,
	}
	if cfg.UsesAdapter() {
		viewOpts.Generator = analyzer.SourceGenerator{Source: source}
	}
	views := analyzer.NewRegistry(viewOpts)
	defer views.Close()

	if cfg.MetricsEnabled {
		metrics.Init(views.Len)
	}

	// Optional Redis session storage
	var storage *redis.Storage
	if cfg.RedisURL != "" {
		storage, err = server.NewRedisStorage(cfg.RedisURL)
		if err != nil {
			log.WithError(err).Fatal("failed to connect session storage")
		}
		log.Info("using redis session storage")
	}

	srv := server.New(cfg, storage)
	srv.RegisterRoutes(views, source, format)

	// Start background view reaper
	reaper := jobs.NewViewReaper(views, cfg.ViewReapInterval, cfg.ViewIdleTTL)
	go reaper.Start(ctx)

	log.WithFields(map[string]any{
		"policy":        policy,
		"result_source": cfg.ResultSource,
		"latency":       cfg.AnalysisLatency.String(),
	}).Info("keyword analyzer configured")

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.WithError(err).Error("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	cancel()
	views.Close()
	if err := srv.Shutdown(); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}
	log.Info("server exited")
}
