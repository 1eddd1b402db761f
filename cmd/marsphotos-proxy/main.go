package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/thesavant42/marsphotos/internal/api"
	"github.com/thesavant42/marsphotos/internal/cache"
	"github.com/thesavant42/marsphotos/internal/config"
	"github.com/thesavant42/marsphotos/internal/models"
	"github.com/thesavant42/marsphotos/internal/server"
)

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "marsphotos-proxy",
		Level:           cfg.Log.LogLevel(),
	})
	if cfg.UsesDemoKey() {
		logger.Warn("using DEMO_KEY; set NASA_API_KEY for higher rate limits")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := server.NewMetrics(reg)

	nasa := api.NewNASAClient(cfg.NASA.APIKey, logger, api.WithBaseURL(cfg.NASA.BaseURL))
	settings := api.DefaultBreakerSettings()
	settings.OnStateChange = metrics.ObserveBreaker
	upstream := api.NewBreakerFetcher(nasa, settings, logger)

	photoCache := cache.New[[]models.PhotoRecord](cfg.Cache.Capacity, cfg.Cache.TTL)
	photos := server.NewPhotosHandler(upstream, photoCache, metrics, logger)
	router := server.NewRouter(photos, photoCache, metrics, reg, server.RouterConfig{
		CORSOrigins:     cfg.Server.CORSOrigins,
		RateLimit:       cfg.Server.RateLimit,
		RateLimitWindow: cfg.Server.RateLimitWindow,
	}, logger)

	httpServer := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	sup := server.NewSupervisor(logger,
		server.NewHTTPService(httpServer, cfg.Server.ShutdownTimeout),
		server.NewCacheJanitor(photoCache, cfg.Cache.SweepInterval, metrics, logger),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting proxy",
		"addr", cfg.Server.ListenAddr,
		"upstream", cfg.NASA.BaseURL,
		"cache_ttl", cfg.Cache.TTL,
		"cache_capacity", cfg.Cache.Capacity)

	if err := sup.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("supervisor stopped", "error", err)
		os.Exit(1)
	}

	unstopped, _ := sup.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logger.Warn("service failed to stop", "service", svc.Name)
	}
	logger.Info("proxy stopped")
}
