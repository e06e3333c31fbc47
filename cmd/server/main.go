package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/brojonat/soldungen/client"
	"github.com/brojonat/soldungen/service/config"
	"github.com/brojonat/soldungen/service/labels"
	"github.com/brojonat/soldungen/service/metrics"
	"github.com/brojonat/soldungen/service/server"
	"github.com/brojonat/soldungen/service/views"
)

func main() {
	// Load and validate configuration from environment
	// This fails fast if any required config is missing or invalid
	cfg := config.MustLoad()

	logger := cfg.Logger(os.Stderr)
	logger.Info("starting server",
		"addr", cfg.ServerAddr,
		"log_level", cfg.LogLevel,
		"explorer", cfg.SolscanBaseURL,
	)

	reg, err := labels.Load(cfg.AliasesFile)
	if err != nil {
		logger.Error("failed to load address labels", "error", err)
		os.Exit(1)
	}
	logger.Info("address labels loaded", "count", reg.Len(), "file", cfg.AliasesFile)

	m := metrics.NewMetrics(prometheus.DefaultRegisterer)

	api := client.New(client.Config{
		BaseURL:       cfg.SolscanBaseURL,
		PublicBaseURL: cfg.SolscanPublicBaseURL,
		APIKey:        cfg.SolscanAPIKey,
		HTTPClient:    &http.Client{Timeout: cfg.HTTPTimeout},
		Logger:        logger.With("component", "client"),
		Metrics:       m,
	})

	v := views.New(views.Config{
		API:     api,
		Labels:  reg,
		Logger:  logger.With("component", "views"),
		Metrics: m,
	})

	httpServer := server.New(cfg.ServerAddr, v, m, logger).WithUpstreamTimeout(cfg.HTTPTimeout)
	if err := httpServer.WithTemplates(); err != nil {
		logger.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	// Start HTTP server in background
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- httpServer.Start()
	}()

	// Wait for shutdown signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", "error", err)
		os.Exit(1)
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())

		// Graceful shutdown with timeout
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown server gracefully", "error", err)
			os.Exit(1)
		}

		logger.Info("server shutdown complete")
	}
}
