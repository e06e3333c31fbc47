package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brojonat/soldungen/service/metrics"
	"github.com/brojonat/soldungen/service/views"
)

const (
	readTimeout  = 15 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second

	// renderMargin is the time left for rendering after the slowest
	// explorer call has returned or timed out.
	renderMargin = 10 * time.Second
)

// Server represents the HTTP server for the explorer pages.
type Server struct {
	addr            string
	views           *views.Views
	renderer        *TemplateRenderer
	metrics         *metrics.Metrics
	gatherer        prometheus.Gatherer
	upstreamTimeout time.Duration
	logger          *slog.Logger
	server          *http.Server
}

// New creates a new HTTP server with the given dependencies.
// The metrics is optional - if nil, the metrics endpoint won't be available.
func New(addr string, v *views.Views, m *metrics.Metrics, logger *slog.Logger) *Server {
	return &Server{
		addr:     addr,
		views:    v,
		metrics:  m,
		gatherer: prometheus.DefaultGatherer,
		logger:   logger,
	}
}

// WithTemplates adds template rendering support to the server using embedded files
func (s *Server) WithTemplates() error {
	renderer, err := NewTemplateRenderer(s.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize templates: %w", err)
	}
	s.renderer = renderer
	s.logger.Info("HTML templates loaded from embedded files")
	return nil
}

// WithGatherer sets the registry served on /metrics. It should be the one the
// metrics were registered with.
func (s *Server) WithGatherer(g prometheus.Gatherer) *Server {
	s.gatherer = g
	return s
}

// WithUpstreamTimeout tells the server how long one explorer call may take.
// Page sections load concurrently, so the write deadline is stretched to
// cover a single timed-out call plus rendering.
func (s *Server) WithUpstreamTimeout(d time.Duration) *Server {
	s.upstreamTimeout = d
	return s
}

// WriteTimeout is the write deadline applied to every response.
func (s *Server) WriteTimeout() time.Duration {
	if d := s.upstreamTimeout + renderMargin; d > writeTimeout {
		return d
	}
	return writeTimeout
}

// Handler builds the routed, middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// HTML pages (if template renderer is configured)
	if s.renderer != nil {
		s.page(mux, "GET /{$}", "/", handleHome(s.views, s.renderer, s.logger))
		s.page(mux, "GET /market", "/market", handleMarket(s.views, s.renderer, s.logger))
		s.page(mux, "GET /tokens", "/tokens", handleTokens(s.views, s.renderer, s.logger))
		s.page(mux, "GET /token/{id}", "/token/{id}", handleToken(s.views, s.renderer, s.logger))
		s.page(mux, "GET /nfts", "/nfts", handleNFTs(s.views, s.renderer, s.logger))
		s.page(mux, "GET /nfts/{id}", "/nfts/{id}", handleCollection(s.views, s.renderer, s.logger))
		s.page(mux, "GET /transactions", "/transactions", handleTransactions(s.views, s.renderer, s.logger))
		s.logger.Info("HTML page endpoints enabled")
	} else {
		s.logger.Warn("template renderer not configured, pages disabled")
	}

	// Health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics endpoint (if metrics collector is configured)
	if s.metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
		s.logger.Info("Prometheus metrics endpoint enabled")
	}

	// Wrap mux with CORS middleware
	return corsMiddleware(mux)
}

func (s *Server) page(mux *http.ServeMux, pattern, name string, h http.Handler) {
	mux.Handle(pattern, metrics.HTTPMetricsMiddleware(s.metrics, name)(h))
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.server = s.httpServer()

	s.logger.Info("starting HTTP server", "addr", s.addr, "write_timeout", s.server.WriteTimeout)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func (s *Server) httpServer() *http.Server {
	return &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: s.WriteTimeout(),
		IdleTimeout:  idleTimeout,
	}
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// corsMiddleware adds CORS headers to all responses and handles OPTIONS preflight requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "3600")

		// Handle preflight OPTIONS requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
