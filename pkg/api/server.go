package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cqusn/smartcar/pkg/logging"
)

// Routes builds the router. gatherer backs the /metrics endpoint.
func (s *Server) Routes(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		if s.config.APIKey != "" {
			r.Use(apiKeyMiddleware(s.config.APIKey))
		}

		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))
		r.Get("/schema", s.metrics.InstrumentHandler("GET", "/api/v1/schema", s.handleSchema))
		r.Get("/report", s.metrics.InstrumentHandler("GET", "/api/v1/report", s.handleReport))
		r.Get("/records", s.metrics.InstrumentHandler("GET", "/api/v1/records", s.handleListRecords))
		r.Get("/records/{index}", s.metrics.InstrumentHandler("GET", "/api/v1/records/{index}", s.handleGetRecord))
	})

	return r
}

// StartServer serves source until ctx is cancelled, then shuts down gracefully
func StartServer(ctx context.Context, source RecordSource, config ServerConfig, logger *zap.Logger) error {
	logger = logging.OrNop(logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	server := NewServer(source, config, NewMetrics(registry), logger)
	httpServer := &http.Server{
		Addr:              config.Addr,
		Handler:           server.Routes(registry),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting smartcar API server", zap.String("addr", config.Addr), zap.Int("records", source.Len()))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down smartcar API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
