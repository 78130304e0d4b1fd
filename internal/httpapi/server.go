// Package httpapi is the driving HTTP adapter: Bearer-auth middleware,
// the /health and /process handlers, and graceful server lifecycle.
package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tableingest/service/internal/core/ports/driving"
)

// Server is the HTTP adapter in front of the ingest service.
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	handler    http.Handler

	ingest driving.IngestService
	apiKey string
	logger *slog.Logger
}

// Config holds server configuration.
type Config struct {
	Host   string
	Port   int
	APIKey string
}

// NewServer builds the HTTP server and wires its routes.
func NewServer(cfg Config, ingest driving.IngestService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		router: http.NewServeMux(),
		ingest: ingest,
		apiKey: cfg.APIKey,
		logger: logger,
	}

	s.setupRoutes()

	logging := NewLoggingMiddleware(s.logger)
	recovery := NewRecoveryMiddleware(s.logger)
	s.handler = logging.Handler(recovery.Handler(s.router))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	auth := NewAuthMiddleware(s.apiKey)

	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.Handle("PUT /process", auth.Authenticate(http.HandlerFunc(s.handleProcess)))
}

// Start starts the HTTP server and blocks until SIGINT/SIGTERM triggers a
// graceful shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Stop gracefully shuts the server down, bounded by ctx.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the full middleware-wrapped handler for httptest-based
// scenario tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}
