// Package server hosts the streamable HTTP MCP transport behind the
// request middleware chain.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bobmcallan/yfinance-mcp/internal/common"
)

// Server manages the HTTP server and routes.
type Server struct {
	mcp    http.Handler
	router *http.ServeMux
	server *http.Server
	logger *common.Logger
}

// New creates an HTTP server listening on :port that serves mcpHandler
// at /mcp.
func New(port string, mcpHandler http.Handler, logger *common.Logger) *Server {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	s := &Server{
		mcp:    mcpHandler,
		logger: logger,
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      s.withMiddleware(s.router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // statement lookups fan out to many series
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Start starts the HTTP server. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.logger.Info().
		Str("address", s.server.Addr).
		Str("url", fmt.Sprintf("http://localhost%s/mcp", s.server.Addr)).
		Msg("HTTP server starting")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
