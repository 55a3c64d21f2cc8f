// Package rpc serves the snap's RPC methods and transaction insight over
// HTTP, for companion sites and local tooling.
package rpc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teabag-labs/teabag-snap/internal/core/ports/driving"
	"github.com/teabag-labs/teabag-snap/internal/logger"
)

var log = logger.New("[http]")

// ErrMissingService is returned when a required service is not provided.
var ErrMissingService = errors.New("rpc: rpc and insight services are required")

// Deps holds what the server needs. Only RPC and Insight are required.
type Deps struct {
	RPC     driving.RPCService
	Insight driving.InsightService

	// Metrics is mounted at /metrics.
	Metrics http.Handler
	// MCP is mounted at /mcp.
	MCP http.Handler
	// Middleware runs before every handler, after request IDs are assigned.
	Middleware []gin.HandlerFunc
}

// Server is the HTTP API server.
type Server struct {
	router *gin.Engine
	deps   Deps
}

// NewServer creates a server with all routes registered.
func NewServer(deps Deps) (*Server, error) {
	if deps.RPC == nil || deps.Insight == nil {
		return nil, ErrMissingService
	}

	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router: gin.New(),
		deps:   deps,
	}
	s.router.Use(gin.Recovery())
	s.router.Use(requestIDMiddleware())
	s.router.Use(bodyLimitMiddleware(1 << 20))
	s.router.Use(deps.Middleware...)
	s.router.Use(loggingMiddleware())

	s.setupRoutes()
	return s, nil
}

// Router returns the gin engine, for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.POST("/rpc", s.handleRPC)
	s.router.POST("/insight", s.handleInsight)

	if s.deps.Metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.deps.Metrics))
	}
	if s.deps.MCP != nil {
		s.router.Any("/mcp", gin.WrapH(s.deps.MCP))
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http: %w", err)
	}
	return nil
}
