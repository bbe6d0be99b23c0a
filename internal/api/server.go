package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/motion-control/mcc/internal/auth"
	"github.com/motion-control/mcc/internal/motion"
)

// StatePort is the read-side interface the API needs from the motion
// tracker.
type StatePort interface {
	Snapshot() motion.Snapshot
}

// TelemetryPort is the interface the API needs from the telemetry hub.
type TelemetryPort interface {
	ServeSSE(w http.ResponseWriter, r *http.Request) error
}

// Server represents the HTTP status API server.
type Server struct {
	httpServer     *http.Server
	tracker        StatePort
	telemetryHub   TelemetryPort
	authMiddleware *auth.Middleware
	startTime      time.Time
}

// NewServer creates a new API server. authMiddleware may be nil, in which
// case all endpoints are unauthenticated (bench/dev mode).
func NewServer(tracker StatePort, telemetryHub TelemetryPort, authMiddleware *auth.Middleware) *Server {
	return &Server{
		tracker:        tracker,
		telemetryHub:   telemetryHub,
		authMiddleware: authMiddleware,
		startTime:      time.Now(),
	}
}

// Start starts the HTTP server. It blocks until the server stops.
func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)

	s.httpServer = &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	return nil
}
