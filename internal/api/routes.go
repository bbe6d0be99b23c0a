package api

import (
	"net/http"
	"time"
)

// RegisterRoutes registers all v1 endpoints.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	apiV1 := "/api/v1"

	// Health endpoint (no auth required)
	mux.HandleFunc(apiV1+"/health", s.handleHealth)

	if s.authMiddleware == nil {
		mux.HandleFunc(apiV1+"/state", s.handleState)
		mux.HandleFunc(apiV1+"/telemetry", s.handleTelemetry)
		return
	}

	mux.HandleFunc(apiV1+"/state", s.authMiddleware.RequireAuth(s.handleState))
	mux.HandleFunc(apiV1+"/telemetry", s.authMiddleware.RequireAuth(s.handleTelemetry))
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"status":        "ok",
		"uptimeSeconds": int64(time.Since(s.startTime).Seconds()),
	})
}

// handleState handles GET /state
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	if s.tracker == nil {
		WriteError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "Motion tracker not available")
		return
	}

	WriteSuccess(w, s.tracker.Snapshot())
}

// handleTelemetry handles GET /telemetry (SSE stream)
func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	if s.telemetryHub == nil {
		WriteError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "Telemetry hub not available")
		return
	}

	if err := s.telemetryHub.ServeSSE(w, r); err != nil {
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "Telemetry stream failed")
	}
}
