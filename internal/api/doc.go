// Package api implements the HTTP status surface of the Motion Control
// Container.
//
// Endpoints: /api/v1/health (liveness, unauthenticated), /api/v1/state
// (last commanded motion), /api/v1/telemetry (SSE event stream). State and
// telemetry require a bearer token when an auth secret is configured. The
// API is read-only: motion commands arrive exclusively over UDP.
package api
