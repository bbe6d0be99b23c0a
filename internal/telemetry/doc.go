// Package telemetry implements the telemetry hub for the Motion Control
// Container.
//
// The hub fans out dispatch and rejection events to SSE clients and retains
// the last N events in a ring buffer for reconnection support using
// Last-Event-ID headers. There is a single event stream: the container
// controls exactly one vehicle.
package telemetry
