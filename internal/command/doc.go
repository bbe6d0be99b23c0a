// Package command implements command parsing and the dispatch orchestrator
// for the Motion Control Container.
//
// ParseCommand turns one datagram payload into a Command; the Orchestrator
// routes the directive to the active motor adapter, writes audit records,
// emits events to the telemetry hub, and updates the motion tracker.
package command
