package command

import (
	"context"
	"errors"
	"time"

	"github.com/motion-control/mcc/internal/adapter"
	"github.com/motion-control/mcc/internal/config"
	"github.com/motion-control/mcc/internal/telemetry"
)

// Orchestrator routes parsed commands to the active motor adapter.
type Orchestrator struct {
	// Active motor adapter
	activeAdapter adapter.IMotorAdapter

	// Telemetry hub for event publishing
	telemetryHub *telemetry.Hub

	// Configuration for command timeouts
	config *config.Config

	// Audit logger
	auditLogger AuditLogger

	// Motion tracker for the last commanded motion
	tracker MotionTracker
}

// Compile-time assertion that Orchestrator implements DispatcherPort
var _ DispatcherPort = (*Orchestrator)(nil)

// NewOrchestrator creates a new command orchestrator.
func NewOrchestrator(telemetryHub *telemetry.Hub, cfg *config.Config) *Orchestrator {
	return &Orchestrator{
		telemetryHub: telemetryHub,
		config:       cfg,
	}
}

// SetActiveAdapter sets the active motor adapter.
func (o *Orchestrator) SetActiveAdapter(adapter adapter.IMotorAdapter) {
	o.activeAdapter = adapter
}

// SetAuditLogger sets the audit logger.
func (o *Orchestrator) SetAuditLogger(logger AuditLogger) {
	o.auditLogger = logger
}

// SetMotionTracker sets the motion tracker.
func (o *Orchestrator) SetMotionTracker(tracker MotionTracker) {
	o.tracker = tracker
}

// Dispatch routes a parsed command to the active adapter with the configured
// command timeout. Every call produces exactly one audit record and one
// telemetry event. The parsed speed is forwarded to the adapter unchanged.
func (o *Orchestrator) Dispatch(ctx context.Context, cmd *Command) error {
	start := time.Now()

	if o.activeAdapter == nil {
		o.logAudit(ctx, string(cmd.Directive), cmd.Raw, cmd.Speed, "UNAVAILABLE", time.Since(start))
		return adapter.ErrUnavailable
	}

	timeout := o.commandTimeout()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := o.invokeAdapter(ctx, cmd)
	latency := time.Since(start)

	if err != nil {
		// Map driver error to normalized code
		normalizedErr := adapter.NormalizeVendorError(err, nil)
		o.logAudit(ctx, string(cmd.Directive), cmd.Raw, cmd.Speed, "ERROR", latency)

		// Publish fault event
		o.publishFaultEvent(ctx, normalizedErr, "Failed to dispatch "+string(cmd.Directive))

		return normalizedErr
	}

	o.logAudit(ctx, string(cmd.Directive), cmd.Raw, cmd.Speed, "SUCCESS", latency)

	if o.tracker != nil {
		o.tracker.Update(string(cmd.Directive), cmd.Speed)
	}

	o.publishDispatchedEvent(ctx, cmd)

	return nil
}

// ReportRejection records a datagram that was rejected before dispatch.
// Rejections never reach the adapter; the loop continues with the next
// datagram.
func (o *Orchestrator) ReportRejection(ctx context.Context, raw string, cause error) {
	outcome := rejectionOutcome(cause)
	o.logAudit(ctx, "reject", raw, 0, outcome, 0)
	o.publishRejectedEvent(ctx, raw, outcome)
}

// invokeAdapter calls the adapter method matching the directive.
func (o *Orchestrator) invokeAdapter(ctx context.Context, cmd *Command) error {
	switch cmd.Directive {
	case DirectiveForward:
		return o.activeAdapter.Forward(ctx, cmd.Speed)
	case DirectiveBackward:
		return o.activeAdapter.Backward(ctx, cmd.Speed)
	case DirectiveRotateLeft:
		return o.activeAdapter.RotateLeft(ctx, cmd.Speed)
	case DirectiveRotateRight:
		return o.activeAdapter.RotateRight(ctx, cmd.Speed)
	case DirectiveStop:
		return o.activeAdapter.Stop(ctx, cmd.Speed)
	default:
		return adapter.ErrInternal
	}
}

// commandTimeout returns the configured per-command timeout.
func (o *Orchestrator) commandTimeout() time.Duration {
	if o.config != nil && o.config.Timing.CommandTimeoutSec > 0 {
		return o.config.CommandTimeout()
	}
	return 5 * time.Second
}

// rejectionOutcome maps a parse rejection cause to its audit outcome code.
func rejectionOutcome(cause error) string {
	switch {
	case errors.Is(cause, ErrInvalidFormat):
		return "INVALID_FORMAT"
	case errors.Is(cause, ErrUnknownCommand):
		return "UNKNOWN_COMMAND"
	case errors.Is(cause, ErrInvalidSpeed):
		return "INVALID_SPEED"
	case errors.Is(cause, ErrInvalidEncoding):
		return "INVALID_ENCODING"
	default:
		return "ERROR"
	}
}

// publishDispatchedEvent publishes a directive dispatched event.
func (o *Orchestrator) publishDispatchedEvent(ctx context.Context, cmd *Command) {
	if o.telemetryHub == nil {
		return // Skip if no telemetry hub
	}

	event := telemetry.Event{
		Type: "directiveDispatched",
		Data: map[string]interface{}{
			"directive":     string(cmd.Directive),
			"speed":         cmd.Speed,
			"sender":        SenderFromContext(ctx),
			"correlationId": CorrelationFromContext(ctx),
			"ts":            time.Now().UTC().Format(time.RFC3339),
		},
	}

	if err := o.telemetryHub.Publish(event); err != nil {
		o.publishFaultEvent(ctx, err, "Failed to publish dispatched event")
	}
}

// publishRejectedEvent publishes a command rejected event.
func (o *Orchestrator) publishRejectedEvent(ctx context.Context, raw, outcome string) {
	if o.telemetryHub == nil {
		return // Skip if no telemetry hub
	}

	event := telemetry.Event{
		Type: "commandRejected",
		Data: map[string]interface{}{
			"raw":           raw,
			"code":          outcome,
			"sender":        SenderFromContext(ctx),
			"correlationId": CorrelationFromContext(ctx),
			"ts":            time.Now().UTC().Format(time.RFC3339),
		},
	}

	if err := o.telemetryHub.Publish(event); err != nil {
		o.publishFaultEvent(ctx, err, "Failed to publish rejected event")
	}
}

// publishFaultEvent publishes a fault event.
func (o *Orchestrator) publishFaultEvent(ctx context.Context, err error, message string) {
	if o.telemetryHub == nil {
		return // Skip if no telemetry hub
	}

	event := telemetry.Event{
		Type: "fault",
		Data: map[string]interface{}{
			"code":          err.Error(),
			"message":       message,
			"correlationId": CorrelationFromContext(ctx),
			"ts":            time.Now().UTC().Format(time.RFC3339),
		},
	}

	// Fault publish failures are dropped to avoid recursion.
	_ = o.telemetryHub.Publish(event)
}

// logAudit logs an audit record for a command action.
func (o *Orchestrator) logAudit(ctx context.Context, action, raw string, speed int, result string, latency time.Duration) {
	if o.auditLogger != nil {
		o.auditLogger.LogAction(ctx, action, raw, speed, result, latency)
	}
}
