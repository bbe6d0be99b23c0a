// Ports (interfaces) for dispatcher operations.

package command

import (
	"context"
	"errors"
	"time"
)

// DispatcherPort defines the minimal interface the receiver needs from the
// orchestrator.
type DispatcherPort interface {
	Dispatch(ctx context.Context, cmd *Command) error
	ReportRejection(ctx context.Context, raw string, cause error)
}

// AuditLogger interface for writing audit records.
type AuditLogger interface {
	LogAction(ctx context.Context, action string, raw string, speed int, result string, latency time.Duration)
}

// MotionTracker interface for recording the last commanded motion.
type MotionTracker interface {
	Update(directive string, speed int)
}

// Parse rejection errors. All are recovered locally by default; in strict
// parsing mode ErrInvalidSpeed and ErrInvalidEncoding are fatal.
var (
	ErrInvalidFormat   = errors.New("invalid command format")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrInvalidSpeed    = errors.New("invalid speed")
	ErrInvalidEncoding = errors.New("invalid encoding")
)

// datagramKey is the context key type for per-datagram metadata.
type datagramKey string

const (
	senderKey      datagramKey = "sender"
	correlationKey datagramKey = "correlationId"
)

// WithDatagram annotates ctx with the sender address and correlation ID of
// the datagram being processed. The audit logger reads both back.
func WithDatagram(ctx context.Context, sender, correlationID string) context.Context {
	ctx = context.WithValue(ctx, senderKey, sender)
	return context.WithValue(ctx, correlationKey, correlationID)
}

// SenderFromContext returns the datagram sender address, if annotated.
func SenderFromContext(ctx context.Context) string {
	if sender, ok := ctx.Value(senderKey).(string); ok {
		return sender
	}
	return "unknown"
}

// CorrelationFromContext returns the datagram correlation ID, if annotated.
func CorrelationFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(correlationKey).(string); ok {
		return id
	}
	return ""
}
