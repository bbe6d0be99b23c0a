// Package logstub provides the placeholder motor driver.
//
// Each directive is logged and acknowledged without touching hardware. This
// is the driver the container ships with; a hardware-control module replaces
// it behind the same IMotorAdapter interface.
package logstub

import (
	"context"
	"sync"

	"github.com/motion-control/mcc/internal/adapter"
	"github.com/motion-control/mcc/pkg/logger"
)

// Adapter implements IMotorAdapter by logging each directive.
type Adapter struct {
	adapter.AdapterBase

	mu    sync.Mutex
	state adapter.MotorState
}

// Compile-time assertion that Adapter implements IMotorAdapter
var _ adapter.IMotorAdapter = (*Adapter)(nil)

// New creates a new log-only motor adapter.
func New() *Adapter {
	return &Adapter{
		AdapterBase: adapter.AdapterBase{
			DriverID: "logstub-01",
			Model:    "LogStub",
			Status:   "online",
		},
		state: adapter.MotorState{Directive: "stop", Speed: 0},
	}
}

// Forward logs a forward drive intent.
func (a *Adapter) Forward(ctx context.Context, speed int) error {
	return a.apply(ctx, "forward", speed, "→ Forward speed %d")
}

// Backward logs a backward drive intent.
func (a *Adapter) Backward(ctx context.Context, speed int) error {
	return a.apply(ctx, "backward", speed, "→ Backward speed %d")
}

// RotateLeft logs a counter-clockwise rotation intent.
func (a *Adapter) RotateLeft(ctx context.Context, speed int) error {
	return a.apply(ctx, "rotateLeft", speed, "→ Rotate left speed %d")
}

// RotateRight logs a clockwise rotation intent.
func (a *Adapter) RotateRight(ctx context.Context, speed int) error {
	return a.apply(ctx, "rotateRight", speed, "→ Rotate right speed %d")
}

// Stop logs a stop intent.
func (a *Adapter) Stop(ctx context.Context, speed int) error {
	return a.apply(ctx, "stop", speed, "→ Stop %d")
}

// GetState returns the last logged motion.
func (a *Adapter) GetState(ctx context.Context) (*adapter.MotorState, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	state := a.state
	return &state, nil
}

func (a *Adapter) apply(ctx context.Context, directive string, speed int, format string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	logger.Log.Infof(format, speed)

	a.mu.Lock()
	a.state = adapter.MotorState{Directive: directive, Speed: speed}
	a.mu.Unlock()

	return nil
}
