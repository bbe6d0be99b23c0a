// Package fake provides a fake motor adapter implementation for testing.
package fake

import (
	"context"
	"errors"
	"sync"

	"github.com/motion-control/mcc/internal/adapter"
)

// Call records one directive the fake adapter received.
type Call struct {
	Directive string
	Speed     int
}

// FakeAdapter implements IMotorAdapter for testing purposes. It records
// every call and can simulate driver errors.
type FakeAdapter struct {
	adapter.AdapterBase

	mu    sync.Mutex
	calls []Call
	state adapter.MotorState

	// Error simulation
	simulateErrors bool
	errorMessage   string
}

// Compile-time assertion that FakeAdapter implements IMotorAdapter
var _ adapter.IMotorAdapter = (*FakeAdapter)(nil)

// NewFakeAdapter creates a new fake adapter for testing.
func NewFakeAdapter(driverID string) *FakeAdapter {
	return &FakeAdapter{
		AdapterBase: adapter.AdapterBase{
			DriverID: driverID,
			Model:    "Fake-Motor-Test",
			Status:   "online",
		},
		state: adapter.MotorState{Directive: "stop", Speed: 0},
	}
}

// SimulateError makes every subsequent call fail with the given driver
// error message.
func (f *FakeAdapter) SimulateError(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.simulateErrors = true
	f.errorMessage = message
}

// ClearError stops error simulation.
func (f *FakeAdapter) ClearError() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.simulateErrors = false
}

// Calls returns a copy of the recorded calls.
func (f *FakeAdapter) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// Forward records a forward directive.
func (f *FakeAdapter) Forward(ctx context.Context, speed int) error {
	return f.record(ctx, "forward", speed)
}

// Backward records a backward directive.
func (f *FakeAdapter) Backward(ctx context.Context, speed int) error {
	return f.record(ctx, "backward", speed)
}

// RotateLeft records a rotate left directive.
func (f *FakeAdapter) RotateLeft(ctx context.Context, speed int) error {
	return f.record(ctx, "rotateLeft", speed)
}

// RotateRight records a rotate right directive.
func (f *FakeAdapter) RotateRight(ctx context.Context, speed int) error {
	return f.record(ctx, "rotateRight", speed)
}

// Stop records a stop directive.
func (f *FakeAdapter) Stop(ctx context.Context, speed int) error {
	return f.record(ctx, "stop", speed)
}

// GetState returns the last recorded motion.
func (f *FakeAdapter) GetState(ctx context.Context) (*adapter.MotorState, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.simulateErrors {
		return nil, errors.New(f.errorMessage)
	}
	state := f.state
	return &state, nil
}

func (f *FakeAdapter) record(ctx context.Context, directive string, speed int) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.simulateErrors {
		return errors.New(f.errorMessage)
	}

	f.calls = append(f.calls, Call{Directive: directive, Speed: speed})
	f.state = adapter.MotorState{Directive: directive, Speed: speed}
	return nil
}
