package adapter

import (
	"context"
)

// MotorState represents the last applied motion of the motor driver.
type MotorState struct {
	Directive string `json:"directive"`
	Speed     int    `json:"speed"`
}

// IMotorAdapter defines the stable southbound adapter contract. Speed is the
// raw magnitude from the wire; drivers that enforce limits reject with a
// range error of their own, which callers normalize via NormalizeVendorError.
type IMotorAdapter interface {
	// Forward drives the vehicle forward at the given speed.
	Forward(ctx context.Context, speed int) error

	// Backward drives the vehicle backward at the given speed.
	Backward(ctx context.Context, speed int) error

	// RotateLeft rotates the vehicle counter-clockwise at the given speed.
	RotateLeft(ctx context.Context, speed int) error

	// RotateRight rotates the vehicle clockwise at the given speed.
	RotateRight(ctx context.Context, speed int) error

	// Stop halts the vehicle. The speed argument is forwarded unchanged
	// even though most drivers ignore it.
	Stop(ctx context.Context, speed int) error

	// GetState returns the last applied motion.
	GetState(ctx context.Context) (*MotorState, error)
}

// AdapterBase provides common functionality for adapter implementations.
type AdapterBase struct {
	// DriverID identifies the motor driver this adapter controls
	DriverID string

	// Model identifies the driver model
	Model string

	// Status indicates the current driver status
	Status string
}

// GetDriverID returns the driver identifier.
func (a *AdapterBase) GetDriverID() string {
	return a.DriverID
}

// GetModel returns the driver model.
func (a *AdapterBase) GetModel() string {
	return a.Model
}

// GetStatus returns the driver status.
func (a *AdapterBase) GetStatus() string {
	return a.Status
}

// SetStatus updates the driver status.
func (a *AdapterBase) SetStatus(status string) {
	a.Status = status
}
