// Table-driven error mapping that normalizes driver-specific error messages
// to standardized container error codes without heuristics.

package adapter

import (
	"errors"
	"fmt"
	"strings"
)

// Normalized container errors
var (
	ErrInvalidRange = errors.New("INVALID_RANGE")
	ErrBusy         = errors.New("BUSY")
	ErrUnavailable  = errors.New("UNAVAILABLE")
	ErrInternal     = errors.New("INTERNAL")
)

// VendorMap defines the error token mapping for a specific driver vendor.
type VendorMap struct {
	Range       []string // Tokens that map to INVALID_RANGE
	Busy        []string // Tokens that map to BUSY
	Unavailable []string // Tokens that map to UNAVAILABLE
}

// VendorErrorMappings contains the deterministic error mapping tables for all
// supported motor driver vendors.
//
// How to extend safely:
// 1. Add new vendor entries to this map with specific token arrays
// 2. Test each token → exact normalized error mapping
// 3. Unknown tokens automatically map to INTERNAL
// 4. Use NormalizeVendorErrorWithVendor(driverErr, payload, "vendorID") for specific vendors
// 5. Fallback to "generic" mapping for unknown vendors
var VendorErrorMappings = map[string]VendorMap{
	"pwmdrive": {
		Range: []string{
			"SPEED_OUT_OF_RANGE",
			"DUTY_OUT_OF_RANGE",
			"INVALID_SPEED",
			"INVALID_DUTY_CYCLE",
			"PARAMETER_OUT_OF_RANGE",
		},
		Busy: []string{
			"MOTOR_BUSY",
			"COMMAND_IN_PROGRESS",
			"COMMAND_QUEUE_FULL",
			"RATE_LIMITED",
		},
		Unavailable: []string{
			"DRIVER_OFFLINE",
			"ESTOP_ENGAGED",
			"POWER_FAULT",
			"CONTROLLER_REBOOTING",
			"NOT_READY",
			"OFFLINE",
		},
	},
	"generic": {
		Range: []string{
			"OUT_OF_RANGE",
			"INVALID_PARAMETER",
			"INVALID_RANGE",
			"BAD_VALUE",
			"RANGE_ERROR",
		},
		Busy: []string{
			"BUSY",
			"RETRY",
			"RATE_LIMIT",
			"TOO_MANY_REQUESTS",
			"BACKOFF",
		},
		Unavailable: []string{
			"UNAVAILABLE",
			"REBOOT",
			"OFFLINE",
			"NOT_READY",
		},
	},
}

// VendorError wraps a driver error with diagnostic details.
type VendorError struct {
	Code     error       // Normalized container code
	Original error       // Driver error
	Details  interface{} // Driver payload (opaque)
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("%v (driver: %v)", e.Code, e.Original)
}

func (e *VendorError) Unwrap() error {
	return e.Code
}

// NormalizeVendorError maps driver errors to normalized codes using
// table-driven matching with the generic vendor table.
func NormalizeVendorError(driverErr error, driverPayload interface{}) error {
	return NormalizeVendorErrorWithVendor(driverErr, driverPayload, "generic")
}

// NormalizeVendorErrorWithVendor maps driver errors using specific vendor
// mapping tables.
func NormalizeVendorErrorWithVendor(driverErr error, driverPayload interface{}, vendorID string) error {
	if driverErr == nil {
		return nil
	}

	msg := driverErr.Error()
	code := mapVendorErrorToCode(msg, vendorID)

	return &VendorError{
		Code:     code,
		Original: driverErr,
		Details:  driverPayload,
	}
}

// mapVendorErrorToCode maps a driver error message to a normalized error code
// using table-driven matching.
func mapVendorErrorToCode(msg string, vendorID string) error {
	// Get vendor mapping, fallback to generic if vendor not found
	vendorMap, exists := VendorErrorMappings[vendorID]
	if !exists {
		vendorMap = VendorErrorMappings["generic"]
	}

	upperMsg := strings.ToUpper(msg)

	for _, token := range vendorMap.Range {
		if strings.Contains(upperMsg, strings.ToUpper(token)) {
			return ErrInvalidRange
		}
	}

	for _, token := range vendorMap.Busy {
		if strings.Contains(upperMsg, strings.ToUpper(token)) {
			return ErrBusy
		}
	}

	for _, token := range vendorMap.Unavailable {
		if strings.Contains(upperMsg, strings.ToUpper(token)) {
			return ErrUnavailable
		}
	}

	// Unknown token maps to INTERNAL
	return ErrInternal
}
