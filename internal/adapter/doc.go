// Package adapter defines the southbound motor adapter contract for the
// Motion Control Container.
//
// The container never drives hardware directly: every directive crosses the
// IMotorAdapter boundary. The in-tree logstub driver only logs the intent;
// real drivers live outside this module and plug in behind the same
// interface. Driver errors are normalized to INVALID_RANGE, BUSY,
// UNAVAILABLE, INTERNAL via deterministic token tables.
package adapter
