// Package motion tracks the last commanded motion of the vehicle.
//
// The tracker is a small state machine over {idle, forward, reverse,
// rotating-left, rotating-right}. Every directive is permitted from every
// state; the machine records what was commanded, it never gates dispatch.
package motion
