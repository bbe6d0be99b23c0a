// Package config implements the configuration store for the Motion Control
// Container.
//
// Configuration merges compiled defaults, an optional YAML file (--config
// flag or MCC_CONFIG), and MCC_* environment overrides, then validates the
// result. The defaults alone are valid so the container can run with zero
// external configuration, matching the fixed-constant reference setup.
package config
