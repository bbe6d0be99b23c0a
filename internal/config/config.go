package config

import (
	"time"
)

// Config represents the complete configuration for the Motion Control
// Container.
type Config struct {
	Network NetworkConfig `yaml:"network"`
	Parsing ParsingConfig `yaml:"parsing"`
	Timing  TimingConfig  `yaml:"timing"`
	Audit   AuditConfig   `yaml:"audit"`
	API     APIConfig     `yaml:"api"`
}

// NetworkConfig holds UDP listener settings.
type NetworkConfig struct {
	// ListenAddr is the interface to bind; empty or "0.0.0.0" binds all.
	ListenAddr string `yaml:"listenAddr"`
	// ListenPort must match the sending client's destination port.
	ListenPort int `yaml:"listenPort"`
	// MaxDatagramSize bounds the read buffer; larger datagrams truncate.
	MaxDatagramSize int `yaml:"maxDatagramSize"`
}

// ParsingConfig holds command parsing settings.
type ParsingConfig struct {
	// Strict reproduces the reference behavior: a non-numeric speed token
	// or a non-UTF-8 payload aborts the receive loop instead of being
	// rejected and skipped.
	Strict bool `yaml:"strict"`
}

// TimingConfig holds timeout and buffering settings.
type TimingConfig struct {
	// CommandTimeoutSec bounds each adapter call.
	CommandTimeoutSec int `yaml:"commandTimeoutSec"`
	// EventBufferSize is the telemetry ring buffer capacity.
	EventBufferSize int `yaml:"eventBufferSize"`
}

// CommandTimeout returns the per-command adapter timeout as a duration.
func (c *Config) CommandTimeout() time.Duration {
	return time.Duration(c.Timing.CommandTimeoutSec) * time.Second
}

// AuditConfig holds audit trail settings.
type AuditConfig struct {
	Dir        string `yaml:"dir"`
	MaxSizeMB  int    `yaml:"maxSizeMb"`
	MaxBackups int    `yaml:"maxBackups"`
}

// APIConfig holds status API settings.
type APIConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	// AuthSecret enables HS256 bearer-token auth on non-health endpoints
	// when non-empty. Incoming UDP commands are never authenticated.
	AuthSecret string `yaml:"authSecret"`
}

// Default creates the default configuration. Defaults alone yield a valid
// config; the container runs with zero external configuration.
func Default() *Config {
	return &Config{
		Network: NetworkConfig{
			ListenAddr:      "0.0.0.0",
			ListenPort:      8080,
			MaxDatagramSize: 1024,
		},
		Parsing: ParsingConfig{
			Strict: false,
		},
		Timing: TimingConfig{
			CommandTimeoutSec: 5,
			EventBufferSize:   64,
		},
		Audit: AuditConfig{
			Dir:        "logs",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		API: APIConfig{
			Enabled: true,
			Addr:    ":8081",
		},
	}
}
