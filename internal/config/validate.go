package config

import (
	"fmt"
)

// Validate checks the configuration for structural errors.
func Validate(cfg *Config) error {
	if cfg.Network.ListenPort < 1 || cfg.Network.ListenPort > 65535 {
		return fmt.Errorf("network.listenPort must be in 1..65535, got %d", cfg.Network.ListenPort)
	}

	if cfg.Network.MaxDatagramSize <= 0 {
		return fmt.Errorf("network.maxDatagramSize must be positive, got %d", cfg.Network.MaxDatagramSize)
	}

	if cfg.Timing.CommandTimeoutSec <= 0 {
		return fmt.Errorf("timing.commandTimeoutSec must be positive, got %d", cfg.Timing.CommandTimeoutSec)
	}

	if cfg.Timing.EventBufferSize <= 0 {
		return fmt.Errorf("timing.eventBufferSize must be positive, got %d", cfg.Timing.EventBufferSize)
	}

	if cfg.Audit.Dir == "" {
		return fmt.Errorf("audit.dir must not be empty")
	}

	if cfg.API.Enabled && cfg.API.Addr == "" {
		return fmt.Errorf("api.addr must not be empty when the API is enabled")
	}

	return nil
}
