package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// Load merges defaults + optional YAML file + MCC_* env overrides.
//
// The file path is taken from the path argument if non-empty, otherwise from
// the MCC_CONFIG environment variable. A missing explicit file is an error; a
// missing implicit one is not.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("MCC_CONFIG")
	}

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			if explicit || !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile merges a YAML config file into cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	return nil
}

// applyEnvOverrides applies MCC_* environment variables to the config.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("MCC_LISTEN_ADDR"); val != "" {
		cfg.Network.ListenAddr = val
	}

	if val := os.Getenv("MCC_LISTEN_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.Network.ListenPort = port
		}
	}

	if val := os.Getenv("MCC_MAX_DATAGRAM_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			cfg.Network.MaxDatagramSize = size
		}
	}

	if val := os.Getenv("MCC_PARSING_STRICT"); val != "" {
		if strict, err := strconv.ParseBool(val); err == nil {
			cfg.Parsing.Strict = strict
		}
	}

	if val := os.Getenv("MCC_COMMAND_TIMEOUT_SEC"); val != "" {
		if sec, err := strconv.Atoi(val); err == nil {
			cfg.Timing.CommandTimeoutSec = sec
		}
	}

	if val := os.Getenv("MCC_EVENT_BUFFER_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			cfg.Timing.EventBufferSize = size
		}
	}

	if val := os.Getenv("MCC_AUDIT_DIR"); val != "" {
		cfg.Audit.Dir = val
	}

	if val := os.Getenv("MCC_API_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			cfg.API.Enabled = enabled
		}
	}

	if val := os.Getenv("MCC_API_ADDR"); val != "" {
		cfg.API.Addr = val
	}

	if val := os.Getenv("MCC_API_AUTH_SECRET"); val != "" {
		cfg.API.AuthSecret = val
	}
}

// ListenAddress returns the host:port string the UDP listener binds to.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Network.ListenAddr, c.Network.ListenPort)
}
