// ============================================================================
// UnnamedEngine Configuration
// ============================================================================
//
// Package: internal/config
// File: config.go
// Purpose: Load the engine's YAML configuration file.
//
// Configuration items:
//   - pool: worker count and specialization timeout
//   - metrics: Prometheus HTTP server
//   - network: default health check target for the Networking specialization
//
// ============================================================================

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete engine configuration, loaded from YAML.
type Config struct {
	Pool struct {
		WorkerCount         int           `yaml:"worker_count"`
		SpecializeTimeout   time.Duration `yaml:"specialize_timeout"`
	} `yaml:"pool"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
		Port    int  `yaml:"port"`
	} `yaml:"metrics"`

	Network struct {
		HealthCheckAddr    string `yaml:"health_check_addr"`
		HealthCheckService string `yaml:"health_check_service"`
	} `yaml:"network"`
}

// Default returns a Config with reasonable defaults, used when no config
// file is supplied.
func Default() *Config {
	cfg := &Config{}
	cfg.Pool.WorkerCount = 4
	cfg.Pool.SpecializeTimeout = 5 * time.Second
	cfg.Metrics.Enabled = true
	cfg.Metrics.Port = 9090
	cfg.Network.HealthCheckAddr = "localhost:50051"
	cfg.Network.HealthCheckService = ""
	return cfg
}

// Load reads and parses the YAML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return cfg, nil
}
