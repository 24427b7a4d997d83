package config

import (
	"fmt"
	"slices"
	"time"
)

// DefaultName is the name used in logs, traces and file lookup.
const DefaultName = "devportal"

// DefaultShutdownTimeout bounds how long components get to stop.
const DefaultShutdownTimeout = 15 * time.Second

var validEnvironments = []string{"development", "staging", "production"}

// BaseConfig identifies the running program.
type BaseConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`

	// ShutdownTimeout bounds OnStop hooks and component shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// ApplyDefaults applies default values to base configuration.
func (c *BaseConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Environment == "" {
		c.Environment = "production"
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Environment == "development" {
		c.Debug = true
	}
}

// Validate validates base configuration.
func (c *BaseConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("base.name is required")
	}
	if !slices.Contains(validEnvironments, c.Environment) {
		return fmt.Errorf("base.environment must be one of %v (got: %s)", validEnvironments, c.Environment)
	}
	return nil
}
