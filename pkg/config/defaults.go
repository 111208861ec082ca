package config

import (
	"os"
	"time"
)

// Default values for configuration.
const (
	DefaultExtension      = "log"
	DefaultOutput         = "text"
	DefaultZ              = 1.5
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvRoot      = "RADLOG_ROOT"
	EnvExtension = "RADLOG_EXT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Extension:      DefaultExtension,
		Output:         DefaultOutput,
		RemoveOutliers: false,
		Z:              DefaultZ,
	}
}

// FromEnvironment returns the default configuration with environment
// variable overrides applied, for runs without a config file.
func FromEnvironment() *Config {
	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()
	return cfg
}

// applyEnvironmentOverrides applies environment variable overrides to
// the config.
func (c *Config) applyEnvironmentOverrides() {
	if root := os.Getenv(EnvRoot); root != "" {
		c.Root = root
	}
	if ext := os.Getenv(EnvExtension); ext != "" {
		c.Extension = ext
	}
}
