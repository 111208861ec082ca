// Package config provides configuration loading and validation for
// radlog.
package config

import "time"

// Config is the root configuration structure, loadable from YAML.
// Command-line flags override anything set here.
type Config struct {
	// Root is the directory to discover stat logs in. Empty means the
	// current working directory.
	Root string `yaml:"root,omitempty"`

	// Extension is the stat log file extension, without the dot.
	Extension string `yaml:"extension"`

	// Output is the report format (text or json).
	Output string `yaml:"output"`

	// RemoveOutliers enables IQR outlier rejection on interval deltas.
	RemoveOutliers bool `yaml:"remove_outliers"`

	// Z is the IQR sensitivity multiplier used when RemoveOutliers is
	// set.
	Z float64 `yaml:"z"`

	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// WebhookTrigger controls when a webhook fires.
type WebhookTrigger string

const (
	WebhookTriggerOnIssues WebhookTrigger = "on_issues"
	WebhookTriggerAlways   WebhookTrigger = "always"
	WebhookTriggerNever    WebhookTrigger = "never"
)

// WebhookConfig defines a report delivery endpoint.
type WebhookConfig struct {
	Name    string         `yaml:"name,omitempty"`
	URL     string         `yaml:"url"`
	Token   string         `yaml:"token,omitempty"`
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`
	Timeout time.Duration  `yaml:"timeout,omitempty"`
}
