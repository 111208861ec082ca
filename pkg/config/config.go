package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	if cfg.Extension == "" {
		return errors.New("extension: must not be empty")
	}
	if strings.HasPrefix(cfg.Extension, ".") {
		return fmt.Errorf("extension: %q must not include the leading dot", cfg.Extension)
	}

	switch cfg.Output {
	case "text", "json":
	default:
		return fmt.Errorf("output: invalid format %q (use text or json)", cfg.Output)
	}

	if cfg.Z <= 0 {
		return fmt.Errorf("z: must be positive, got %v", cfg.Z)
	}

	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	switch wh.Trigger {
	case "", WebhookTriggerOnIssues, WebhookTriggerAlways, WebhookTriggerNever:
	default:
		return fmt.Errorf("invalid trigger %q (use on_issues, always, or never)", wh.Trigger)
	}

	if wh.Trigger == "" {
		wh.Trigger = WebhookTriggerOnIssues
	}
	if wh.Timeout == 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}
