// Package config provides configuration loading and validation for actlog.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Actions maps each category (ADD, REMOVE, ACCESSED) to the activity labels it covers.
	Actions map[string][]string `yaml:"actions"`

	Report   ReportConfig    `yaml:"report"`
	Logging  LoggingConfig   `yaml:"logging"`
	Metrics  MetricsConfig   `yaml:"metrics"`
	Redis    RedisConfig     `yaml:"redis"`
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// ReportFormat selects how the statistics summary is printed.
type ReportFormat string

const (
	ReportFormatJSON ReportFormat = "json"
	ReportFormatText ReportFormat = "text"
)

// ReportConfig controls statistics printing.
type ReportConfig struct {
	Format   ReportFormat `yaml:"format"`
	Indent   int          `yaml:"indent"`
	SortKeys bool         `yaml:"sort_keys"`
}

// LoggingConfig controls diagnostic logging on stderr.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// MetricsConfig controls Prometheus metrics export.
type MetricsConfig struct {
	// Textfile is a path for the node_exporter textfile collector. Empty disables export.
	Textfile string `yaml:"textfile"`
}

// RedisConfig supplies values a redis:// input URL leaves out.
type RedisConfig struct {
	// Password is used when the URL carries no credentials.
	Password string `yaml:"password"`

	// Key is the list to drain when the URL has no key parameter.
	Key string `yaml:"key"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnDrops fires only when at least one event was dropped (default).
	WebhookTriggerOnDrops WebhookTrigger = "on_drops"
	// WebhookTriggerAlways fires after every run.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines an endpoint that receives the statistics summary.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token. ${VAR} and $VAR are expanded.
	Token string `yaml:"token,omitempty"`

	// Trigger defaults to "on_drops".
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout defaults to 10s.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
