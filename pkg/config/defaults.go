package config

import (
	"os"
	"time"
)

// Action categories.
const (
	CategoryAdd      = "ADD"
	CategoryRemove   = "REMOVE"
	CategoryAccessed = "ACCESSED"
)

// Categories lists the action categories in report order.
var Categories = []string{CategoryAdd, CategoryRemove, CategoryAccessed}

// Default values for configuration.
const (
	DefaultIndent         = 4
	MaxIndent             = 16
	DefaultLogLevel       = "info"
	DefaultRedisKey       = "activity_events"
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvLogLevel    = "ACTLOG_LOG_LEVEL"
	EnvMetricsFile = "ACTLOG_METRICS_FILE"
)

// DefaultActions returns the built-in activity mapping.
func DefaultActions() map[string][]string {
	return map[string][]string{
		CategoryAdd:      {"createdDoc", "addedText", "changedText"},
		CategoryRemove:   {"deletedDoc", "deletedText", "archived"},
		CategoryAccessed: {"viewedDoc"},
	}
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Actions: DefaultActions(),
		Report: ReportConfig{
			Format: ReportFormatJSON,
			Indent: DefaultIndent,
		},
		Logging: LoggingConfig{Level: DefaultLogLevel},
		Redis:   RedisConfig{Key: DefaultRedisKey},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if path := os.Getenv(EnvMetricsFile); path != "" {
		c.Metrics.Textfile = path
	}
}
