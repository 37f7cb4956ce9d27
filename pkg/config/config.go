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

// LoadOrDefault loads path when it is set, and otherwise returns the
// defaults with environment overrides applied.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors and fills in webhook defaults.
func Validate(cfg *Config) error {
	if err := validateActions(cfg.Actions); err != nil {
		return fmt.Errorf("actions: %w", err)
	}

	if err := validateReport(&cfg.Report); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if cfg.Redis.Key == "" {
		cfg.Redis.Key = DefaultRedisKey
	}

	// Webhooks are optional, but validate if present
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

func validateActions(actions map[string][]string) error {
	if len(actions) == 0 {
		return errors.New("at least one category mapping is required")
	}

	owner := make(map[string]string)
	for category, activities := range actions {
		if !isCategory(category) {
			return fmt.Errorf("unknown category %q (must be ADD, REMOVE, or ACCESSED)", category)
		}
		for _, activity := range activities {
			if activity == "" {
				return fmt.Errorf("%s: empty activity label", category)
			}
			if prev, ok := owner[activity]; ok {
				return fmt.Errorf("activity %q is mapped to both %s and %s", activity, prev, category)
			}
			owner[activity] = category
		}
	}

	return nil
}

func isCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

func validateReport(rc *ReportConfig) error {
	switch rc.Format {
	case ReportFormatJSON, ReportFormatText:
	case "":
		rc.Format = ReportFormatJSON
	default:
		return fmt.Errorf("invalid format %q (must be json or text)", rc.Format)
	}

	if rc.Indent < 0 || rc.Indent > MaxIndent {
		return fmt.Errorf("indent must be between 0 and %d, got %d", MaxIndent, rc.Indent)
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

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	if wh.Trigger != "" {
		switch wh.Trigger {
		case WebhookTriggerOnDrops, WebhookTriggerAlways, WebhookTriggerNever:
		default:
			return fmt.Errorf("invalid trigger %q (must be on_drops, always, or never)", wh.Trigger)
		}
	} else {
		wh.Trigger = WebhookTriggerOnDrops
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// expandEnvVar expands a token given as ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		return os.Getenv(s[1:])
	}
	return s
}
