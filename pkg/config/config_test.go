package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	content := `
actions:
  ADD: [createdDoc, addedText, changedText, uploadedDoc]
report:
  format: text
  indent: 2
  sort_keys: true
logging:
  level: debug
metrics:
  textfile: /tmp/actlog.prom
redis:
  key: events
webhooks:
  - name: ops
    url: https://hooks.example.com/actlog
    timeout: 30s
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Actions[CategoryAdd]) != 4 {
		t.Errorf("ADD activities = %v, want 4 entries", cfg.Actions[CategoryAdd])
	}
	// Categories not named in the file keep their defaults.
	if len(cfg.Actions[CategoryRemove]) != 3 {
		t.Errorf("REMOVE activities = %v, want defaults", cfg.Actions[CategoryRemove])
	}
	if cfg.Report.Format != ReportFormatText {
		t.Errorf("Format = %q, want text", cfg.Report.Format)
	}
	if cfg.Report.Indent != 2 || !cfg.Report.SortKeys {
		t.Errorf("Report = %+v", cfg.Report)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Metrics.Textfile != "/tmp/actlog.prom" {
		t.Errorf("Textfile = %q", cfg.Metrics.Textfile)
	}
	if cfg.Redis.Key != "events" {
		t.Errorf("Redis.Key = %q, want events", cfg.Redis.Key)
	}
	if len(cfg.Webhooks) != 1 {
		t.Fatalf("Webhooks = %d, want 1", len(cfg.Webhooks))
	}
	if cfg.Webhooks[0].Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Webhooks[0].Timeout)
	}
	if cfg.Webhooks[0].Trigger != WebhookTriggerOnDrops {
		t.Errorf("Trigger = %q, want default on_drops", cfg.Webhooks[0].Trigger)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeTempFile(t, "invalid.yaml", `invalid: yaml: content: [`)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvMetricsFile, "/var/lib/node_exporter/actlog.prom")

	path := writeTempFile(t, "config.yaml", "logging:\n  level: debug\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %q, want warn from environment", cfg.Logging.Level)
	}
	if cfg.Metrics.Textfile != "/var/lib/node_exporter/actlog.prom" {
		t.Errorf("Textfile = %q", cfg.Metrics.Textfile)
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	cfg, err := LoadOrDefault(context.Background(), "")
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Report.Indent != DefaultIndent {
		t.Errorf("Indent = %d, want %d", cfg.Report.Indent, DefaultIndent)
	}
	if cfg.Report.Format != ReportFormatJSON {
		t.Errorf("Format = %q, want json", cfg.Report.Format)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Errorf("Level = %q, want %q", cfg.Logging.Level, DefaultLogLevel)
	}
}

func TestValidate_Actions(t *testing.T) {
	tests := []struct {
		name    string
		actions map[string][]string
		wantErr string
	}{
		{
			name:    "defaults",
			actions: DefaultActions(),
		},
		{
			name:    "empty",
			actions: map[string][]string{},
			wantErr: "at least one category",
		},
		{
			name:    "unknown category",
			actions: map[string][]string{"MOVE": {"movedDoc"}},
			wantErr: "unknown category",
		},
		{
			name: "activity in two categories",
			actions: map[string][]string{
				CategoryAdd:      {"createdDoc"},
				CategoryAccessed: {"createdDoc"},
			},
			wantErr: "mapped to both",
		},
		{
			name:    "empty label",
			actions: map[string][]string{CategoryAdd: {""}},
			wantErr: "empty activity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Actions = tt.actions
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Report(t *testing.T) {
	tests := []struct {
		name    string
		report  ReportConfig
		wantErr bool
	}{
		{"json", ReportConfig{Format: ReportFormatJSON, Indent: 4}, false},
		{"text", ReportConfig{Format: ReportFormatText}, false},
		{"empty format defaults", ReportConfig{}, false},
		{"unknown format", ReportConfig{Format: "xml"}, true},
		{"negative indent", ReportConfig{Format: ReportFormatJSON, Indent: -1}, true},
		{"huge indent", ReportConfig{Format: ReportFormatJSON, Indent: MaxIndent + 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Report = tt.report
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg.Report.Format == "" {
				t.Error("Validate() left format empty")
			}
		})
	}
}

func TestValidate_Webhooks(t *testing.T) {
	tests := []struct {
		name    string
		webhook WebhookConfig
		wantErr bool
	}{
		{"valid https", WebhookConfig{URL: "https://example.com/hook"}, false},
		{"valid http with trigger", WebhookConfig{URL: "http://localhost:8080", Trigger: WebhookTriggerAlways}, false},
		{"missing url", WebhookConfig{}, true},
		{"bad scheme", WebhookConfig{URL: "ftp://example.com"}, true},
		{"no host", WebhookConfig{URL: "https://"}, true},
		{"bad trigger", WebhookConfig{URL: "https://example.com", Trigger: "sometimes"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Webhooks = []WebhookConfig{tt.webhook}
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg.Webhooks[0].Timeout != DefaultWebhookTimeout {
				t.Errorf("Timeout = %v, want default", cfg.Webhooks[0].Timeout)
			}
		})
	}
}

func TestValidate_WebhookTokenExpansion(t *testing.T) {
	t.Setenv("ACTLOG_TEST_TOKEN", "s3cret")

	for _, token := range []string{"${ACTLOG_TEST_TOKEN}", "$ACTLOG_TEST_TOKEN"} {
		cfg := DefaultConfig()
		cfg.Webhooks = []WebhookConfig{{URL: "https://example.com", Token: token}}
		if err := Validate(cfg); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if cfg.Webhooks[0].Token != "s3cret" {
			t.Errorf("Token %q expanded to %q, want s3cret", token, cfg.Webhooks[0].Token)
		}
	}
}
