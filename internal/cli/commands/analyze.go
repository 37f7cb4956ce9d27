package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/actlog/internal/logging"
	"github.com/ccollicutt/actlog/pkg/analyzer"
	"github.com/ccollicutt/actlog/pkg/config"
	"github.com/ccollicutt/actlog/pkg/output"
	"github.com/ccollicutt/actlog/pkg/parser"
	"github.com/ccollicutt/actlog/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	ConfigPath  string
	Output      string
	Indent      int
	SortKeys    bool
	Verbose     bool
	LogLevel    string
	MetricsFile string
	FailOnDrops bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <input> <output-csv>",
		Short: "Normalize an activity log into CSV and print statistics",
		Long: `Read activity events, write the normalized table to <output-csv> and
print usage statistics to stdout.

<input> is a JSON-lines file, or a Redis list given as
redis://[:password@]host:port/db?key=<list>. Every element in the list is
read; they are removed only after the CSV has been written, so a failed run
leaves the list as it was.

Lines that are not JSON objects are skipped with a warning. A timestamp
that cannot be parsed aborts the run.

Exit codes:
  0 - Success
  1 - Events were dropped and --fail-on-drops is set
  2 - Precondition, configuration or runtime error`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (YAML)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "json", "Statistics format (json|text)")
	cmd.Flags().IntVar(&opts.Indent, "indent", config.DefaultIndent, "Spaces per JSON indentation level")
	cmd.Flags().BoolVar(&opts.SortKeys, "sort-keys", false, "Sort JSON keys alphabetically")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include run metadata in text output")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	cmd.Flags().BoolVar(&opts.FailOnDrops, "fail-on-drops", false, "Exit 1 when any event was dropped")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_drops", "When to fire webhook (on_drops|always|never)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	input, outputPath := args[0], args[1]
	ExitCode = 0
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadOrDefault(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlagOverrides(cmd, cfg, opts)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	logging.Init(cfg.Report.Format == config.ReportFormatJSON, logging.ParseLevel(cfg.Logging.Level))

	// Preconditions are checked before any record is read
	source, err := openSource(input, cfg)
	if err != nil {
		return err
	}
	defer source.Close()

	if err := checkWritable(outputPath); err != nil {
		return err
	}

	var metrics *analyzer.Metrics
	analyzerOpts := []analyzer.AnalyzerOption{
		analyzer.WithTaxonomy(analyzer.NewTaxonomy(cfg.Actions)),
	}
	if cfg.Metrics.Textfile != "" {
		metrics = analyzer.NewMetrics()
		analyzerOpts = append(analyzerOpts, analyzer.WithMetrics(metrics))
	}

	slog.Info("analyzing activity log", "input", input, "output", outputPath)

	result, err := analyzer.NewAnalyzer(analyzerOpts...).Analyze(ctx, source)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := output.WriteTableFile(outputPath, result.Table()); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	if err := commitInput(ctx, source); err != nil {
		return err
	}

	malformed := skippedCount(source)
	report := output.NewReport(result, input, outputPath, malformed)

	formatter := createFormatter(cfg, opts)
	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Side outputs are logged on failure and never fail the run
	if metrics != nil {
		metrics.ObserveMalformed(malformed)
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			slog.Error("metrics export failed", "err", err)
		}
	}
	sendWebhooks(ctx, cfg.Webhooks, report)

	if opts.FailOnDrops && report.HasDrops() {
		ExitCode = 1
	}

	return nil
}

// applyFlagOverrides lets explicitly set flags win over the config file.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config, opts *AnalyzeOptions) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Report.Format = config.ReportFormat(opts.Output)
	}
	if flags.Changed("indent") {
		cfg.Report.Indent = opts.Indent
	}
	if flags.Changed("sort-keys") {
		cfg.Report.SortKeys = opts.SortKeys
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.MetricsFile != "" {
		cfg.Metrics.Textfile = opts.MetricsFile
	}
	cfg.Webhooks = collectWebhooks(cfg, opts)
}

// openSource checks input preconditions and returns the matching record source.
func openSource(input string, cfg *config.Config) (parser.RecordSource, error) {
	if !strings.HasPrefix(input, "redis://") {
		if err := checkReadable(input); err != nil {
			return nil, err
		}
		return parser.NewFileSource(input), nil
	}

	rc, err := redisConfig(input, cfg)
	if err != nil {
		return nil, err
	}
	src, err := parser.NewRedisSource(rc)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// redisConfig resolves a redis:// input, taking the list key and password
// from the config file when the URL leaves them out.
func redisConfig(input string, cfg *config.Config) (parser.RedisConfig, error) {
	u, err := url.Parse(input)
	if err != nil {
		return parser.RedisConfig{}, fmt.Errorf("invalid redis input: %w", err)
	}

	q := u.Query()
	if q.Get("key") == "" {
		q.Set("key", cfg.Redis.Key)
		u.RawQuery = q.Encode()
	}

	rc, err := parser.ParseRedisURL(u.String())
	if err != nil {
		return parser.RedisConfig{}, err
	}
	if rc.Password == "" {
		rc.Password = cfg.Redis.Password
	}
	return rc, nil
}

// commitInput acknowledges consumed input for sources that keep it until told.
func commitInput(ctx context.Context, source parser.RecordSource) error {
	c, ok := source.(interface{ Commit(context.Context) error })
	if !ok {
		return nil
	}
	if err := c.Commit(ctx); err != nil {
		return fmt.Errorf("committing input: %w", err)
	}
	return nil
}

func skippedCount(source parser.RecordSource) int {
	if s, ok := source.(interface{ Skipped() int }); ok {
		return s.Skipped()
	}
	return 0
}

func createFormatter(cfg *config.Config, opts *AnalyzeOptions) output.Formatter {
	formatOpts := output.FormatOptions{
		Indent:   cfg.Report.Indent,
		SortKeys: cfg.Report.SortKeys,
		Verbose:  opts.Verbose,
	}

	if cfg.Report.Format == config.ReportFormatText {
		return output.NewTextFormatter(formatOpts)
	}
	return output.NewJSONFormatter(formatOpts)
}

// sendWebhooks sends the report to every webhook whose trigger matches the run.
// Errors are logged but don't fail the run.
func sendWebhooks(ctx context.Context, webhooks []config.WebhookConfig, report *output.Report) {
	if len(webhooks) == 0 {
		return
	}

	notifier := webhook.NewNotifier(webhook.WithUserAgent("actlog/" + Version))
	note := webhook.NewNotification(report)

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, report.HasDrops()) {
			continue
		}

		d := notifier.Deliver(ctx, note, webhook.Target{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if d.OK() {
			slog.Info("webhook sent", "webhook", name, "status", d.StatusCode, "elapsed", d.Elapsed)
		} else {
			slog.Error("webhook failed", "webhook", name, "err", d.Err)
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
// The result is checked by config.Validate like any configured webhook.
func collectWebhooks(cfg *config.Config, opts *AnalyzeOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: config.WebhookTrigger(opts.WebhookTrigger),
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook should fire based on trigger and drops.
func shouldFireWebhook(trigger config.WebhookTrigger, hasDrops bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return hasDrops
	}
}
