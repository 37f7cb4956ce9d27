package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/actlog/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate an actlog configuration file without reading any events.

Checks:
  - YAML syntax
  - Category names and activity uniqueness
  - Report format and indent
  - Webhook URLs and triggers`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	_, _ = fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	_, _ = fmt.Fprintf(out, "\nConfiguration valid!\n")
	_, _ = fmt.Fprintf(out, "  Report:   %s (indent %d)\n", cfg.Report.Format, cfg.Report.Indent)
	_, _ = fmt.Fprintf(out, "  Webhooks: %d\n", len(cfg.Webhooks))

	_, _ = fmt.Fprintf(out, "\nActions:\n")
	for _, category := range config.Categories {
		activities := cfg.Actions[category]
		if len(activities) == 0 {
			_, _ = fmt.Fprintf(out, "  %-9s (none)\n", category)
			continue
		}
		_, _ = fmt.Fprintf(out, "  %-9s %s\n", category, strings.Join(activities, ", "))
	}

	return nil
}
