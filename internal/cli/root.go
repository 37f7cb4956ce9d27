// Package cli provides the command-line interface for actlog.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/actlog/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors prevents Cobra from printing this itself
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Precondition, configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "actlog",
		Short: "Normalize user activity logs and report usage statistics",
		Long: `actlog reads a log of user activity events (one JSON object per line),
classifies every event into a coarse action category and produces:

  - a normalized CSV table for downstream analysis
  - aggregate usage statistics printed to stdout

Categories:
  ADD       createdDoc, addedText, changedText
  REMOVE    deletedDoc, deletedText, archived
  ACCESSED  viewedDoc

Events with an unknown activity and repeats of an already kept eventId are
dropped and counted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
