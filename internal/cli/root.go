// Package cli provides the command-line interface for radlog.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/radlog/radlog/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "radlog",
		Short: "Verify rAdvisor stat log collection intervals",
		Long: `radlog parses rAdvisor container stat logs and verifies that the
collector sampled at its intended interval.

Each log carries a YAML metadata header followed by CSV rows of cgroup
statistics (cpu, memory, blkio, pids). radlog decodes every row, derives
the deltas between consecutive read timestamps, and reports their
descriptive statistics per file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
