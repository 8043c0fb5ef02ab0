// Package cli provides the command-line interface for pipeweaver-ui.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pipeweaver/pipeweaver-ui/internal/logging"
)

var (
	// Global flags
	verbose bool
	debug   bool

	// Global logger
	logger *logging.Logger
)

// NewRootCmd creates the root command for CLI mode.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pipeweaver-ui",
		Short: "Pipeweaver UI - desktop shell for the Pipeweaver audio engine",
		Long: `Pipeweaver UI - desktop shell for the Pipeweaver audio engine.

GUI Mode (default):
  Launched with no arguments, opens the engine's web UI in a native
  window. Only one instance runs per session; launching again brings
  the existing window to the foreground.

CLI Mode:
  Utility subcommands for interacting with a running instance and the
  engine.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewDefaultCLILogger()
			if verbose || debug {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output (same as --verbose)")

	rootCmd.AddCommand(newTriggerCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
