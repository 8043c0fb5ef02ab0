package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pipeweaver/pipeweaver-ui/internal/config"
	"github.com/pipeweaver/pipeweaver-ui/internal/instance"
	"github.com/pipeweaver/pipeweaver-ui/internal/liveness"
	"github.com/pipeweaver/pipeweaver-ui/internal/version"
)

// newTriggerCmd creates the "trigger" command: ask a running instance
// to bring its window to the foreground.
func newTriggerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trigger",
		Short: "Bring a running instance's window to the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			if instance.DetectAndForward(logger) {
				fmt.Println("Trigger sent to running instance")
				return nil
			}
			return fmt.Errorf("no running instance found")
		},
	}
}

// newStatusCmd creates the "status" command: probe the engine's
// websocket endpoint once and report reachability.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the Pipeweaver engine is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := liveness.Probe(cfg.WebSocketURL()); err != nil {
				return err
			}
			fmt.Printf("Pipeweaver engine is running at %s\n", cfg.RemoteURL())
			return nil
		},
	}
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Pipeweaver UI %s (built %s)\n", version.Version, version.BuildTime)
		},
	}
}
