// Pipeweaver UI - desktop shell for the Pipeweaver audio engine.
//
// - No args + display available → GUI mode
// - No args + no display → CLI help
// - Subcommands/flags → CLI mode
package main

import (
	"embed"
	"fmt"
	"os"
	"runtime"
	"slices"

	"github.com/pipeweaver/pipeweaver-ui/internal/cli"
	"github.com/pipeweaver/pipeweaver-ui/internal/config"
	"github.com/pipeweaver/pipeweaver-ui/internal/shellapp"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	if isCLIMode() {
		if err := cli.Execute(); err != nil {
			os.Exit(1)
		}
		return
	}

	// GUI mode
	shellapp.Assets = assets
	if err := shellapp.Run(config.Load()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isCLIMode determines whether to run in CLI mode based on arguments
// and environment.
func isCLIMode() bool {
	cliPatterns := []string{
		// Subcommands
		"trigger", "status", "version",
		// Flags
		"--help", "-h", "--version",
	}

	for _, arg := range os.Args[1:] {
		if slices.Contains(cliPatterns, arg) {
			return true
		}
	}

	if len(os.Args) == 1 {
		// No arguments: default to GUI if a display is available
		if runtime.GOOS == "linux" {
			if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
				return true
			}
		}
		return false
	}

	// Unknown arguments: let the CLI produce help or an error rather
	// than opening a window.
	return true
}
