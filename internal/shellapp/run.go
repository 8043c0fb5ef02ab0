package shellapp

import (
	"embed"
	"fmt"
	"os"
	goruntime "runtime"

	"github.com/rs/zerolog"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"

	"github.com/pipeweaver/pipeweaver-ui/internal/config"
	"github.com/pipeweaver/pipeweaver-ui/internal/dialog"
	"github.com/pipeweaver/pipeweaver-ui/internal/geometry"
	"github.com/pipeweaver/pipeweaver-ui/internal/instance"
	"github.com/pipeweaver/pipeweaver-ui/internal/liveness"
	"github.com/pipeweaver/pipeweaver-ui/internal/logging"
	"github.com/pipeweaver/pipeweaver-ui/internal/relay"
	"github.com/pipeweaver/pipeweaver-ui/internal/version"
)

// Assets holds the embedded frontend files, passed in from the main
// package.
var Assets embed.FS

// Run launches the desktop shell.
//
// Startup order matters: an existing instance is detected first (and
// forwarded to, exiting this process), then the engine's liveness is
// verified before any socket is bound or any window constructed.
func Run(cfg *config.Config) error {
	logger := logging.NewLogger("gui")

	if cfg.Debug {
		logging.SetGlobalLevel(zerolog.DebugLevel)
		logger.Info().Msg("Debug logging enabled")
	} else {
		logging.SetGlobalLevel(zerolog.WarnLevel)
	}

	// Check for display on Linux
	if goruntime.GOOS == "linux" {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			return fmt.Errorf("GUI mode requires a display: DISPLAY and WAYLAND_DISPLAY are not set")
		}
	}

	if instance.DetectAndForward(logger) {
		logger.Info().Msg("Instance already active, exiting")
		fmt.Println("Instance already active, exiting")
		return nil
	}

	rel := relay.New()

	// Verify the engine is reachable before constructing any UI. The
	// client keeps the connection open afterwards as the shutdown
	// watchdog.
	ready := make(chan error, 1)
	client := liveness.NewClient(cfg.WebSocketURL(), rel, logger)
	go client.Run(ready)

	if err := <-ready; err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Pipeweaver")
		dialog.ShowError("Cannot start, Pipeweaver is not running.", logger)
		return fmt.Errorf("pipeweaver is not running: %w", err)
	}

	// Bind the control socket. Failure here is not fatal to the shell:
	// it keeps running without local-control capability.
	listener := instance.NewListener(rel, logger)
	if err := listener.Start(); err != nil {
		logger.Warn().Err(err).Msg("Control listener unavailable, continuing without it")
		listener = nil
	}

	geo := geometry.Load(logger)
	app := NewApp(cfg, rel, listener, geo, logger)

	err := wails.Run(&options.App{
		Title:     fmt.Sprintf("Pipeweaver UI %s", version.Version),
		Width:     geo.Width,
		Height:    geo.Height,
		MinWidth:  1000,
		MinHeight: 600,
		AssetServer: &assetserver.Options{
			Assets: Assets,
		},
		BackgroundColour: &options.RGBA{R: 24, G: 24, B: 27, A: 1},
		OnStartup:        app.startup,
		OnDomReady:       app.domReady,
		OnBeforeClose:    app.beforeClose,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
		},
		Mac: &mac.Options{
			About: &mac.AboutInfo{
				Title:   "Pipeweaver UI",
				Message: fmt.Sprintf("Version %s\n\nDesktop shell for the Pipeweaver audio engine.", version.Version),
			},
		},
		Windows: &windows.Options{
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    gpuPolicy(cfg),
			ProgramName:         config.AppName,
		},
	})
	if err != nil {
		return fmt.Errorf("shell application error: %w", err)
	}

	return nil
}

// gpuPolicy maps the engine flags from the configuration onto the
// webview's GPU policy.
func gpuPolicy(cfg *config.Config) linux.WebviewGpuPolicy {
	if cfg.DisableGPU {
		return linux.WebviewGpuPolicyNever
	}
	return linux.WebviewGpuPolicyOnDemand
}
