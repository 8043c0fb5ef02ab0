// Package shellapp provides the Wails-based desktop shell that embeds
// the Pipeweaver engine's web UI.
package shellapp

import (
	"context"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/pipeweaver/pipeweaver-ui/internal/config"
	"github.com/pipeweaver/pipeweaver-ui/internal/geometry"
	"github.com/pipeweaver/pipeweaver-ui/internal/instance"
	"github.com/pipeweaver/pipeweaver-ui/internal/logging"
	"github.com/pipeweaver/pipeweaver-ui/internal/relay"
)

// App is the main application struct. Public methods are exposed to
// the frontend as callable functions.
type App struct {
	ctx      context.Context
	cfg      *config.Config
	relay    *relay.Relay
	listener *instance.Listener
	geo      geometry.Geometry
	logger   *logging.Logger
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, r *relay.Relay, listener *instance.Listener, geo geometry.Geometry, logger *logging.Logger) *App {
	return &App{
		cfg:      cfg,
		relay:    r,
		listener: listener,
		geo:      geo,
		logger:   logger,
	}
}

// startup is called when the app starts. The context is saved so we
// can call the runtime methods, the saved window position is restored,
// and the notification poll begins.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	runtime.WindowSetPosition(ctx, a.geo.X, a.geo.Y)

	go a.pollNotifications(ctx)

	a.logger.Info().Msg("Shell application started")
}

// domReady is called after the frontend DOM is ready.
func (a *App) domReady(ctx context.Context) {
	a.logger.Debug().Msg("Frontend DOM ready")
}

// beforeClose is called when the window close is requested. The
// current geometry is captured here, while the window still exists.
// Return true to prevent closing.
func (a *App) beforeClose(ctx context.Context) bool {
	x, y := runtime.WindowGetPosition(ctx)
	w, h := runtime.WindowGetSize(ctx)
	geometry.Save(geometry.Geometry{Width: w, Height: h, X: x, Y: y}, a.logger)
	return false
}

// shutdown is called at application termination.
func (a *App) shutdown(ctx context.Context) {
	a.logger.Info().Msg("Shell application shutting down")

	if a.listener != nil {
		a.listener.Stop()
	}
}

// pollNotifications drives the event sink at the configured cadence
// until the application context is cancelled. The drain itself never
// blocks; runtime calls dispatch to the UI thread internally.
func (a *App) pollNotifications(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.CheckNotifications()
		}
	}
}

// CheckNotifications drains the relay and applies each pending window
// message. Also callable from the frontend.
func (a *App) CheckNotifications() {
	if a.ctx == nil {
		return
	}

	for {
		msg, ok := a.relay.TryReceive()
		if !ok {
			return
		}

		switch msg.Kind {
		case relay.Trigger:
			a.logger.Debug().Msg("Bringing window to foreground")
			runtime.WindowUnminimise(a.ctx)
			runtime.WindowShow(a.ctx)
		case relay.Close:
			a.logger.Debug().Msg("Close requested, quitting")
			runtime.Quit(a.ctx)
		}
	}
}

// RemoteURL returns the engine UI base URL for the frontend to embed.
func (a *App) RemoteURL() string {
	return a.cfg.RemoteURL()
}
