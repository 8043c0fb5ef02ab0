// Package config holds the application configuration.
//
// The Config struct is built exactly once at process start (defaults,
// then environment overrides) and passed to toolkit initialisation.
// Nothing mutates it afterwards; in particular the process environment
// is never written after startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// AppName is the fixed application identity. The rendezvous socket,
// the config directory and the desktop integration all derive from it.
const AppName = "pipeweaver-app"

// Config is the immutable application configuration.
type Config struct {
	// Remote Pipeweaver engine endpoint.
	RemoteHost    string
	RemotePort    int
	WebSocketPath string

	// PollInterval is the cadence at which the UI drains the
	// notification relay.
	PollInterval time.Duration

	// AcceptIdleInterval is the back-off between accept polls on the
	// local control socket.
	AcceptIdleInterval time.Duration

	// Webview engine tuning, consumed by the toolkit options.
	DisableGPU bool

	// Debug enables verbose logging.
	Debug bool
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		RemoteHost:         "localhost",
		RemotePort:         14565,
		WebSocketPath:      "/api/websocket",
		PollInterval:       100 * time.Millisecond,
		AcceptIdleInterval: 100 * time.Millisecond,
	}
}

// Load builds the configuration from defaults plus environment
// overrides. This is the only place the environment is consulted.
func Load() *Config {
	cfg := Default()

	if host := os.Getenv("PIPEWEAVER_HOST"); host != "" {
		cfg.RemoteHost = host
	}
	if port := os.Getenv("PIPEWEAVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 && p < 65536 {
			cfg.RemotePort = p
		}
	}
	if os.Getenv("PIPEWEAVER_DEBUG") != "" {
		cfg.Debug = true
	}
	if os.Getenv("PIPEWEAVER_DISABLE_GPU") != "" {
		cfg.DisableGPU = true
	}

	return cfg
}

// WebSocketURL returns the liveness endpoint, e.g.
// ws://localhost:14565/api/websocket.
func (c *Config) WebSocketURL() string {
	return fmt.Sprintf("ws://%s:%d%s", c.RemoteHost, c.RemotePort, c.WebSocketPath)
}

// RemoteURL returns the engine's web UI base URL, e.g.
// http://localhost:14565/.
func (c *Config) RemoteURL() string {
	return fmt.Sprintf("http://%s:%d/", c.RemoteHost, c.RemotePort)
}
