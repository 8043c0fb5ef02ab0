// Package geometry persists window size and position between runs.
package geometry

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pipeweaver/pipeweaver-ui/internal/logging"
)

// Geometry is the persisted window placement.
type Geometry struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	X      int `json:"x"`
	Y      int `json:"y"`
}

// Default returns the placement used when no saved geometry exists.
// Width/height match the window minimums.
func Default() Geometry {
	return Geometry{Width: 1000, Height: 600, X: 100, Y: 100}
}

// ConfigPath returns the geometry file location:
// <UserConfigDir>/pipeweaver/window.json.
func ConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "pipeweaver", "window.json")
}

// Load reads the saved geometry, falling back to defaults when the
// file is missing or invalid.
func Load(logger *logging.Logger) Geometry {
	return loadFrom(ConfigPath(), logger)
}

func loadFrom(path string, logger *logging.Logger) Geometry {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug().Msg("No saved window geometry, using defaults")
		return Default()
	}

	var g Geometry
	if err := json.Unmarshal(data, &g); err != nil || g.Width <= 0 || g.Height <= 0 {
		logger.Debug().Err(err).Msg("Invalid window geometry file, using defaults")
		return Default()
	}

	logger.Debug().
		Int("width", g.Width).Int("height", g.Height).
		Int("x", g.X).Int("y", g.Y).
		Msg("Loaded window geometry")
	return g
}

// Save writes the geometry to the config directory, creating it if
// needed. Failures are logged, not fatal; losing a window position is
// not worth interrupting shutdown.
func Save(g Geometry, logger *logging.Logger) {
	saveTo(ConfigPath(), g, logger)
}

func saveTo(path string, g Geometry, logger *logging.Logger) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		logger.Warn().Err(err).Msg("Failed to create config directory")
		return
	}

	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to encode window geometry")
		return
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		logger.Warn().Err(err).Msg("Failed to save window geometry")
		return
	}

	logger.Debug().
		Int("width", g.Width).Int("height", g.Height).
		Int("x", g.X).Int("y", g.Y).
		Msg("Saved window geometry")
}
