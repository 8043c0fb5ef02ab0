// Package dialog surfaces fatal startup errors to the user.
//
// The shell has no window of its own to show errors in when startup
// fails, so it shells out to the desktop's native dialog tools:
// kdialog first, then zenity, then a desktop notification as a last
// resort.
package dialog

import (
	"os/exec"

	"github.com/gen2brain/beeep"

	"github.com/pipeweaver/pipeweaver-ui/internal/logging"
)

const dialogTitle = "Pipeweaver UI"

// ShowError presents an error message via the best available native
// dialog. It blocks until the dialog is dismissed.
func ShowError(message string, logger *logging.Logger) {
	if err := exec.Command("kdialog",
		"--title", dialogTitle,
		"--error", message,
	).Run(); err == nil {
		return
	}

	logger.Debug().Msg("kdialog unavailable, falling back to zenity")
	if err := exec.Command("zenity",
		"--title", dialogTitle,
		"--error",
		"--text", message,
	).Run(); err == nil {
		return
	}

	logger.Debug().Msg("zenity unavailable, falling back to notification")
	if err := beeep.Alert(dialogTitle, message, ""); err != nil {
		logger.Error().Err(err).Str("message", message).Msg("Unable to display error dialog")
	}
}
