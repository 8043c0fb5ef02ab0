package instance

import (
	"os"

	"github.com/pipeweaver/pipeweaver-ui/internal/logging"
)

// DetectAndForward checks whether another instance already holds the
// rendezvous socket for this session.
//
// If the socket file is absent it returns false without further I/O.
// If it is present, a single connection attempt decides liveness: on
// success the trigger request is forwarded and true is returned; on
// failure the socket is treated as stale, removed, and false is
// returned so the caller proceeds with normal startup.
func DetectAndForward(logger *logging.Logger) bool {
	return detectAndForward(SocketPath(), logger)
}

func detectAndForward(socketPath string, logger *logging.Logger) bool {
	logger.Debug().Str("path", socketPath).Msg("Looking for existing control socket")

	if _, err := os.Stat(socketPath); err != nil {
		logger.Debug().Msg("No existing control socket present")
		return false
	}

	if err := SendTrigger(socketPath); err != nil {
		// Stale socket: the owning process is gone but did not clean
		// up. Remove it so the bind below succeeds.
		logger.Debug().Err(err).Msg("Control socket is stale, removing")
		removeSocket(socketPath)
		return false
	}

	logger.Debug().Str("path", socketPath).Msg("Forwarded trigger to existing instance")
	return true
}
