// Package instance provides single-instance coordination over a
// session-scoped unix domain socket.
//
// A newly launched process first checks whether a prior instance
// already holds the rendezvous socket; if so it forwards a trigger
// request and exits. Otherwise the process binds the socket itself and
// serves trigger requests from later invocations.
package instance

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/pipeweaver/pipeweaver-ui/internal/config"
)

// SocketPath returns the path to the rendezvous socket for this user
// session: $XDG_RUNTIME_DIR/pipeweaver-app.sock, falling back to the
// temp directory when no runtime dir is available.
func SocketPath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, config.AppName+".sock")
}

// listen binds the rendezvous socket exclusively.
func listen(socketPath string) (*net.UnixListener, error) {
	// Ensure socket directory exists
	socketDir := filepath.Dir(socketPath)
	if err := os.MkdirAll(socketDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}

	// A pre-existing entity is either stale (owner gone) or held by a
	// live listener. A connect attempt distinguishes the two: only a
	// stale socket may be removed; a live one is a bind error.
	if _, err := os.Stat(socketPath); err == nil {
		if dialable(socketPath) {
			return nil, fmt.Errorf("control socket %s is held by another process", socketPath)
		}
		if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	addr, err := net.ResolveUnixAddr("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve socket address: %w", err)
	}

	listener, err := net.ListenUnix("unix", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind control socket: %w", err)
	}

	// Set socket permissions (user only)
	if err := os.Chmod(socketPath, 0600); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}

	return listener, nil
}

// dialable reports whether something is accepting on the socket.
func dialable(socketPath string) bool {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.Dial("unix", socketPath)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// removeSocket removes the rendezvous socket file. Idempotent.
func removeSocket(socketPath string) {
	os.Remove(socketPath)
}
