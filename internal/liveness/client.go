// Package liveness maintains the watchdog connection to the
// Pipeweaver engine.
//
// The websocket payload is opaque to the shell; the connection exists
// only to confirm the engine is reachable before the UI is shown, and
// to detect when it goes away afterwards. Losing the connection is the
// application's shutdown trigger.
package liveness

import (
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pipeweaver/pipeweaver-ui/internal/logging"
	"github.com/pipeweaver/pipeweaver-ui/internal/relay"
)

// handshakeTimeout bounds the single connection attempt at startup.
const handshakeTimeout = 5 * time.Second

// Client is the liveness channel client. It runs on its own goroutine
// and communicates with the UI exclusively through the relay.
type Client struct {
	url    string
	relay  *relay.Relay
	logger *logging.Logger
	dialer *websocket.Dialer
}

// NewClient creates a liveness client for the given websocket URL.
func NewClient(url string, r *relay.Relay, logger *logging.Logger) *Client {
	return &Client{
		url:    url,
		relay:  r,
		logger: logger,
		dialer: &websocket.Dialer{HandshakeTimeout: handshakeTimeout},
	}
}

// Run dials the engine once and reports exactly one result on ready:
// nil when the connection is established, the connection error
// otherwise. After a successful handshake it blocks reading frames
// until the connection drops for any reason, then enqueues a single
// Close message and returns.
//
// Protocol pings are answered with pongs by the websocket library's
// default ping handler; all payload frames are ignored.
func (c *Client) Run(ready chan<- error) {
	c.logger.Info().Str("url", c.url).Msg("Connecting to Pipeweaver")

	conn, resp, err := c.dialer.Dial(c.url, nil)
	if err != nil {
		ready <- fmt.Errorf("failed to connect to %s: %w", c.url, err)
		return
	}
	defer conn.Close()

	c.logger.Info().Int("status", resp.StatusCode).Msg("Connected to Pipeweaver")
	ready <- nil

	c.readLoop(conn)

	// The connection has been dropped; the UI treats this the same as
	// a local shutdown request.
	c.logger.Info().Msg("Connection to Pipeweaver lost, requesting close")
	c.relay.SendClose()
}

// readLoop consumes frames until the connection terminates, logging
// the specific cause.
func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			switch {
			case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway):
				c.logger.Info().Msg("Server closed the connection")
			case websocket.IsUnexpectedCloseError(err):
				c.logger.Error().Err(err).Msg("Disconnected: protocol error")
			default:
				c.logger.Error().Err(err).Msg("Disconnected")
			}
			return
		}
	}
}

// Probe performs a single connection attempt and closes immediately.
// Used by the status command to report engine reachability.
func Probe(url string) error {
	dialer := &websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("engine unreachable at %s: %w", url, err)
	}
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	return nil
}
