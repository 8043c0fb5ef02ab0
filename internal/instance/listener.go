package instance

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/pipeweaver/pipeweaver-ui/internal/logging"
	"github.com/pipeweaver/pipeweaver-ui/internal/relay"
)

// DefaultIdleInterval is the back-off between accept polls while no
// sibling invocation is connecting.
const DefaultIdleInterval = 100 * time.Millisecond

// readTimeout bounds reading a single control request.
const readTimeout = time.Second

// Listener serves control requests from sibling process invocations on
// the rendezvous socket. It runs on its own goroutine and communicates
// with the UI exclusively through the relay.
type Listener struct {
	relay        *relay.Relay
	logger       *logging.Logger
	socketPath   string
	idleInterval time.Duration

	listener *net.UnixListener
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewListener creates a listener on the session rendezvous socket.
func NewListener(r *relay.Relay, logger *logging.Logger) *Listener {
	return NewListenerWithPath(r, logger, SocketPath())
}

// NewListenerWithPath creates a listener on a custom socket path.
// Used in tests.
func NewListenerWithPath(r *relay.Relay, logger *logging.Logger, socketPath string) *Listener {
	ctx, cancel := context.WithCancel(context.Background())
	return &Listener{
		relay:        r,
		logger:       logger,
		socketPath:   socketPath,
		idleInterval: DefaultIdleInterval,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// SetIdleInterval configures the accept poll back-off. Must be called
// before Start().
func (l *Listener) SetIdleInterval(d time.Duration) {
	l.idleInterval = d
}

// SocketPath returns the path this listener binds.
func (l *Listener) SocketPath() string {
	return l.socketPath
}

// Start binds the rendezvous socket and begins serving on a background
// goroutine. Binding happens synchronously so address errors surface
// to the caller; should another process hold the socket, the bind
// fails here and the application continues without local-control
// capability.
func (l *Listener) Start() error {
	listener, err := listen(l.socketPath)
	if err != nil {
		return err
	}
	l.listener = listener

	l.logger.Debug().Str("path", l.socketPath).Msg("Control listener started")

	l.wg.Add(1)
	go l.acceptLoop()
	return nil
}

// Stop shuts down the listener and releases the rendezvous socket.
func (l *Listener) Stop() {
	l.cancel()
	if l.listener != nil {
		l.listener.Close()
	}
	l.wg.Wait()
}

// acceptLoop polls the socket for sibling connections. Accept runs
// with a short deadline so the loop stays responsive to shutdown
// without busy-spinning.
func (l *Listener) acceptLoop() {
	defer l.wg.Done()
	defer func() {
		removeSocket(l.socketPath)
		l.logger.Debug().Msg("Control socket closed")
	}()

	for {
		select {
		case <-l.ctx.Done():
			return
		default:
		}

		l.listener.SetDeadline(time.Now().Add(l.idleInterval))
		conn, err := l.listener.Accept()
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			select {
			case <-l.ctx.Done():
				return
			default:
				l.logger.Warn().Err(err).Msg("Unexpected control socket error")
				return
			}
		}

		l.handleConnection(conn)
	}
}

// handleConnection reads one control request. A request that is not
// exactly the trigger literal, or a failed read, is logged and
// discarded; the listener keeps running either way.
func (l *Listener) handleConnection(conn net.Conn) {
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	data, err := io.ReadAll(conn)
	if err != nil {
		l.logger.Warn().Err(err).Msg("Failed to read control request")
		return
	}

	if string(data) == TriggerRequest {
		l.relay.SendTrigger()
		return
	}

	l.logger.Warn().Int("bytes", len(data)).Msg("Discarding unrecognised control request")
}
