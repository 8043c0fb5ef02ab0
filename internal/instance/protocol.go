package instance

import (
	"fmt"
	"net"
	"time"
)

// TriggerRequest is the control request vocabulary: the raw literal a
// sibling invocation writes to ask the running instance to bring its
// window to the foreground. No response is sent or expected.
const TriggerRequest = "TRIGGER"

// dialTimeout bounds the single connection attempt the detector makes.
const dialTimeout = 500 * time.Millisecond

// SendTrigger connects to the rendezvous socket at the given path and
// writes the trigger literal. The connection is closed immediately
// after writing; there is no reply.
func SendTrigger(socketPath string) error {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.Dial("unix", socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect to control socket: %w", err)
	}
	defer conn.Close()

	conn.SetWriteDeadline(time.Now().Add(dialTimeout))
	if _, err := conn.Write([]byte(TriggerRequest)); err != nil {
		return fmt.Errorf("failed to send trigger: %w", err)
	}
	return nil
}
