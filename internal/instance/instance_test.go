package instance

import (
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pipeweaver/pipeweaver-ui/internal/logging"
	"github.com/pipeweaver/pipeweaver-ui/internal/relay"
)

func testSocketPath(t *testing.T) string {
	t.Helper()
	// Socket paths have a low length limit; TempDir paths stay short
	// enough on the platforms we test on.
	return filepath.Join(t.TempDir(), "control.sock")
}

func startTestListener(t *testing.T, r *relay.Relay, socketPath string) *Listener {
	t.Helper()
	l := NewListenerWithPath(r, logging.NewDefaultCLILogger(), socketPath)
	l.SetIdleInterval(10 * time.Millisecond)
	if err := l.Start(); err != nil {
		t.Fatalf("Failed to start listener: %v", err)
	}
	t.Cleanup(l.Stop)
	return l
}

// waitForMessage polls the relay until a message arrives or the
// timeout elapses.
func waitForMessage(t *testing.T, r *relay.Relay, timeout time.Duration) (relay.WindowMessage, bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if msg, ok := r.TryReceive(); ok {
			return msg, true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return relay.WindowMessage{}, false
}

func TestDetectWithoutSocketReturnsFalse(t *testing.T) {
	socketPath := testSocketPath(t)

	if detectAndForward(socketPath, logging.NewDefaultCLILogger()) {
		t.Error("expected false when no socket exists")
	}
}

func TestDetectRemovesStaleSocket(t *testing.T) {
	socketPath := testSocketPath(t)

	// A plain file stands in for a socket whose owner crashed without
	// cleanup: it exists but nothing accepts on it.
	if err := os.WriteFile(socketPath, nil, 0600); err != nil {
		t.Fatalf("Failed to create stale socket file: %v", err)
	}

	if detectAndForward(socketPath, logging.NewDefaultCLILogger()) {
		t.Error("expected false for stale socket")
	}
	if _, err := os.Stat(socketPath); !os.IsNotExist(err) {
		t.Error("expected stale socket file to be removed")
	}

	// The address must be bindable again after recovery.
	r := relay.New()
	startTestListener(t, r, socketPath)
}

func TestListenerEnqueuesTrigger(t *testing.T) {
	socketPath := testSocketPath(t)
	r := relay.New()
	startTestListener(t, r, socketPath)

	if err := SendTrigger(socketPath); err != nil {
		t.Fatalf("SendTrigger failed: %v", err)
	}

	msg, ok := waitForMessage(t, r, time.Second)
	if !ok {
		t.Fatal("expected a message within one second")
	}
	if msg.Kind != relay.Trigger {
		t.Errorf("expected Trigger, got %s", msg.Kind)
	}
	if r.Len() != 0 {
		t.Errorf("expected exactly one message, %d left over", r.Len())
	}
}

func TestListenerDiscardsOtherPayloads(t *testing.T) {
	socketPath := testSocketPath(t)
	r := relay.New()
	startTestListener(t, r, socketPath)

	for _, payload := range []string{"", "trigger", "TRIGGERX", "SHUTDOWN"} {
		conn, err := net.Dial("unix", socketPath)
		if err != nil {
			t.Fatalf("Failed to connect: %v", err)
		}
		if payload != "" {
			conn.Write([]byte(payload))
		}
		conn.Close()
	}

	if _, ok := waitForMessage(t, r, 200*time.Millisecond); ok {
		t.Error("expected no message for non-trigger payloads")
	}

	// The listener must keep serving after discarding bad input.
	if err := SendTrigger(socketPath); err != nil {
		t.Fatalf("SendTrigger after bad payloads failed: %v", err)
	}
	if msg, ok := waitForMessage(t, r, time.Second); !ok || msg.Kind != relay.Trigger {
		t.Error("expected listener to still accept triggers")
	}
}

func TestDetectForwardsToRunningListener(t *testing.T) {
	socketPath := testSocketPath(t)
	r := relay.New()
	startTestListener(t, r, socketPath)

	if !detectAndForward(socketPath, logging.NewDefaultCLILogger()) {
		t.Fatal("expected detection to find the running listener")
	}

	msg, ok := waitForMessage(t, r, time.Second)
	if !ok {
		t.Fatal("expected the forwarded trigger to arrive")
	}
	if msg.Kind != relay.Trigger {
		t.Errorf("expected Trigger, got %s", msg.Kind)
	}
}

func TestStopRemovesSocket(t *testing.T) {
	socketPath := testSocketPath(t)
	r := relay.New()
	l := NewListenerWithPath(r, logging.NewDefaultCLILogger(), socketPath)
	l.SetIdleInterval(10 * time.Millisecond)
	if err := l.Start(); err != nil {
		t.Fatalf("Failed to start listener: %v", err)
	}

	if _, err := os.Stat(socketPath); err != nil {
		t.Fatalf("expected socket to exist while listening: %v", err)
	}

	l.Stop()

	if _, err := os.Stat(socketPath); !os.IsNotExist(err) {
		t.Error("expected socket to be removed after Stop")
	}
}

func TestStartFailsWhenAddressHeld(t *testing.T) {
	socketPath := testSocketPath(t)
	r := relay.New()
	startTestListener(t, r, socketPath)

	// A second bind on the same address must fail; losing the bind
	// race is how a concurrent cold start resolves to one owner.
	second := NewListenerWithPath(relay.New(), logging.NewDefaultCLILogger(), socketPath)
	if err := second.Start(); err == nil {
		second.Stop()
		t.Fatal("expected second bind on the same address to fail")
	}
}
