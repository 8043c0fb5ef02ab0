// Package relay carries window notifications from background
// goroutines into the UI event loop.
//
// The relay is the only structure shared between the background
// channels (local control listener, liveness client) and the UI. The
// producers never block and the consumer never blocks; the UI drains
// the queue on its own poll cadence.
package relay

import "sync"

// MessageKind discriminates window messages.
type MessageKind int

const (
	// Trigger asks the UI to bring the window to the foreground.
	Trigger MessageKind = iota
	// Close asks the UI to begin a graceful shutdown.
	Close
)

func (k MessageKind) String() string {
	switch k {
	case Trigger:
		return "trigger"
	case Close:
		return "close"
	default:
		return "unknown"
	}
}

// WindowMessage is a single event delivered to the UI thread.
type WindowMessage struct {
	Kind MessageKind
}

// Relay is an unbounded multi-producer/single-consumer FIFO queue of
// window messages. Sends never block and messages are never dropped
// once enqueued. Order is preserved per producer; no total order is
// guaranteed across producers.
type Relay struct {
	mu    sync.Mutex
	queue []WindowMessage
}

// New creates an empty relay.
func New() *Relay {
	return &Relay{}
}

// Send enqueues a message. Safe for concurrent use; never blocks.
func (r *Relay) Send(msg WindowMessage) {
	r.mu.Lock()
	r.queue = append(r.queue, msg)
	r.mu.Unlock()
}

// SendTrigger enqueues a bring-to-front request.
func (r *Relay) SendTrigger() {
	r.Send(WindowMessage{Kind: Trigger})
}

// SendClose enqueues a graceful shutdown request.
func (r *Relay) SendClose() {
	r.Send(WindowMessage{Kind: Close})
}

// TryReceive dequeues the oldest pending message. Returns false when
// the queue is empty; never blocks.
func (r *Relay) TryReceive() (WindowMessage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.queue) == 0 {
		return WindowMessage{}, false
	}

	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, true
}

// Len returns the number of pending messages.
func (r *Relay) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}
