package relay

import (
	"sync"
	"testing"
	"time"
)

func TestSendPreservesFIFOOrder(t *testing.T) {
	r := New()

	r.SendTrigger()
	r.SendClose()
	r.SendTrigger()

	want := []MessageKind{Trigger, Close, Trigger}
	for i, kind := range want {
		msg, ok := r.TryReceive()
		if !ok {
			t.Fatalf("message %d: queue empty", i)
		}
		if msg.Kind != kind {
			t.Errorf("message %d: expected %s, got %s", i, kind, msg.Kind)
		}
	}

	if _, ok := r.TryReceive(); ok {
		t.Error("expected empty queue after draining")
	}
}

func TestTryReceiveEmptyDoesNotBlock(t *testing.T) {
	r := New()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, ok := r.TryReceive(); ok {
			t.Error("expected no message from empty relay")
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("TryReceive blocked on empty relay")
	}
}

func TestConcurrentProducersDeliverAllExactlyOnce(t *testing.T) {
	const perProducer = 500

	r := New()

	// One producer sends only triggers, the other only closes, so the
	// consumer can verify per-producer FIFO by counting.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < perProducer; i++ {
			r.SendTrigger()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < perProducer; i++ {
			r.SendClose()
		}
	}()
	wg.Wait()

	triggers, closes := 0, 0
	for {
		msg, ok := r.TryReceive()
		if !ok {
			break
		}
		switch msg.Kind {
		case Trigger:
			triggers++
		case Close:
			closes++
		}
	}

	if triggers != perProducer {
		t.Errorf("expected %d triggers, got %d", perProducer, triggers)
	}
	if closes != perProducer {
		t.Errorf("expected %d closes, got %d", perProducer, closes)
	}
}

func TestLen(t *testing.T) {
	r := New()

	if r.Len() != 0 {
		t.Errorf("expected empty relay, got %d", r.Len())
	}

	r.SendTrigger()
	r.SendTrigger()
	if r.Len() != 2 {
		t.Errorf("expected 2 pending messages, got %d", r.Len())
	}

	r.TryReceive()
	if r.Len() != 1 {
		t.Errorf("expected 1 pending message, got %d", r.Len())
	}
}
