package hub

import (
	"context"
	"strings"
	"testing"
	"time"

	"toposcope/internal/service"
)

func TestBroadcastReachesClient(t *testing.T) {
	h := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	client := &Client{id: "c1", events: make(chan []byte, 4)}
	h.register <- client
	if h.ClientCount() != 1 {
		t.Fatalf("ClientCount = %d, want 1", h.ClientCount())
	}

	h.Events() <- service.Event{Type: service.EventNotice, Payload: "no saved layouts"}

	select {
	case msg := <-client.events:
		s := string(msg)
		if !strings.HasPrefix(s, "event: notice\n") {
			t.Errorf("message = %q, want notice event line", s)
		}
		if !strings.Contains(s, "no saved layouts") {
			t.Errorf("message = %q, payload missing", s)
		}
	case <-time.After(time.Second):
		t.Fatal("event never delivered")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	h := New()
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	client := &Client{id: "c1", events: make(chan []byte, 4)}
	h.register <- client

	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	select {
	case _, ok := <-client.events:
		if ok {
			t.Error("expected client channel closed, got a message")
		}
	case <-time.After(time.Second):
		t.Fatal("client channel left open after shutdown")
	}

	if h.ClientCount() != 0 {
		t.Errorf("ClientCount = %d after shutdown, want 0", h.ClientCount())
	}
}
