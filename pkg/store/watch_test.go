package store

import (
	"context"
	"testing"
	"time"
)

func TestPersistenceWatchEmitsKeyChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(StaticConfig{Path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	if err := p.Write(ctx, "current_active_todo.md", "- [ ] hello\n"); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventKeyChanged {
				if evt.Key != "current_active_todo.md" {
					t.Fatalf("expected key 'current_active_todo.md', got %q", evt.Key)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for key change event")
		}
	}
}

func TestCoalescerSendsEachEventOnceInOrder(t *testing.T) {
	got := make(chan Event, 8)
	c := newCoalescer(20*time.Millisecond, func(ev Event) { got <- ev })
	defer c.Stop()

	for i := 0; i < 5; i++ {
		c.Add(Event{Type: EventKeyChanged, Key: "b"})
		c.Add(Event{Type: EventKeyChanged, Key: "a"})
	}
	c.Add(Event{Type: EventInvalidated})

	want := []Event{
		{Type: EventKeyChanged, Key: "b"},
		{Type: EventKeyChanged, Key: "a"},
		{Type: EventInvalidated},
	}
	for _, w := range want {
		select {
		case ev := <-got:
			if ev != w {
				t.Fatalf("expected %+v, got %+v", w, ev)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for flush")
		}
	}
	select {
	case ev := <-got:
		t.Fatalf("expected no more events, got %+v", ev)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestCoalescerStopDropsPending(t *testing.T) {
	got := make(chan Event, 1)
	c := newCoalescer(20*time.Millisecond, func(ev Event) { got <- ev })
	c.Add(Event{Type: EventKeyChanged, Key: "a"})
	c.Stop()

	select {
	case ev := <-got:
		t.Fatalf("expected nothing after stop, got %+v", ev)
	case <-time.After(60 * time.Millisecond):
	}
}
