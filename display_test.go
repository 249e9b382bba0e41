package qrcam

import (
	"testing"
)

func TestEventQueue(t *testing.T) {
	q := newEventQueue(2)
	if q.poll().Type != EventNone {
		t.Fatal("Event from empty queue")
	}
	q.push(Event{Type: EventKey, Key: "a"})
	q.push(Event{Type: EventQuit})
	q.push(Event{Type: EventKey, Key: "b"})
	q.push(Event{Type: EventKey, Key: "c"})
	for _, want := range []Key{"a", "b"} {
		if ev := q.poll(); ev.Type != EventKey || ev.Key != want {
			t.Fatalf("Event %+v, want key %s", ev, want)
		}
	}
	for i := 0; i < 2; i++ {
		if ev := q.poll(); ev.Type != EventQuit {
			t.Fatalf("Event %+v, want sticky quit", ev)
		}
	}
}

func TestOpenUnknownDisplay(t *testing.T) {
	if _, err := OpenDisplay("tty", "test", 10, 10); err == nil {
		t.Fatal("Opened unknown display backend")
	}
	found := false
	for _, name := range DisplayBackends() {
		found = found || name == DisplayFyne
	}
	if !found {
		t.Fatal("Fyne backend not registered")
	}
}
