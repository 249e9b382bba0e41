package qrcam

import (
	"fmt"
	"sort"
	"sync/atomic"
)

type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventKey
)

// Key name as reported by the display backend
type Key string

const KeyEscape Key = "Escape"

// Input event taken from the display queue
type Event struct {
	Type EventType
	Key Key
}

// What the scan loop needs from a display: pixel memory, presentation and input
type Screen interface {
	Surface() *Surface
	Flip() error
	// Next pending event or EventNone; never blocks
	PollEvent() Event
}

// Window owning a surface for the process lifetime
type Display interface {
	Screen
	// Run loop while the display's own event machinery is active; returns the loop's error
	Run(loop func() error) error
	Close() error
}

type displayFactory func(title string, width, height int) (Display, error)

var displayBackends = map[string]displayFactory{}

func registerDisplay(name string, factory displayFactory) {
	displayBackends[name] = factory
}

// Names of display backends compiled in
func DisplayBackends() []string {
	names := make([]string, 0, len(displayBackends))
	for name := range displayBackends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open window of given backend with a surface of given size
func OpenDisplay(backend, title string, width, height int) (Display, error) {
	factory, ok := displayBackends[backend]
	if !ok {
		return nil, fmt.Errorf("display backend %q not available (built in: %v)", backend, DisplayBackends())
	}
	return factory(title, width, height)
}

// Bounded queue fed by backend callbacks; a quit request is sticky and never dropped
type eventQueue struct {
	ch chan Event
	quit atomic.Bool
}

func newEventQueue(size int) *eventQueue {
	return &eventQueue{ch: make(chan Event, size)}
}

// Add event; key events are dropped when the queue is full
func (q *eventQueue) push(ev Event) {
	if ev.Type == EventQuit {
		q.quit.Store(true)
		return
	}
	select {
		case q.ch <- ev:
		default:
	}
}

func (q *eventQueue) poll() Event {
	select {
		case ev := <-q.ch:
			return ev
		default:
	}
	if q.quit.Load() {
		return Event{Type: EventQuit}
	}
	return Event{}
}
