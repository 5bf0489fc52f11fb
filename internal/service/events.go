package service

import (
	"sync"
	"sync/atomic"
)

// EventType names a graph change
type EventType string

const (
	EventParentAdded    EventType = "parent_added"
	EventParentUpdated  EventType = "parent_updated"
	EventFixtureLoaded  EventType = "fixture_loaded"
	EventIdentityProbed EventType = "identity_probed"
)

// Event is published after a successful service operation
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// EventBus fans events out to subscriber channels. Publishing never blocks:
// a subscriber whose channel is full misses the event and the miss is counted.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[int]chan<- Event
	nextID      int
	dropped     atomic.Uint64
}

// NewEventBus creates an event bus with no subscribers
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[int]chan<- Event)}
}

// Subscribe registers ch and returns a func that removes it again.
// The bus never closes ch.
func (eb *EventBus) Subscribe(ch chan<- Event) (unsubscribe func()) {
	eb.mu.Lock()
	id := eb.nextID
	eb.nextID++
	eb.subscribers[id] = ch
	eb.mu.Unlock()

	return func() {
		eb.mu.Lock()
		delete(eb.subscribers, id)
		eb.mu.Unlock()
	}
}

// Publish offers event to every subscriber. A nil bus discards it.
func (eb *EventBus) Publish(event Event) {
	if eb == nil {
		return
	}
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	for _, ch := range eb.subscribers {
		select {
		case ch <- event:
		default:
			eb.dropped.Add(1)
		}
	}
}

// Dropped returns how many deliveries were skipped because a subscriber was full
func (eb *EventBus) Dropped() uint64 {
	if eb == nil {
		return 0
	}
	return eb.dropped.Load()
}
