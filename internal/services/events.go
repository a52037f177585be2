package services

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Change event types.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

const subscriberBuffer = 16

// ChangeEvent tells connected clients that a feature's data changed.
type ChangeEvent struct {
	Type      string    `json:"type"`
	Feature   string    `json:"feature"`
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventHub fans change events out to local subscribers (one per open
// WebSocket). Slow subscribers drop events rather than block publishers.
type EventHub struct {
	mu          sync.RWMutex
	subscribers map[string]chan ChangeEvent
}

func NewEventHub() *EventHub {
	return &EventHub{subscribers: make(map[string]chan ChangeEvent)}
}

// Subscribe returns a channel of events and a function that unsubscribes and
// closes it.
func (h *EventHub) Subscribe() (<-chan ChangeEvent, func()) {
	id := uuid.NewString()
	ch := make(chan ChangeEvent, subscriberBuffer)

	h.mu.Lock()
	h.subscribers[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *EventHub) Publish(event ChangeEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			log.Printf("[Events] subscriber %s is slow; dropped %s %s", id, event.Feature, event.Type)
		}
	}
}

// Subscribers reports the number of open subscriptions.
func (h *EventHub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
