package events

import (
	"context"
	"sync"
)

// subscriberBuffer bounds how many undelivered events a slow subscriber may
// hold before new events are dropped for it.
const subscriberBuffer = 16

// Hub is an in-process fan-out of order events to SSE subscribers. Slow
// subscribers lose events rather than block publishers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]chan Event
}

// NewHub creates an empty event hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]chan Event)}
}

// Subscribe registers a subscriber and returns its event channel.
func (h *Hub) Subscribe(subscriberID string) <-chan Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan Event, subscriberBuffer)
	h.subscribers[subscriberID] = ch
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(subscriberID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subscribers[subscriberID]; ok {
		delete(h.subscribers, subscriberID)
		close(ch)
	}
}

// Publish delivers the event to every subscriber without blocking.
func (h *Hub) Publish(ctx context.Context, evt Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subscribers {
		select {
		case ch <- evt:
		default:
			// subscriber buffer full, drop for this one
		}
	}
	return nil
}

// SubscriberCount reports how many SSE clients are connected.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
