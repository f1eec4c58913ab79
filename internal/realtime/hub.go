// Package realtime fans server-side pokes out to connected browsers over
// SSE. Payloads carry no listing data; the page refetches on every poke,
// matching the full-refetch policy of the backend subscription.
package realtime

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Event is one SSE frame.
type Event struct {
	Name string
	Data string
}

type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]chan Event
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]chan Event),
	}
}

// Subscribe registers a browser connection and returns its event channel.
func (h *Hub) Subscribe() (uuid.UUID, <-chan Event) {
	id := uuid.New()
	ch := make(chan Event, 8)

	h.mu.Lock()
	h.clients[id] = ch
	h.mu.Unlock()

	log.Printf("[events] client %s connected", id)
	return id, ch
}

func (h *Hub) Unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	if ch, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(ch)
	}
	h.mu.Unlock()

	log.Printf("[events] client %s disconnected", id)
}

// Broadcast sends an event to every connected client. Sends never block: a
// client that cannot keep up simply misses the poke and catches up on the
// next one, since pokes carry no state.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.clients {
		select {
		case ch <- ev:
		default:
			log.Printf("[events] client %s is slow, dropping event", id)
		}
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
