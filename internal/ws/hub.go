package ws

import (
	"encoding/json"
	"sync"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/logger"
)

// Hub fans todo change events out to every connected client.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	logger.Debug("ws client registered", "clients", n)
}

// Unregister removes c and closes its send channel. Safe to call twice.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.Send)
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish broadcasts ev. Clients whose buffer is full are dropped rather
// than blocking the caller.
func (h *Hub) Publish(ev domain.TodoEvent) {
	msg, err := json.Marshal(ev)
	if err != nil {
		logger.Error("marshal todo event", "error", err, "type", ev.Type)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.Send <- msg:
		default:
			logger.Warn("ws client too slow, dropping")
			h.removeLocked(c)
		}
	}
}

// sendTo queues msg for one client if it is still registered.
func (h *Hub) sendTo(c *Client, msg []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; !ok {
		return false
	}
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}
