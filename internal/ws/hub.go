package ws

import (
	"encoding/json"
	"sync"
	"time"
)

// Event is one change notification on a tenant's stream: which collection
// changed, what happened to it, and the document id. Subscribers re-fetch;
// the event itself carries no document body.
type Event struct {
	Type       string    `json:"type"` // "snapshot" | "change"
	Collection string    `json:"collection,omitempty"`
	Action     string    `json:"action,omitempty"` // "created" | "updated" | "deleted"
	DocID      string    `json:"doc_id,omitempty"`
	At         time.Time `json:"at"`
}

// Client is one websocket subscriber bound to a tenant namespace.
type Client struct {
	UserID     uint
	TenantPath string
	Send       chan []byte
	hub        *Hub
	mu         sync.Mutex
	closed     bool
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
	if c.hub != nil {
		c.hub.unregister(c)
	}
}

// Hub fans change events out to every live subscriber of a tenant path.
// Each stream delivers its own events in publish order; ordering across
// tenants is not coordinated.
type Hub struct {
	mu       sync.RWMutex
	byTenant map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{byTenant: make(map[string]map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.hub = h
	if h.byTenant[c.TenantPath] == nil {
		h.byTenant[c.TenantPath] = make(map[*Client]struct{})
	}
	h.byTenant[c.TenantPath][c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m := h.byTenant[c.TenantPath]; m != nil {
		delete(m, c)
		if len(m) == 0 {
			delete(h.byTenant, c.TenantPath)
		}
	}
}

// Publish notifies every subscriber of the tenant. A slow subscriber's full
// buffer drops the event rather than blocking the writer.
func (h *Hub) Publish(tenantPath, collection, action, docID string) {
	data, _ := json.Marshal(Event{
		Type:       "change",
		Collection: collection,
		Action:     action,
		DocID:      docID,
		At:         time.Now(),
	})
	h.mu.RLock()
	m := h.byTenant[tenantPath]
	clients := make([]*Client, 0, len(m))
	for c := range m {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		select {
		case c.Send <- data:
		default:
		}
	}
}

func (h *Hub) SubscriberCount(tenantPath string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byTenant[tenantPath])
}
