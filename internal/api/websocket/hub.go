package websocket

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/fortuna/apollo/internal/publisher"
)

// ServerMessage is the envelope sent to connected clients.
type ServerMessage struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	messageTypeSnapshot  = "odds_snapshot"
	messageTypeError     = "error"
	messageTypeSubscribe = "subscribe"
)

// Hub maintains the set of active clients and fans snapshot events out
// to them.
type Hub struct {
	clients   map[*Client]bool
	clientsMu sync.RWMutex

	broadcast  chan publisher.SnapshotEvent
	register   chan *Client
	unregister chan *Client

	// done is closed when the run loop exits; it unblocks any
	// register/unregister attempt that races with shutdown.
	done chan struct{}
}

// NewHub creates a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan publisher.SnapshotEvent, 1000),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop. It returns when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	log.Println("✓ WebSocket hub started")

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// Register adds a client to the hub. After shutdown the client is simply
// not registered; its connection close path handles the rest.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues a snapshot event for delivery to all matching
// clients. Drops the event if the buffer is full.
func (h *Hub) Broadcast(event publisher.SnapshotEvent) {
	select {
	case h.broadcast <- event:
	default:
		log.Println("⚠️  Broadcast buffer full, dropping snapshot event")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	h.clients[c] = true
	log.Printf("client %s connected (total: %d)", c.ID, len(h.clients))
}

func (h *Hub) unregisterClient(c *Client) {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		log.Printf("client %s disconnected (total: %d)", c.ID, len(h.clients))
	}
}

func (h *Hub) broadcastEvent(event publisher.SnapshotEvent) {
	h.clientsMu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clientsMu.RUnlock()

	message := ServerMessage{
		Type:      messageTypeSnapshot,
		Payload:   event,
		Timestamp: time.Now(),
	}

	for _, c := range clients {
		if !c.matchesFilter(event.Snapshot.GameID) {
			continue
		}
		if !c.trySend(message) {
			// Client buffer full, they are too slow to keep up
			log.Printf("⚠️  client %s buffer full, disconnecting", c.ID)
			go h.Unregister(c)
		}
	}
}

func (h *Hub) shutdown() {
	close(h.done)

	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	log.Printf("Shutting down WebSocket hub (%d active clients)", len(h.clients))

	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}
