package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512

	sendBufferSize = 256
)

// clientMessage is the shape of inbound client messages.
type clientMessage struct {
	Type    string   `json:"type"`
	GameIDs []string `json:"game_ids,omitempty"`
}

// Client represents a single WebSocket connection.
type Client struct {
	ID   string
	conn *websocket.Conn
	hub  *Hub
	send chan ServerMessage

	// gameIDs filters which snapshot events this client receives.
	// Empty means all games.
	gameIDs  []string
	filterMu sync.RWMutex
}

// NewClient creates a client bound to a connection and hub.
func NewClient(id string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:   id,
		conn: conn,
		hub:  hub,
		send: make(chan ServerMessage, sendBufferSize),
	}
}

// ReadPump pumps messages from the WebSocket connection to the hub.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("client %s unexpected close: %v", c.ID, err)
			}
			return
		}

		switch msg.Type {
		case messageTypeSubscribe:
			c.setFilter(msg.GameIDs)
			log.Printf("client %s subscribed: games=%v", c.ID, msg.GameIDs)
		default:
			c.trySend(ServerMessage{
				Type:      messageTypeError,
				Payload:   map[string]string{"message": "unknown message type: " + msg.Type},
				Timestamp: time.Now(),
			})
		}
	}
}

// WritePump pumps messages from the hub to the WebSocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				log.Printf("client %s write error: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// trySend sends a message without blocking. Returns false when the
// client's buffer is full.
func (c *Client) trySend(msg ServerMessage) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) setFilter(gameIDs []string) {
	c.filterMu.Lock()
	defer c.filterMu.Unlock()
	c.gameIDs = gameIDs
}

func (c *Client) matchesFilter(gameID string) bool {
	c.filterMu.RLock()
	defer c.filterMu.RUnlock()

	if len(c.gameIDs) == 0 {
		return true
	}
	for _, id := range c.gameIDs {
		if id == gameID {
			return true
		}
	}
	return false
}
