package websocket

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboard clients connect from arbitrary origins
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server serves WebSocket connections for live odds updates.
type Server struct {
	port   string
	hub    *Hub
	server *http.Server
}

// NewServer creates a WebSocket server attached to a hub.
func NewServer(port string, hub *Hub) *Server {
	s := &Server{port: port, hub: hub}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/odds", s.handleWS)
	mux.HandleFunc("/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: mux,
	}
	return s
}

// Start starts the WebSocket server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(newClientID(), conn, s.hub)
	s.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"healthy","clients":%d}`, s.hub.ClientCount())
}

func newClientID() string {
	return fmt.Sprintf("ws-%d", time.Now().UnixNano())
}
