package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fortuna/apollo/internal/market"
	"github.com/fortuna/apollo/internal/publisher"
	"github.com/fortuna/apollo/internal/service"
	"github.com/fortuna/apollo/internal/store"
)

// Server represents the REST API server.
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server.
func NewServer(port string, db *store.Database, modelSvc *service.ModelService, propSvc *service.PropService, snapshots market.Store, pub *publisher.RedisPublisher) *Server {
	handler := NewHandler(db, modelSvc, propSvc, snapshots, pub)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Model
	api.HandleFunc("/model/run", handler.RunModel).Methods("POST")

	// Props
	api.HandleFunc("/props/evaluate", handler.EvaluateProp).Methods("GET")

	// Odds snapshots
	api.HandleFunc("/odds/snapshots", handler.InsertSnapshot).Methods("POST")
	api.HandleFunc("/odds/{gameID}/snapshots", handler.GetSnapshots).Methods("GET")
	api.HandleFunc("/odds/{gameID}/drift", handler.GetDrift).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server.
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
