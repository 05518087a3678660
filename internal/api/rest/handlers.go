package rest

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/fortuna/apollo/internal/market"
	"github.com/fortuna/apollo/internal/model"
	"github.com/fortuna/apollo/internal/pricing"
	"github.com/fortuna/apollo/internal/publisher"
	"github.com/fortuna/apollo/internal/service"
	"github.com/fortuna/apollo/internal/store"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	db        *store.Database
	modelSvc  *service.ModelService
	propSvc   *service.PropService
	snapshots market.Store
	publisher *publisher.RedisPublisher
}

// NewHandler creates a new handler.
func NewHandler(db *store.Database, modelSvc *service.ModelService, propSvc *service.PropService, snapshots market.Store, pub *publisher.RedisPublisher) *Handler {
	return &Handler{
		db:        db,
		modelSvc:  modelSvc,
		propSvc:   propSvc,
		snapshots: snapshots,
		publisher: pub,
	}
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Error encoding JSON response: %v", err)
		}
	}
}

// respondError writes a JSON error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"status":   "healthy",
		"database": "connected",
	}
	code := http.StatusOK

	if h.db != nil {
		if err := h.db.HealthCheck(); err != nil {
			status["status"] = "unhealthy"
			status["database"] = err.Error()
			code = http.StatusServiceUnavailable
		}
	} else {
		status["database"] = "not configured"
	}

	respondJSON(w, code, status)
}

// runModelRequest is the body for POST /api/v1/model/run.
type runModelRequest struct {
	GameID        string               `json:"game_id"`
	MarketType    string               `json:"market_type"`
	OpponentTeam  string               `json:"opponent_team"`
	Days          int                  `json:"days"`
	BookOdds      int                  `json:"book_odds"`
	Matchup       model.MatchupProfile `json:"matchup,omitempty"`
	SyntheticSeed int64                `json:"synthetic_seed,omitempty"`
}

// RunModel handles POST /api/v1/model/run
func (h *Handler) RunModel(w http.ResponseWriter, r *http.Request) {
	var req runModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.modelSvc.RunModel(r.Context(), service.RunOptions{
		Days:          req.Days,
		GameID:        req.GameID,
		MarketType:    req.MarketType,
		OpponentTeam:  req.OpponentTeam,
		Matchup:       req.Matchup,
		BookOdds:      req.BookOdds,
		SyntheticSeed: req.SyntheticSeed,
	})
	if err != nil {
		log.Printf("Error running model: %v", err)
		respondError(w, http.StatusInternalServerError, "model run failed")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// EvaluateProp handles GET /api/v1/props/evaluate
// Query params: player, stat, line, over (optional), under (optional).
func (h *Handler) EvaluateProp(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	player := q.Get("player")
	if player == "" {
		respondError(w, http.StatusBadRequest, "player parameter is required")
		return
	}
	stat := q.Get("stat")
	if stat == "" {
		respondError(w, http.StatusBadRequest, "stat parameter is required")
		return
	}
	line, err := strconv.ParseFloat(q.Get("line"), 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "line must be a number")
		return
	}

	var overOdds, underOdds *int
	if raw := q.Get("over"); raw != "" {
		v, ok := pricing.ParseAmerican(raw)
		if !ok {
			respondError(w, http.StatusBadRequest, "over must be american odds")
			return
		}
		overOdds = &v
	}
	if raw := q.Get("under"); raw != "" {
		v, ok := pricing.ParseAmerican(raw)
		if !ok {
			respondError(w, http.StatusBadRequest, "under must be american odds")
			return
		}
		underOdds = &v
	}

	result, err := h.propSvc.Evaluate(r.Context(), player, stat, line, overOdds, underOdds)
	if err != nil {
		log.Printf("Error evaluating prop for %s: %v", player, err)
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// InsertSnapshot handles POST /api/v1/odds/snapshots
func (h *Handler) InsertSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap store.OddsSnapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if snap.GameID == "" || snap.MarketType == "" {
		respondError(w, http.StatusBadRequest, "game_id and market_type are required")
		return
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now().UTC()
	}

	if err := h.snapshots.Insert(r.Context(), &snap); err != nil {
		log.Printf("Error inserting snapshot: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to store snapshot")
		return
	}

	if h.publisher != nil {
		history, err := h.snapshots.Load(r.Context(), snap.GameID, snap.MarketType)
		if err != nil {
			log.Printf("Error loading snapshot history for %s: %v", snap.GameID, err)
			history = []store.OddsSnapshot{snap}
		}
		event := publisher.SnapshotEvent{
			Snapshot: snap,
			Drift:    market.ComputeLineDrift(history),
		}
		if err := h.publisher.PublishSnapshot(r.Context(), event); err != nil {
			log.Printf("Error publishing snapshot event: %v", err)
		}
	}

	respondJSON(w, http.StatusCreated, snap)
}

// GetSnapshots handles GET /api/v1/odds/{gameID}/snapshots
func (h *Handler) GetSnapshots(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameID"]
	marketType := r.URL.Query().Get("market")
	if marketType == "" {
		marketType = store.MarketTotal
	}

	snaps, err := h.snapshots.Load(r.Context(), gameID, marketType)
	if err != nil {
		log.Printf("Error loading snapshots for %s: %v", gameID, err)
		respondError(w, http.StatusInternalServerError, "failed to load snapshots")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game_id":     gameID,
		"market_type": marketType,
		"count":       len(snaps),
		"snapshots":   snaps,
	})
}

// GetDrift handles GET /api/v1/odds/{gameID}/drift
func (h *Handler) GetDrift(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameID"]
	marketType := r.URL.Query().Get("market")
	if marketType == "" {
		marketType = store.MarketTotal
	}

	snaps, err := h.snapshots.Load(r.Context(), gameID, marketType)
	if err != nil {
		log.Printf("Error loading snapshots for %s: %v", gameID, err)
		respondError(w, http.StatusInternalServerError, "failed to load snapshots")
		return
	}

	drift := market.ComputeLineDrift(snaps)
	if drift == nil {
		respondError(w, http.StatusNotFound, "no snapshots recorded for game")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game_id":     gameID,
		"market_type": marketType,
		"drift":       drift,
	})
}
