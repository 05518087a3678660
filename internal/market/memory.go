package market

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fortuna/apollo/internal/store"
)

// MemoryStore is an in-process Store for tests and CLI runs without a
// database. It mirrors the repository's semantics: append-only inserts,
// loads ordered by timestamp with insert order as the tiebreaker.
type MemoryStore struct {
	mu        sync.Mutex
	nextID    int64
	snapshots []store.OddsSnapshot
}

// NewMemoryStore creates an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Insert appends a snapshot, assigning its ID and defaulting a zero
// timestamp to now.
func (m *MemoryStore) Insert(_ context.Context, snap *store.OddsSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now().UTC()
	}
	snap.ID = m.nextID
	m.nextID++

	m.snapshots = append(m.snapshots, *snap)
	return nil
}

// Load returns the matching snapshots ordered ascending by timestamp.
func (m *MemoryStore) Load(_ context.Context, gameID, marketType string) ([]store.OddsSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []store.OddsSnapshot
	for _, snap := range m.snapshots {
		if snap.GameID == gameID && snap.MarketType == marketType {
			matched = append(matched, snap)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Timestamp.Before(matched[j].Timestamp)
		}
		return matched[i].ID < matched[j].ID
	})
	return matched, nil
}
