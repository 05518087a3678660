// Package market owns the bookmaker line history: the snapshot store
// contract and the drift summary derived from an ordered snapshot
// sequence.
package market

import (
	"context"

	"github.com/fortuna/apollo/internal/store"
)

// Store is the snapshot persistence contract injected into the pipeline.
// Implementations must treat snapshots as append-only and return them
// ordered ascending by timestamp. The Postgres repository is the durable
// implementation; MemoryStore backs tests and store-less CLI runs.
type Store interface {
	Insert(ctx context.Context, snap *store.OddsSnapshot) error
	Load(ctx context.Context, gameID, marketType string) ([]store.OddsSnapshot, error)
}
