package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fortuna/apollo/internal/store"
)

// OddsRepository handles odds snapshot data access. Snapshots are
// append-only: there is no update or delete path.
type OddsRepository struct {
	db *store.Database
}

// NewOddsRepository creates a new odds repository.
func NewOddsRepository(db *store.Database) *OddsRepository {
	return &OddsRepository{db: db}
}

// Insert appends a new snapshot and fills in its generated ID. A zero
// timestamp defaults to the current time.
func (r *OddsRepository) Insert(ctx context.Context, snap *store.OddsSnapshot) error {
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now().UTC()
	}

	query := `
		INSERT INTO odds_snapshots (game_id, bookmaker, market_type, line_value, odds_american, snapshot_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		snap.GameID, snap.Bookmaker, snap.MarketType, snap.LineValue, snap.OddsAmerican, snap.Timestamp,
	).Scan(&snap.ID)

	if err != nil {
		return fmt.Errorf("inserting odds snapshot: %w", err)
	}

	return nil
}

// Load returns all snapshots for (gameID, marketType) ordered ascending by
// timestamp, with the insert sequence as a tiebreaker.
func (r *OddsRepository) Load(ctx context.Context, gameID, marketType string) ([]store.OddsSnapshot, error) {
	query := `
		SELECT id, game_id, bookmaker, market_type, line_value, odds_american, snapshot_time
		FROM odds_snapshots
		WHERE game_id = $1 AND market_type = $2
		ORDER BY snapshot_time ASC, id ASC
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID, marketType)
	if err != nil {
		return nil, fmt.Errorf("querying odds snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []store.OddsSnapshot
	for rows.Next() {
		var snap store.OddsSnapshot
		err := rows.Scan(
			&snap.ID, &snap.GameID, &snap.Bookmaker, &snap.MarketType,
			&snap.LineValue, &snap.OddsAmerican, &snap.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning odds snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots, rows.Err()
}
