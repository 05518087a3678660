package store

import "time"

// Market types tracked by the snapshot store.
const (
	MarketTotal = "total"
)

// OddsSnapshot is one observation of a bookmaker line. Rows are append-only
// and immutable once inserted; line history is reconstructed by ordering a
// game's snapshots by timestamp, never by editing them.
type OddsSnapshot struct {
	ID           int64     `json:"id" db:"id"`
	GameID       string    `json:"game_id" db:"game_id"`
	Bookmaker    string    `json:"bookmaker" db:"bookmaker"`
	MarketType   string    `json:"market_type" db:"market_type"`
	LineValue    float64   `json:"line_value" db:"line_value"`
	OddsAmerican int       `json:"odds_american" db:"odds_american"`
	Timestamp    time.Time `json:"timestamp" db:"snapshot_time"`
}
