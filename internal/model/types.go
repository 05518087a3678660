package model

import (
	"fmt"
	"time"
)

// BoxScoreRow is one player's line in one game, as normalized from an
// external source (BallDontLie, ESPN) or generated synthetically. Rows are
// immutable once loaded; the set of rows for a lookback window is the sole
// raw input to the pipeline.
type BoxScoreRow struct {
	GameDate   time.Time `json:"game_date"`
	PlayerID   int       `json:"player_id"`
	PlayerName string    `json:"player_name"`
	Team       string    `json:"team"`
	Pos        string    `json:"pos"`
	Minutes    float64   `json:"minutes"`
	Points     float64   `json:"pts"`
	TeamPoints int       `json:"team_pts"`
}

// Validate rejects structurally invalid rows. Sources are trusted for
// content but not for shape; a malformed row fails the whole run fast
// rather than producing a nonsensical projection.
func (r BoxScoreRow) Validate() error {
	if r.GameDate.IsZero() {
		return fmt.Errorf("box score row: missing game date (player %d)", r.PlayerID)
	}
	if r.PlayerID == 0 {
		return fmt.Errorf("box score row: missing player id (%q on %s)", r.PlayerName, r.GameDate.Format("2006-01-02"))
	}
	if r.Team == "" {
		return fmt.Errorf("box score row: missing team for player %d", r.PlayerID)
	}
	if r.Minutes < 0 {
		return fmt.Errorf("box score row: negative minutes %.1f for player %d", r.Minutes, r.PlayerID)
	}
	if r.Points < 0 {
		return fmt.Errorf("box score row: negative points %.1f for player %d", r.Points, r.PlayerID)
	}
	if r.TeamPoints < 0 {
		return fmt.Errorf("box score row: negative team points %d for %s", r.TeamPoints, r.Team)
	}
	return nil
}

// ValidateRows checks every row from an external source before the pipeline
// consumes them.
func ValidateRows(rows []BoxScoreRow) error {
	for i, r := range rows {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

// MinutesProjection is one player's projected minutes after Stage 1
// (and, in adjusted form, after Stage 2).
type MinutesProjection struct {
	PlayerID int     `json:"player_id"`
	Name     string  `json:"name"`
	Team     string  `json:"team"`
	Pos      string  `json:"pos"`
	ProjMin  float64 `json:"proj_min"`
}

// Injury statuses recognized by the adjustment stage. Any other status
// passes minutes through unchanged.
const (
	StatusOut          = "OUT"
	StatusQuestionable = "QUESTIONABLE"
)

// InjuryEntry is one player's game-day status from the injury feed.
// Probability is already calibrated by the feed (0.7 = 70% chance of
// playing near-normal minutes); no further rescaling is applied here.
type InjuryEntry struct {
	PlayerID    int     `json:"player_id"`
	Status      string  `json:"status"`
	Probability float64 `json:"probability"`
}

// TeamGameAggregate is one team's line for one game, aggregated from box
// score rows. Shot-attempt inputs are fixed league-average assumptions
// (see AggregateTeamGames); the possession estimate is only as good as they
// are.
type TeamGameAggregate struct {
	Team       string    `json:"team"`
	GameDate   time.Time `json:"game_date"`
	TeamPoints int       `json:"team_pts"`
	FGA        float64   `json:"fga"`
	FTA        float64   `json:"fta"`
	OffReb     float64   `json:"oreb"`
	Turnovers  float64   `json:"tov"`
}

// TeamRating holds one team's estimated ratings for the window.
type TeamRating struct {
	Team        string  `json:"team"`
	OffRtg      float64 `json:"off_rtg"`
	DefRtg      float64 `json:"def_rtg"`
	Possessions float64 `json:"poss"`
}

// PlayerPointsProjection is the final per-player projection. ProjPtsAdj is
// the matchup-adjusted figure used downstream; it is intentionally
// unclamped, so a large negative matchup fraction can drive it below zero.
type PlayerPointsProjection struct {
	PlayerID    int     `json:"player_id"`
	Name        string  `json:"name"`
	Team        string  `json:"team"`
	Pos         string  `json:"pos"`
	ProjMin     float64 `json:"proj_min"`
	ProjPtsBase float64 `json:"proj_pts_base"`
	ProjPtsAdj  float64 `json:"proj_pts_adj"`
}

// MatchupProfile maps opponent team -> position -> signed adjustment
// fraction. Missing entries mean no adjustment.
type MatchupProfile map[string]map[string]float64

// Adjustment returns the fraction for (opponent, pos), defaulting to 0.
func (m MatchupProfile) Adjustment(opponent, pos string) float64 {
	if m == nil {
		return 0
	}
	return m[opponent][pos]
}

// ModelResult is the pipeline's terminal output, consumed by the REST/CLI
// presentation layer without further derivation. EV is the expected return
// per unit staked on the over at the supplied book price.
type ModelResult struct {
	UsedRealData  bool                     `json:"used_real_data"`
	RowsLoaded    int                      `json:"rows_loaded"`
	ProjGameTotal float64                  `json:"proj_game_total"`
	BookTotal     float64                  `json:"book_total"`
	POver         float64                  `json:"p_over"`
	EV            float64                  `json:"ev"`
	TeamRatings   []TeamRating             `json:"team_ratings"`
	TopPlayers    []PlayerPointsProjection `json:"top_players"`
}
