package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/fortuna/apollo/internal/ingest/bdl"
	"github.com/fortuna/apollo/internal/pricing"
)

// statAliases maps user-facing stat names onto the season-average keys.
var statAliases = map[string]string{
	"pts": "pts", "point": "pts", "points": "pts",
	"reb": "reb", "rebs": "reb", "rebound": "reb", "rebounds": "reb",
	"ast": "ast", "assist": "ast", "assists": "ast",
}

// statNames are the display names for supported stats.
var statNames = map[string]string{
	"pts": "Points",
	"reb": "Rebounds",
	"ast": "Assists",
}

// PropService prices player props off season averages.
type PropService struct {
	bdl    *bdl.Client
	season int
}

// NewPropService creates a prop evaluation service.
func NewPropService(client *bdl.Client, season int) *PropService {
	return &PropService{bdl: client, season: season}
}

// PropResult is the API-facing prop evaluation: who was priced, what rate
// fed the model, and the full two-sided evaluation.
type PropResult struct {
	PlayerID          int    `json:"player_id,omitempty"`
	PlayerName        string `json:"player_name"`
	Stat              string `json:"stat"`
	StatName          string `json:"stat_name"`
	UsedSeasonAverage bool   `json:"used_season_average"`
	pricing.PropEvaluation
}

// Evaluate prices a prop line for a player's stat. The expected rate is
// the player's season average; when the player or their averages cannot
// be found the line itself stands in (a push-centered prior), flagged via
// UsedSeasonAverage=false. Book odds may be nil on either side.
func (s *PropService) Evaluate(ctx context.Context, playerName, stat string, line float64, overAmerican, underAmerican *int) (*PropResult, error) {
	statKey, ok := statAliases[strings.ToLower(strings.TrimSpace(stat))]
	if !ok {
		return nil, fmt.Errorf("unknown stat %q: use one of pts, reb, ast", stat)
	}

	result := &PropResult{
		PlayerName: playerName,
		Stat:       statKey,
		StatName:   statNames[statKey],
	}

	expected := line
	player, err := s.bdl.SearchPlayer(ctx, playerName)
	if err != nil {
		log.Printf("player search failed: %v (falling back to line as expected rate)", err)
	} else if player != nil {
		result.PlayerID = player.ID
		result.PlayerName = player.FullName()

		averages, err := s.bdl.PlayerSeasonAverages(ctx, player.ID, s.season)
		if err != nil {
			log.Printf("season averages failed for %d: %v (falling back to line)", player.ID, err)
		} else if averages != nil {
			if avg, ok := averages.Stat(statKey); ok && avg > 0 {
				expected = avg
				result.UsedSeasonAverage = true
			}
		}
	}

	result.PropEvaluation = pricing.EvaluateProp(line, expected, overAmerican, underAmerican)
	return result, nil
}
