package bdl

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// PlayerInfo is a BDL player search hit.
type PlayerInfo struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Team      struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
}

// FullName joins the player's first and last names.
func (p PlayerInfo) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// SeasonAverages holds the per-game season averages the prop evaluator
// feeds into the Poisson model.
type SeasonAverages struct {
	PlayerID    int     `json:"player_id"`
	GamesPlayed int     `json:"games_played"`
	Points      float64 `json:"pts"`
	Rebounds    float64 `json:"reb"`
	Assists     float64 `json:"ast"`
	Minutes     string  `json:"min"`
}

// Stat returns the named per-game average (pts, reb, ast). The second
// return is false for stats this endpoint does not carry.
func (s SeasonAverages) Stat(key string) (float64, bool) {
	switch key {
	case "pts":
		return s.Points, true
	case "reb":
		return s.Rebounds, true
	case "ast":
		return s.Assists, true
	}
	return 0, false
}

// SearchPlayer returns the first player matching the search term, or nil
// when nothing matches.
func (c *Client) SearchPlayer(ctx context.Context, name string) (*PlayerInfo, error) {
	params := url.Values{}
	params.Set("search", name)
	params.Set("per_page", "5")

	var players []PlayerInfo
	if err := c.get(ctx, "/players", params, &players); err != nil {
		return nil, fmt.Errorf("searching player %q: %w", name, err)
	}
	if len(players) == 0 {
		return nil, nil
	}
	return &players[0], nil
}

// PlayerSeasonAverages returns a player's averages for the season, or nil
// when the player has no recorded games.
func (c *Client) PlayerSeasonAverages(ctx context.Context, playerID, season int) (*SeasonAverages, error) {
	params := url.Values{}
	params.Set("season", strconv.Itoa(season))
	params.Set("player_ids[]", strconv.Itoa(playerID))

	var averages []SeasonAverages
	if err := c.get(ctx, "/season_averages", params, &averages); err != nil {
		return nil, fmt.Errorf("fetching season averages for player %d: %w", playerID, err)
	}
	if len(averages) == 0 {
		return nil, nil
	}
	return &averages[0], nil
}
