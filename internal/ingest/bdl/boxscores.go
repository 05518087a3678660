package bdl

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fortuna/apollo/internal/model"
)

type apiTeam struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbreviation"`
}

type apiGame struct {
	ID               int     `json:"id"`
	Date             string  `json:"date"`
	HomeTeam         apiTeam `json:"home_team"`
	VisitorTeam      apiTeam `json:"visitor_team"`
	HomeTeamScore    int     `json:"home_team_score"`
	VisitorTeamScore int     `json:"visitor_team_score"`
}

type apiStatLine struct {
	Minutes string  `json:"min"`
	Points  float64 `json:"pts"`
	Player  struct {
		ID        int    `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Position  string `json:"position"`
	} `json:"player"`
	Team apiTeam `json:"team"`
}

// GamesForDate fetches all NBA games on a date (UTC).
func (c *Client) GamesForDate(ctx context.Context, date time.Time) ([]apiGame, error) {
	params := url.Values{}
	params.Set("dates[]", date.Format("2006-01-02"))
	params.Set("per_page", "100")

	var games []apiGame
	if err := c.get(ctx, "/games", params, &games); err != nil {
		return nil, fmt.Errorf("fetching games for %s: %w", date.Format("2006-01-02"), err)
	}
	return games, nil
}

// StatsForGame fetches all player stat lines for one game.
func (c *Client) StatsForGame(ctx context.Context, gameID int) ([]apiStatLine, error) {
	params := url.Values{}
	params.Set("game_ids[]", strconv.Itoa(gameID))
	params.Set("per_page", "100")

	var stats []apiStatLine
	if err := c.get(ctx, "/stats", params, &stats); err != nil {
		return nil, fmt.Errorf("fetching stats for game %d: %w", gameID, err)
	}
	return stats, nil
}

// LoadRecentBoxScores walks back over the last `days` days and normalizes
// every player stat line into the pipeline's box score schema. Days with
// no games, and games whose stats fail to load, are skipped rather than
// failing the window: a short window is still a usable window, and an
// empty one triggers the caller's synthetic fallback.
func (c *Client) LoadRecentBoxScores(ctx context.Context, days int) ([]model.BoxScoreRow, error) {
	var rows []model.BoxScoreRow

	for offset := 1; offset <= days; offset++ {
		date := time.Now().UTC().AddDate(0, 0, -offset)

		games, err := c.GamesForDate(ctx, date)
		if err != nil {
			log.Printf("[bdl] %v (skipping date)", err)
			continue
		}

		for _, g := range games {
			stats, err := c.StatsForGame(ctx, g.ID)
			if err != nil {
				log.Printf("[bdl] %v (skipping game)", err)
				continue
			}

			teamTotals := map[string]int{
				g.HomeTeam.Abbreviation:    g.HomeTeamScore,
				g.VisitorTeam.Abbreviation: g.VisitorTeamScore,
			}

			gameDate := date.Truncate(24 * time.Hour)

			for _, s := range stats {
				pos := s.Player.Position
				if pos == "" {
					pos = "?"
				}
				rows = append(rows, model.BoxScoreRow{
					GameDate:   gameDate,
					PlayerID:   s.Player.ID,
					PlayerName: strings.TrimSpace(s.Player.FirstName + " " + s.Player.LastName),
					Team:       s.Team.Abbreviation,
					Pos:        pos,
					Minutes:    ParseMinutes(s.Minutes),
					Points:     s.Points,
					TeamPoints: teamTotals[s.Team.Abbreviation],
				})
			}
		}
	}

	log.Printf("[bdl] loaded %d player stat lines from last %d days", len(rows), days)
	return rows, nil
}

// ParseMinutes converts BDL's "34:21" minute strings (occasionally plain
// "34") into fractional minutes. Unparseable values count as zero.
func ParseMinutes(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if m, sec, ok := strings.Cut(s, ":"); ok {
		minutes, err1 := strconv.ParseFloat(m, 64)
		seconds, err2 := strconv.ParseFloat(sec, 64)
		if err1 != nil || err2 != nil {
			return 0
		}
		return minutes + seconds/60.0
	}

	minutes, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return minutes
}
