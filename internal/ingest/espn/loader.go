package espn

import (
	"context"
	"log"
	"time"

	"github.com/fortuna/apollo/internal/model"
)

// LoadRecentBoxScores walks back over the last `days` days of scoreboards
// and collects normalized box score rows from each game summary. Dates
// with no games and games that fail to parse are skipped; an empty result
// is the caller's signal to fall back to another source.
func (c *Client) LoadRecentBoxScores(ctx context.Context, days int) ([]model.BoxScoreRow, error) {
	var rows []model.BoxScoreRow

	for offset := 1; offset <= days; offset++ {
		date := time.Now().UTC().AddDate(0, 0, -offset)

		scoreboard, err := c.FetchScoreboard(ctx, date)
		if err != nil {
			log.Printf("[espn] scoreboard %s failed: %v (skipping date)", date.Format("20060102"), err)
			continue
		}

		for _, gameID := range ParseScoreboardGameIDs(scoreboard) {
			summary, err := c.FetchGameSummary(ctx, gameID)
			if err != nil {
				log.Printf("[espn] summary %s failed: %v (skipping game)", gameID, err)
				continue
			}

			gameRows, err := ParseSummaryBoxScore(summary)
			if err != nil {
				log.Printf("[espn] parsing game %s failed: %v (skipping game)", gameID, err)
				continue
			}
			rows = append(rows, gameRows...)
		}
	}

	log.Printf("[espn] loaded %d player stat lines from last %d days", len(rows), days)
	return rows, nil
}
