package model

import (
	"math"
	"sort"
)

const (
	// rollingWindow is the number of recent games the minutes average
	// looks back over, by count rather than calendar days.
	rollingWindow = 10

	// DefaultProjectedMinutes is the soft baseline used for players who
	// have not yet accumulated a full rolling window of games.
	DefaultProjectedMinutes = 20.0
)

// ProjectMinutes computes one MinutesProjection per player from the box
// score rows in the lookback window.
//
// For each player, games are ordered ascending by date and the projection
// is the trailing average of minutes over the last rollingWindow games, as
// of the player's most recent game. A player with fewer than rollingWindow
// games has no defined rolling value and receives
// DefaultProjectedMinutes. Players with zero games do not appear at all.
func ProjectMinutes(rows []BoxScoreRow) []MinutesProjection {
	byPlayer := make(map[int][]BoxScoreRow)
	for _, r := range rows {
		byPlayer[r.PlayerID] = append(byPlayer[r.PlayerID], r)
	}

	projections := make([]MinutesProjection, 0, len(byPlayer))
	for _, games := range byPlayer {
		// Stable sort keeps source order for same-day games.
		sort.SliceStable(games, func(i, j int) bool {
			return games[i].GameDate.Before(games[j].GameDate)
		})

		latest := games[len(games)-1]
		projections = append(projections, MinutesProjection{
			PlayerID: latest.PlayerID,
			Name:     latest.PlayerName,
			Team:     latest.Team,
			Pos:      latest.Pos,
			ProjMin:  roundTo1(rollingMinutes(games)),
		})
	}

	sort.Slice(projections, func(i, j int) bool {
		return projections[i].PlayerID < projections[j].PlayerID
	})
	return projections
}

// rollingMinutes returns the trailing-window average as of the last game,
// or the default when the window is not yet full.
func rollingMinutes(games []BoxScoreRow) float64 {
	if len(games) < rollingWindow {
		return DefaultProjectedMinutes
	}
	var sum float64
	for _, g := range games[len(games)-rollingWindow:] {
		sum += g.Minutes
	}
	return sum / float64(rollingWindow)
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
