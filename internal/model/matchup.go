package model

// FallbackPointsPerMinute is used when no row in the window has positive
// minutes, leaving the league scoring rate undefined.
const FallbackPointsPerMinute = 0.5

// LeaguePointsPerMinute computes the league-wide scoring rate
// sum(pts)/sum(minutes) over rows with positive minutes.
func LeaguePointsPerMinute(rows []BoxScoreRow) float64 {
	var points, minutes float64
	for _, r := range rows {
		if r.Minutes > 0 {
			points += r.Points
			minutes += r.Minutes
		}
	}
	if minutes == 0 {
		return FallbackPointsPerMinute
	}
	return points / minutes
}

// ApplyPositionMatchup converts adjusted minutes into projected points.
// Base points are proj_min times the league scoring rate; the opponent's
// positional modifier then scales the base by (1 + fraction). The adjusted
// value is not clamped, so a strong negative modifier can push it below
// zero.
func ApplyPositionMatchup(projections []MinutesProjection, rows []BoxScoreRow, profile MatchupProfile, opponentTeam string) []PlayerPointsProjection {
	ptsPerMin := LeaguePointsPerMinute(rows)

	out := make([]PlayerPointsProjection, len(projections))
	for i, p := range projections {
		base := p.ProjMin * ptsPerMin
		adjustment := profile.Adjustment(opponentTeam, p.Pos)
		out[i] = PlayerPointsProjection{
			PlayerID:    p.PlayerID,
			Name:        p.Name,
			Team:        p.Team,
			Pos:         p.Pos,
			ProjMin:     p.ProjMin,
			ProjPtsBase: base,
			ProjPtsAdj:  base * (1 + adjustment),
		}
	}
	return out
}
