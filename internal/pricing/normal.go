package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// FallbackTeamStdDev stands in for the empirical per-team scoring standard
// deviation when the sample is degenerate (fewer than two team games) or
// non-positive.
const FallbackTeamStdDev = 9.0

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// TeamStdDev estimates the per-team scoring standard deviation from
// observed team game totals (sample standard deviation). Degenerate
// samples fall back to FallbackTeamStdDev.
func TeamStdDev(teamGamePoints []float64) float64 {
	if len(teamGamePoints) < 2 {
		return FallbackTeamStdDev
	}
	sd := stat.StdDev(teamGamePoints, nil)
	if math.IsNaN(sd) || sd <= 0 {
		return FallbackTeamStdDev
	}
	return sd
}

// GameStdDev combines two independent, identically distributed team totals
// into a game-total standard deviation: sqrt(2) * sigma_team.
func GameStdDev(teamStdDev float64) float64 {
	sd := math.Sqrt2 * teamStdDev
	if sd <= 0 {
		return FallbackTeamStdDev
	}
	return sd
}

// NormalOverProbability is the chance the realized game total exceeds the
// book line under a Normal(projectedTotal, gameStdDev) model:
// P(over B) = 1 - Phi((B - T) / sigma).
func NormalOverProbability(bookTotal, projectedTotal, gameStdDev float64) float64 {
	z := (bookTotal - projectedTotal) / gameStdDev
	return 1.0 - stdNormal.CDF(z)
}
