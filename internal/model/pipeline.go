package model

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/fortuna/apollo/internal/market"
	"github.com/fortuna/apollo/internal/pricing"
)

// DefaultBookOddsAmerican prices the over when the caller supplies no book
// odds, the standard -110 juice.
const DefaultBookOddsAmerican = -110

const topPlayerCount = 5

// RunInput is everything one pipeline invocation needs. Rows come from an
// external source and may be empty, which switches the run to the
// synthetic fallback. Injuries and the matchup profile are per-invocation
// and never persisted.
type RunInput struct {
	Rows         []BoxScoreRow
	Injuries     []InjuryEntry
	Matchup      MatchupProfile
	OpponentTeam string

	// GameID selects the market line history used for the book total.
	GameID     string
	MarketType string

	// BookOddsAmerican prices the over side. Zero means "use the default".
	BookOddsAmerican int

	// SyntheticSeed drives the fallback generator so demo runs are
	// reproducible. SyntheticEnd defaults to the current day.
	SyntheticSeed int64
	SyntheticEnd  time.Time
}

// Runner executes the projection pipeline against an injected snapshot
// store. The stages themselves are pure; the store is the only durable
// collaborator.
type Runner struct {
	snapshots market.Store
}

// NewRunner creates a pipeline runner backed by the given snapshot store.
func NewRunner(snapshots market.Store) *Runner {
	return &Runner{snapshots: snapshots}
}

// Run executes the full pipeline and returns the terminal ModelResult.
//
// Stages run in strict data-dependency order: minutes projection, injury
// adjustment, team ratings (from the same raw rows), positional matchup
// adjustment, market lookup, then the Normal game-total model and EV. Every
// recoverable condition (no rows, no line history, degenerate variance)
// resolves through a documented fallback; the only error surfaced is
// structurally invalid input.
func (r *Runner) Run(ctx context.Context, in RunInput) (*ModelResult, error) {
	if err := ValidateRows(in.Rows); err != nil {
		return nil, fmt.Errorf("invalid box score input: %w", err)
	}

	rows := in.Rows
	usedRealData := len(rows) > 0
	if !usedRealData {
		end := in.SyntheticEnd
		if end.IsZero() {
			end = time.Now().UTC()
		}
		log.Println("no box score rows for window, falling back to synthetic demo data")
		rows = SyntheticBoxScores(end, in.SyntheticSeed)
	}

	projections := ProjectMinutes(rows)
	adjusted := ApplyInjuries(projections, in.Injuries)

	aggregates := AggregateTeamGames(rows)
	ratings := EstimateTeamRatings(aggregates)

	playerPoints := ApplyPositionMatchup(adjusted, rows, in.Matchup, in.OpponentTeam)

	projTotal := projectedGameTotal(playerPoints)

	marketType := in.MarketType
	if marketType == "" {
		marketType = "total"
	}

	// Book total comes from the tracked line history when there is one;
	// otherwise the model's own total stands in so downstream math stays
	// defined.
	bookTotal := projTotal
	if in.GameID != "" {
		snaps, err := r.snapshots.Load(ctx, in.GameID, marketType)
		if err != nil {
			log.Printf("snapshot load failed for %s/%s: %v (continuing without line history)", in.GameID, marketType, err)
		} else if drift := market.ComputeLineDrift(snaps); drift != nil {
			bookTotal = drift.Current
		}
	}

	teamStd := pricing.TeamStdDev(teamGamePoints(aggregates))
	gameStd := pricing.GameStdDev(teamStd)
	pOver := pricing.NormalOverProbability(bookTotal, projTotal, gameStd)

	bookOdds := in.BookOddsAmerican
	if bookOdds == 0 {
		bookOdds = DefaultBookOddsAmerican
	}
	decimal := pricing.AmericanToDecimal(bookOdds)
	ev := pOver*decimal - 1

	return &ModelResult{
		UsedRealData:  usedRealData,
		RowsLoaded:    len(rows),
		ProjGameTotal: projTotal,
		BookTotal:     bookTotal,
		POver:         pOver,
		EV:            ev,
		TeamRatings:   ratings,
		TopPlayers:    topPlayers(playerPoints, topPlayerCount),
	}, nil
}

// projectedGameTotal sums adjusted points per team and takes the two
// highest-scoring teams as the matchup. With fewer than two teams in the
// window the single sum stands alone. Rounded to two decimals.
func projectedGameTotal(players []PlayerPointsProjection) float64 {
	byTeam := make(map[string]float64)
	for _, p := range players {
		byTeam[p.Team] += p.ProjPtsAdj
	}

	totals := make([]float64, 0, len(byTeam))
	for _, t := range byTeam {
		totals = append(totals, t)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(totals)))

	var total float64
	if len(totals) >= 2 {
		total = totals[0] + totals[1]
	} else {
		for _, t := range totals {
			total += t
		}
	}
	return math.Round(total*100) / 100
}

// teamGamePoints extracts each team-game's scored points for the variance
// estimate.
func teamGamePoints(aggregates []TeamGameAggregate) []float64 {
	points := make([]float64, len(aggregates))
	for i, a := range aggregates {
		points[i] = float64(a.TeamPoints)
	}
	return points
}

// topPlayers returns the n highest adjusted scorers, ties broken by player
// ID for stable output.
func topPlayers(players []PlayerPointsProjection, n int) []PlayerPointsProjection {
	sorted := make([]PlayerPointsProjection, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ProjPtsAdj != sorted[j].ProjPtsAdj {
			return sorted[i].ProjPtsAdj > sorted[j].ProjPtsAdj
		}
		return sorted[i].PlayerID < sorted[j].PlayerID
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
