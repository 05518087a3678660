package model

import (
	"math"
	"math/rand"
	"time"
)

// samplePlayers is the fixed roster used by the synthetic fallback: two
// teams, a star and role players each, enough shape to exercise every
// downstream stage.
var samplePlayers = []struct {
	ID   int
	Name string
	Team string
	Pos  string
}{
	{11, "Leadoff Star", "LAL", "G"},
	{12, "Starter Fwd", "LAL", "F"},
	{13, "Backup Wing", "LAL", "G"},
	{21, "BOS Star", "BOS", "G"},
	{22, "BOS Role", "BOS", "F"},
	{23, "BOS Bench", "BOS", "C"},
}

const syntheticGames = 20

// SyntheticBoxScores generates a deterministic demo window of box score
// rows ending at end. It is the data-unavailable fallback: structured like
// real data (stars around 30 minutes, role players around 14, occasional
// DNPs) but owing nothing to any provider. The same seed and end date
// always produce the same rows.
func SyntheticBoxScores(end time.Time, seed int64) []BoxScoreRow {
	rng := rand.New(rand.NewSource(seed))
	day := end.Truncate(24 * time.Hour)

	rows := make([]BoxScoreRow, 0, syntheticGames*len(samplePlayers))
	for offset := syntheticGames - 1; offset >= 0; offset-- {
		date := day.AddDate(0, 0, -offset)
		for _, p := range samplePlayers {
			minutes := 0.0
			if rng.Float64() > 0.05 {
				base := 14.0
				if p.ID == 11 || p.ID == 21 {
					base = 30.0
				}
				minutes = roundTo1(rng.NormFloat64()*3 + base)
				minutes = math.Max(0, minutes)
			}

			pts := roundTo1(rng.NormFloat64()*5 + minutes*0.45)
			pts = math.Max(0, pts)

			rows = append(rows, BoxScoreRow{
				GameDate:   date,
				PlayerID:   p.ID,
				PlayerName: p.Name,
				Team:       p.Team,
				Pos:        p.Pos,
				Minutes:    minutes,
				Points:     pts,
				TeamPoints: int(rng.NormFloat64()*8 + 110),
			})
		}
	}
	return rows
}
