package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaguePointsPerMinute(t *testing.T) {
	rows := []BoxScoreRow{
		{Minutes: 30, Points: 15},
		{Minutes: 20, Points: 10},
		{Minutes: 0, Points: 0}, // DNP rows are excluded
	}
	assert.InDelta(t, 0.5, LeaguePointsPerMinute(rows), 1e-9)
}

func TestLeaguePointsPerMinute_NoMinutesFallsBack(t *testing.T) {
	rows := []BoxScoreRow{{Minutes: 0, Points: 0}}
	assert.Equal(t, FallbackPointsPerMinute, LeaguePointsPerMinute(rows))
	assert.Equal(t, FallbackPointsPerMinute, LeaguePointsPerMinute(nil))
}

func TestApplyPositionMatchup_NoProfileMeansBaseOnly(t *testing.T) {
	projections := []MinutesProjection{{PlayerID: 1, Pos: "G", ProjMin: 30}}
	rows := []BoxScoreRow{{Minutes: 10, Points: 6}} // 0.6 pts/min

	out := ApplyPositionMatchup(projections, rows, nil, "BOS")
	require.Len(t, out, 1)
	assert.InDelta(t, 18.0, out[0].ProjPtsBase, 1e-9)
	assert.InDelta(t, 18.0, out[0].ProjPtsAdj, 1e-9)
}

func TestApplyPositionMatchup_PositiveModifier(t *testing.T) {
	projections := []MinutesProjection{{PlayerID: 1, Pos: "G", ProjMin: 30}}
	rows := []BoxScoreRow{{Minutes: 10, Points: 5}}
	profile := MatchupProfile{"BOS": {"G": 0.10}}

	out := ApplyPositionMatchup(projections, rows, profile, "BOS")
	require.Len(t, out, 1)
	assert.InDelta(t, 15.0, out[0].ProjPtsBase, 1e-9)
	assert.InDelta(t, 16.5, out[0].ProjPtsAdj, 1e-9)
}

func TestApplyPositionMatchup_Unclamped(t *testing.T) {
	projections := []MinutesProjection{{PlayerID: 1, Pos: "C", ProjMin: 20}}
	rows := []BoxScoreRow{{Minutes: 10, Points: 5}}
	profile := MatchupProfile{"BOS": {"C": -1.5}}

	out := ApplyPositionMatchup(projections, rows, profile, "BOS")
	require.Len(t, out, 1)
	assert.Less(t, out[0].ProjPtsAdj, 0.0)
}

func TestApplyPositionMatchup_DifferentOpponentIgnored(t *testing.T) {
	projections := []MinutesProjection{{PlayerID: 1, Pos: "G", ProjMin: 30}}
	rows := []BoxScoreRow{{Minutes: 10, Points: 5}}
	profile := MatchupProfile{"MIA": {"G": 0.25}}

	out := ApplyPositionMatchup(projections, rows, profile, "BOS")
	require.Len(t, out, 1)
	assert.Equal(t, out[0].ProjPtsBase, out[0].ProjPtsAdj)
}

func TestMatchupProfileAdjustment(t *testing.T) {
	profile := MatchupProfile{"BOS": {"G": 0.1, "F": -0.05}}

	assert.Equal(t, 0.1, profile.Adjustment("BOS", "G"))
	assert.Equal(t, -0.05, profile.Adjustment("BOS", "F"))
	assert.Equal(t, 0.0, profile.Adjustment("BOS", "C"))
	assert.Equal(t, 0.0, profile.Adjustment("LAL", "G"))
	assert.Equal(t, 0.0, MatchupProfile(nil).Adjustment("BOS", "G"))
}
