package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticBoxScores_Deterministic(t *testing.T) {
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	a := SyntheticBoxScores(end, 42)
	b := SyntheticBoxScores(end, 42)
	assert.Equal(t, a, b)

	c := SyntheticBoxScores(end, 43)
	assert.NotEqual(t, a, c)
}

func TestSyntheticBoxScores_RowsAreValid(t *testing.T) {
	rows := SyntheticBoxScores(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 7)
	require.NotEmpty(t, rows)
	require.NoError(t, ValidateRows(rows))
}

func TestSyntheticBoxScores_CoversBothTeams(t *testing.T) {
	rows := SyntheticBoxScores(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 7)

	teams := map[string]bool{}
	for _, r := range rows {
		teams[r.Team] = true
	}
	assert.True(t, teams["LAL"])
	assert.True(t, teams["BOS"])
}

func TestSyntheticBoxScores_DatesWithinWindow(t *testing.T) {
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := SyntheticBoxScores(end, 7)

	for _, r := range rows {
		assert.False(t, r.GameDate.After(end))
		assert.False(t, r.GameDate.Before(end.AddDate(0, 0, -20)))
	}
}
