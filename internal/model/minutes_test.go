package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func rowsForPlayer(playerID int, team string, minutes []float64) []BoxScoreRow {
	rows := make([]BoxScoreRow, 0, len(minutes))
	for i, m := range minutes {
		rows = append(rows, BoxScoreRow{
			GameDate:   day(i),
			PlayerID:   playerID,
			PlayerName: "Player",
			Team:       team,
			Pos:        "G",
			Minutes:    m,
			Points:     m * 0.5,
			TeamPoints: 110,
		})
	}
	return rows
}

func TestProjectMinutes_RollingAverageOfLastTen(t *testing.T) {
	// 12 games: the projection must average only the last 10.
	minutes := []float64{10, 10, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30}
	rows := rowsForPlayer(1, "LAL", minutes)

	projections := ProjectMinutes(rows)
	require.Len(t, projections, 1)
	assert.Equal(t, 1, projections[0].PlayerID)
	assert.Equal(t, 30.0, projections[0].ProjMin)
}

func TestProjectMinutes_FewerThanTenGamesUsesDefault(t *testing.T) {
	rows := rowsForPlayer(1, "LAL", []float64{38, 38, 38, 38, 38})

	projections := ProjectMinutes(rows)
	require.Len(t, projections, 1)
	assert.Equal(t, DefaultProjectedMinutes, projections[0].ProjMin)
}

func TestProjectMinutes_ExactlyTenGames(t *testing.T) {
	rows := rowsForPlayer(1, "LAL", []float64{20, 22, 24, 26, 28, 30, 32, 34, 36, 38})

	projections := ProjectMinutes(rows)
	require.Len(t, projections, 1)
	assert.Equal(t, 29.0, projections[0].ProjMin)
}

func TestProjectMinutes_UnorderedInput(t *testing.T) {
	// Rows arrive newest-first; the window must still cover the most
	// recent ten games.
	minutes := []float64{10, 10, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30}
	rows := rowsForPlayer(1, "LAL", minutes)
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	projections := ProjectMinutes(rows)
	require.Len(t, projections, 1)
	assert.Equal(t, 30.0, projections[0].ProjMin)
}

func TestProjectMinutes_RoundsToOneDecimal(t *testing.T) {
	minutes := make([]float64, 10)
	for i := range minutes {
		minutes[i] = 30.33
	}
	rows := rowsForPlayer(1, "LAL", minutes)

	projections := ProjectMinutes(rows)
	require.Len(t, projections, 1)
	assert.Equal(t, 30.3, projections[0].ProjMin)
}

func TestProjectMinutes_MultiplePlayersSortedByID(t *testing.T) {
	rows := append(rowsForPlayer(7, "BOS", []float64{20, 20, 20}), rowsForPlayer(3, "LAL", []float64{35, 35})...)

	projections := ProjectMinutes(rows)
	require.Len(t, projections, 2)
	assert.Equal(t, 3, projections[0].PlayerID)
	assert.Equal(t, 7, projections[1].PlayerID)
}

func TestProjectMinutes_EmptyInput(t *testing.T) {
	assert.Empty(t, ProjectMinutes(nil))
}
