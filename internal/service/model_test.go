package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/apollo/internal/market"
	"github.com/fortuna/apollo/internal/model"
)

type stubSource struct {
	rows []model.BoxScoreRow
	err  error
}

func (s *stubSource) LoadRecentBoxScores(context.Context, int) ([]model.BoxScoreRow, error) {
	return s.rows, s.err
}

type stubInjuries struct {
	feed []model.InjuryEntry
	err  error
}

func (s *stubInjuries) Fetch(context.Context) ([]model.InjuryEntry, error) {
	return s.feed, s.err
}

func windowRows(playerID int, team string, games int) []model.BoxScoreRow {
	rows := make([]model.BoxScoreRow, 0, games)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < games; i++ {
		rows = append(rows, model.BoxScoreRow{
			GameDate:   start.AddDate(0, 0, i),
			PlayerID:   playerID,
			PlayerName: "Player",
			Team:       team,
			Pos:        "G",
			Minutes:    32,
			Points:     18,
			TeamPoints: 110,
		})
	}
	return rows
}

func TestRunModel_UsesFirstSourceWithRows(t *testing.T) {
	rows := append(windowRows(1, "LAL", 12), windowRows(2, "BOS", 12)...)
	failing := &stubSource{err: errors.New("provider down")}
	working := &stubSource{rows: rows}

	svc := NewModelService([]BoxScoreSource{failing, working}, nil, market.NewMemoryStore(), nil, 0)

	result, err := svc.RunModel(context.Background(), RunOptions{})
	require.NoError(t, err)
	assert.True(t, result.UsedRealData)
	assert.Equal(t, len(rows), result.RowsLoaded)
}

func TestRunModel_AllSourcesEmptyFallsBackToSynthetic(t *testing.T) {
	svc := NewModelService([]BoxScoreSource{&stubSource{}, &stubSource{err: errors.New("down")}}, nil, market.NewMemoryStore(), nil, 0)

	result, err := svc.RunModel(context.Background(), RunOptions{SyntheticSeed: 42})
	require.NoError(t, err)
	assert.False(t, result.UsedRealData)
	assert.Greater(t, result.RowsLoaded, 0)
}

func TestRunModel_InjuryFeedErrorIsNotFatal(t *testing.T) {
	svc := NewModelService(
		[]BoxScoreSource{&stubSource{}},
		&stubInjuries{err: errors.New("feed unreachable")},
		market.NewMemoryStore(), nil, 0)

	result, err := svc.RunModel(context.Background(), RunOptions{SyntheticSeed: 42})
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestRunModel_InjuryFeedApplied(t *testing.T) {
	svc := NewModelService([]BoxScoreSource{&stubSource{}}, &stubInjuries{}, market.NewMemoryStore(), nil, 0)
	opts := RunOptions{SyntheticSeed: 42}

	baseline, err := svc.RunModel(context.Background(), opts)
	require.NoError(t, err)

	injSvc := NewModelService(
		[]BoxScoreSource{&stubSource{}},
		&stubInjuries{feed: []model.InjuryEntry{{PlayerID: 11, Status: model.StatusOut}}},
		market.NewMemoryStore(), nil, 0)

	injured, err := injSvc.RunModel(context.Background(), opts)
	require.NoError(t, err)

	assert.Less(t, injured.ProjGameTotal, baseline.ProjGameTotal)
}

func TestModelCacheKey_DistinguishesOptions(t *testing.T) {
	base := RunOptions{
		Days:       10,
		GameID:     "G1",
		MarketType: "total",
	}

	variants := []RunOptions{
		{Days: 5, GameID: "G1", MarketType: "total"},
		{Days: 10, GameID: "G1", MarketType: "total", OpponentTeam: "BOS"},
		{Days: 10, GameID: "G1", MarketType: "total", BookOdds: 150},
		{Days: 10, GameID: "G1", MarketType: "total", SyntheticSeed: 42},
		{Days: 10, GameID: "G1", MarketType: "total",
			Matchup: model.MatchupProfile{"BOS": {"G": 0.1}}},
		{Days: 10, GameID: "G2", MarketType: "total"},
		{Days: 10, GameID: "G1", MarketType: "spread"},
	}

	baseKey := modelCacheKey(base)
	for i, v := range variants {
		assert.NotEqual(t, baseKey, modelCacheKey(v), "variant %d must not share the base key", i)
	}
}

func TestModelCacheKey_StableForEqualOptions(t *testing.T) {
	opts := RunOptions{
		Days:         10,
		GameID:       "G1",
		MarketType:   "total",
		OpponentTeam: "BOS",
		BookOdds:     -110,
		Matchup:      model.MatchupProfile{"BOS": {"G": 0.1, "F": -0.05}},
	}

	// Same options, fresh map value: map marshaling is key-sorted, so
	// the fingerprint must not depend on construction order.
	same := opts
	same.Matchup = model.MatchupProfile{"BOS": {"F": -0.05, "G": 0.1}}

	assert.Equal(t, modelCacheKey(opts), modelCacheKey(same))
}

func TestRunModel_NoSources(t *testing.T) {
	svc := NewModelService(nil, nil, market.NewMemoryStore(), nil, 0)

	result, err := svc.RunModel(context.Background(), RunOptions{SyntheticSeed: 42})
	require.NoError(t, err)
	assert.False(t, result.UsedRealData)
}
