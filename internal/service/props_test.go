package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/apollo/internal/ingest/bdl"
)

func propServer(t *testing.T, seasonAvgJSON string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/players":
			fmt.Fprint(w, `{"data":[{"id":115,"first_name":"Stephen","last_name":"Curry","position":"G","team":{"abbreviation":"GSW"}}]}`)
		case "/season_averages":
			fmt.Fprint(w, seasonAvgJSON)
		default:
			http.NotFound(w, r)
		}
	}))
}

func intp(v int) *int { return &v }

func TestEvaluate_UsesSeasonAverage(t *testing.T) {
	server := propServer(t, `{"data":[{"player_id":115,"games_played":60,"pts":26.8,"reb":4.4,"ast":5.1}]}`)
	defer server.Close()

	svc := NewPropService(bdl.NewClient(server.URL, "", 600), 2024)

	result, err := svc.Evaluate(context.Background(), "curry", "points", 24.5, intp(-110), intp(-110))
	require.NoError(t, err)

	assert.Equal(t, 115, result.PlayerID)
	assert.Equal(t, "Stephen Curry", result.PlayerName)
	assert.Equal(t, "pts", result.Stat)
	assert.Equal(t, "Points", result.StatName)
	assert.True(t, result.UsedSeasonAverage)
	assert.Equal(t, 26.8, result.ExpectedRate)
	require.NotNil(t, result.Recommendation)
}

func TestEvaluate_StatAliases(t *testing.T) {
	server := propServer(t, `{"data":[{"player_id":115,"games_played":60,"pts":26.8,"reb":4.4,"ast":5.1}]}`)
	defer server.Close()

	svc := NewPropService(bdl.NewClient(server.URL, "", 600), 2024)

	for alias, key := range map[string]string{"REB": "reb", "rebounds": "reb", "assist": "ast", "PTS": "pts"} {
		result, err := svc.Evaluate(context.Background(), "curry", alias, 5.5, nil, nil)
		require.NoError(t, err, "alias %q", alias)
		assert.Equal(t, key, result.Stat, "alias %q", alias)
	}
}

func TestEvaluate_UnknownStat(t *testing.T) {
	svc := NewPropService(bdl.NewClient("http://localhost:0", "", 600), 2024)

	_, err := svc.Evaluate(context.Background(), "curry", "blocks", 1.5, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown stat")
}

func TestEvaluate_NoAveragesFallsBackToLine(t *testing.T) {
	server := propServer(t, `{"data":[]}`)
	defer server.Close()

	svc := NewPropService(bdl.NewClient(server.URL, "", 600), 2024)

	result, err := svc.Evaluate(context.Background(), "curry", "pts", 24.5, nil, nil)
	require.NoError(t, err)

	assert.False(t, result.UsedSeasonAverage)
	assert.Equal(t, 24.5, result.ExpectedRate)
}

func TestEvaluate_SearchFailureFallsBackToLine(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewPropService(bdl.NewClient(server.URL, "", 600), 2024)

	result, err := svc.Evaluate(context.Background(), "curry", "pts", 24.5, intp(-110), nil)
	require.NoError(t, err)

	assert.False(t, result.UsedSeasonAverage)
	assert.Equal(t, 24.5, result.ExpectedRate)
	assert.Equal(t, "curry", result.PlayerName)
}
