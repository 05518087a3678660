package bdl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPlayer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players", r.URL.Path)
		assert.Equal(t, "curry", r.URL.Query().Get("search"))

		fmt.Fprint(w, `{"data":[
			{"id":115,"first_name":"Stephen","last_name":"Curry","position":"G","team":{"abbreviation":"GSW"}},
			{"id":116,"first_name":"Seth","last_name":"Curry","position":"G","team":{"abbreviation":"CHA"}}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 600)
	player, err := client.SearchPlayer(context.Background(), "curry")
	require.NoError(t, err)
	require.NotNil(t, player)
	assert.Equal(t, 115, player.ID)
	assert.Equal(t, "Stephen Curry", player.FullName())
	assert.Equal(t, "GSW", player.Team.Abbreviation)
}

func TestSearchPlayer_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 600)
	player, err := client.SearchPlayer(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, player)
}

func TestPlayerSeasonAverages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/season_averages", r.URL.Path)
		assert.Equal(t, "2024", r.URL.Query().Get("season"))
		assert.Equal(t, "115", r.URL.Query().Get("player_ids[]"))

		fmt.Fprint(w, `{"data":[{"player_id":115,"games_played":60,"pts":26.8,"reb":4.4,"ast":5.1,"min":"32:40"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 600)
	averages, err := client.PlayerSeasonAverages(context.Background(), 115, 2024)
	require.NoError(t, err)
	require.NotNil(t, averages)
	assert.Equal(t, 26.8, averages.Points)

	pts, ok := averages.Stat("pts")
	assert.True(t, ok)
	assert.Equal(t, 26.8, pts)

	_, ok = averages.Stat("blk")
	assert.False(t, ok)
}

func TestPlayerSeasonAverages_NoGames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 600)
	averages, err := client.PlayerSeasonAverages(context.Background(), 999, 2024)
	require.NoError(t, err)
	assert.Nil(t, averages)
}
