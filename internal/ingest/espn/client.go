// Package espn loads NBA box scores from ESPN's public site API. It is the
// alternate box-score source when BallDontLie returns nothing.
package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"time"
)

const (
	// BaseURL for ESPN's public site API
	BaseURL = "https://site.api.espn.com/apis/site/v2/sports"

	// BasketballNBA is the sport path for NBA endpoints
	BasketballNBA = "basketball/nba"
)

// Client handles ESPN API requests.
// Note: uses curl internally because ESPN blocks Go's HTTP client fingerprint.
type Client struct {
	baseURL string
}

// New creates an ESPN API client with a custom base URL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{baseURL: baseURL}
}

// FetchScoreboard fetches games for a specific date.
func (c *Client) FetchScoreboard(ctx context.Context, date time.Time) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/%s/scoreboard?dates=%s", c.baseURL, BasketballNBA, date.Format("20060102"))
	return c.fetch(ctx, url)
}

// FetchGameSummary fetches a detailed game summary with box scores.
func (c *Client) FetchGameSummary(ctx context.Context, gameID string) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/%s/summary?event=%s", c.baseURL, BasketballNBA, gameID)
	return c.fetch(ctx, url)
}

// fetch makes an HTTP GET request using curl.
// ESPN blocks Go's HTTP client but curl works reliably.
func (c *Client) fetch(ctx context.Context, url string) (map[string]interface{}, error) {
	cmd := exec.CommandContext(ctx, "curl", "-s", "-L", "-m", "15", url)

	output, err := cmd.Output()
	if err != nil {
		log.Printf("[espn] curl failed for %s: %v", url, err)
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("curl failed: %s (stderr: %s)", err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("curl execution failed: %w", err)
	}

	// HTML at the front of the body means an error page, not JSON
	if len(output) > 0 && output[0] == '<' {
		return nil, fmt.Errorf("ESPN returned HTML error page: %s", string(output[:min(len(output), 200)]))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return result, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
