// Package injuries fetches and parses the game-day injury report feed.
// The feed is an HTML report; entries are parsed into the pipeline's
// injury schema and handed to the model per invocation, never persisted.
package injuries

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/apollo/internal/model"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client fetches the injury report page.
type Client struct {
	httpClient *http.Client
	reportURL  string
}

// NewClient creates an injury feed client for the given report URL.
func NewClient(reportURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		reportURL:  reportURL,
	}
}

// Fetch downloads the report and parses it into injury entries.
func (c *Client) Fetch(ctx context.Context) ([]model.InjuryEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.reportURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching injury report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("injury report returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing injury report HTML: %w", err)
	}

	return ParseReport(doc), nil
}
