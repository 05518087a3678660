// Package lines scrapes posted bookmaker lines from a rendered odds page
// and turns them into snapshot rows for the append-only market store.
package lines

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	// UserAgent for scraping requests
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MinRequestInterval between page fetches to avoid rate limiting
	MinRequestInterval = 2 * time.Second
)

// Client fetches odds pages with a headless browser. The lines pages are
// client-side rendered, so a plain HTTP GET returns an empty shell;
// chromedp waits for the odds table to exist before grabbing the HTML.
type Client struct {
	pageURL     string
	lastRequest time.Time
	interval    time.Duration

	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewClient creates a lines scraper for the given odds page.
func NewClient(pageURL string) (*Client, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Client{
		pageURL:  pageURL,
		interval: MinRequestInterval,
		allocCtx: allocCtx,
		cancel:   cancel,
	}, nil
}

// Close releases the browser allocator.
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// FetchPage returns the rendered HTML of the odds page, honoring the
// minimum request interval.
func (c *Client) FetchPage(ctx context.Context) (string, error) {
	if !c.lastRequest.IsZero() {
		elapsed := time.Since(c.lastRequest)
		if elapsed < c.interval {
			wait := c.interval - elapsed
			log.Printf("[lines] rate limiting: waiting %v before next request", wait)
			time.Sleep(wait)
		}
	}

	html, err := c.fetch(ctx)
	c.lastRequest = time.Now()
	return html, err
}

func (c *Client) fetch(ctx context.Context) (string, error) {
	taskCtx, cancelTask := chromedp.NewContext(c.allocCtx)
	defer cancelTask()

	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, 30*time.Second)
	defer cancelTimeout()

	// Merge the caller's cancellation into the browser context
	go func() {
		select {
		case <-ctx.Done():
			cancelTask()
		case <-taskCtx.Done():
		}
	}()

	var html string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(c.pageURL),
		chromedp.WaitVisible("table.odds-board", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("rendering odds page: %w", err)
	}

	return html, nil
}
