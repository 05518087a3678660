// Package scheduler runs the periodic odds polling loop: scrape the lines
// page, append new snapshots, publish events.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/fortuna/apollo/internal/ingest/lines"
	"github.com/fortuna/apollo/internal/market"
	"github.com/fortuna/apollo/internal/publisher"
)

// Config holds scheduler configuration.
type Config struct {
	PollInterval      time.Duration // Default: 5m
	EnableOddsPolling bool
	MaxRetries        int
	RetryDelay        time.Duration
}

// DefaultConfig returns default scheduler configuration.
func DefaultConfig() *Config {
	return &Config{
		PollInterval:      5 * time.Minute,
		EnableOddsPolling: true,
		MaxRetries:        3,
		RetryDelay:        5 * time.Second,
	}
}

// Orchestrator manages the odds polling task.
type Orchestrator struct {
	linesClient *lines.Client
	snapshots   market.Store
	publisher   *publisher.RedisPublisher
	config      *Config
	cancel      context.CancelFunc
}

// NewOrchestrator creates the polling orchestrator. The publisher may be
// nil, in which case snapshots are stored without event publication.
func NewOrchestrator(linesClient *lines.Client, snapshots market.Store, pub *publisher.RedisPublisher, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}
	return &Orchestrator{
		linesClient: linesClient,
		snapshots:   snapshots,
		publisher:   pub,
		config:      config,
	}
}

// Start runs the polling loop until the context is canceled.
func (o *Orchestrator) Start(ctx context.Context) {
	if !o.config.EnableOddsPolling || o.linesClient == nil {
		log.Println("odds polling disabled")
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	log.Printf("✓ Odds polling started (interval %v)", o.config.PollInterval)

	ticker := time.NewTicker(o.config.PollInterval)
	defer ticker.Stop()

	// First poll immediately, then on the ticker
	o.pollWithRetry(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Println("odds polling stopped")
			return
		case <-ticker.C:
			o.pollWithRetry(ctx)
		}
	}
}

// Stop cancels the polling loop.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
}

func (o *Orchestrator) pollWithRetry(ctx context.Context) {
	for attempt := 1; attempt <= o.config.MaxRetries; attempt++ {
		if err := o.pollOnce(ctx); err == nil {
			return
		} else if attempt < o.config.MaxRetries {
			log.Printf("odds poll attempt %d/%d failed: %v (retrying in %v)", attempt, o.config.MaxRetries, err, o.config.RetryDelay)
			select {
			case <-ctx.Done():
				return
			case <-time.After(o.config.RetryDelay):
			}
		} else {
			log.Printf("odds poll failed after %d attempts: %v", o.config.MaxRetries, err)
		}
	}
}

// pollOnce scrapes the lines page and appends one snapshot per parsed
// board row. Inserts are individually best-effort: one bad row should not
// discard the rest of the board.
func (o *Orchestrator) pollOnce(ctx context.Context) error {
	html, err := o.linesClient.FetchPage(ctx)
	if err != nil {
		return err
	}

	snapshots, err := lines.ParseOddsBoardHTML(html)
	if err != nil {
		return err
	}

	inserted := 0
	for i := range snapshots {
		snap := &snapshots[i]
		if err := o.snapshots.Insert(ctx, snap); err != nil {
			log.Printf("snapshot insert failed for %s/%s: %v", snap.GameID, snap.MarketType, err)
			continue
		}
		inserted++

		if o.publisher != nil {
			history, err := o.snapshots.Load(ctx, snap.GameID, snap.MarketType)
			if err != nil {
				log.Printf("snapshot history load failed for %s/%s: %v", snap.GameID, snap.MarketType, err)
				continue
			}
			event := publisher.SnapshotEvent{
				Snapshot: *snap,
				Drift:    market.ComputeLineDrift(history),
			}
			if err := o.publisher.PublishSnapshot(ctx, event); err != nil {
				log.Printf("snapshot publish failed for %s/%s: %v", snap.GameID, snap.MarketType, err)
			}
		}
	}

	log.Printf("odds poll complete: %d/%d snapshots stored", inserted, len(snapshots))
	return nil
}
