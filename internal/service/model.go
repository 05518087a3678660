// Package service orchestrates data sources, the projection pipeline, and
// the pricing engine behind the API surface.
package service

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"log"
	"strconv"
	"time"

	"github.com/fortuna/apollo/internal/cache"
	"github.com/fortuna/apollo/internal/market"
	"github.com/fortuna/apollo/internal/model"
)

// BoxScoreSource loads normalized box score rows for a lookback window.
// Both the BallDontLie and ESPN clients satisfy this.
type BoxScoreSource interface {
	LoadRecentBoxScores(ctx context.Context, days int) ([]model.BoxScoreRow, error)
}

// InjurySource supplies the game-day injury feed.
type InjurySource interface {
	Fetch(ctx context.Context) ([]model.InjuryEntry, error)
}

// ModelService runs the full projection pipeline against live data
// sources, with a short-TTL result cache.
type ModelService struct {
	sources  []BoxScoreSource
	injuries InjurySource
	runner   *model.Runner
	cache    *cache.RedisCache
	cacheTTL time.Duration
}

// NewModelService wires the pipeline service. Sources are tried in order
// until one returns rows; injuries and cache may be nil.
func NewModelService(sources []BoxScoreSource, injuries InjurySource, snapshots market.Store, resultCache *cache.RedisCache, cacheTTL time.Duration) *ModelService {
	return &ModelService{
		sources:  sources,
		injuries: injuries,
		runner:   model.NewRunner(snapshots),
		cache:    resultCache,
		cacheTTL: cacheTTL,
	}
}

// RunOptions selects the window and market for one pipeline run.
type RunOptions struct {
	Days         int
	GameID       string
	MarketType   string
	OpponentTeam string
	Matchup      model.MatchupProfile
	BookOdds     int

	// SyntheticSeed makes fallback runs reproducible; zero seeds from
	// the clock.
	SyntheticSeed int64
}

// RunModel loads box scores, gathers the injury feed, and executes the
// pipeline. A missing injury feed or a failed source is recovered, not
// surfaced: the pipeline's own fallbacks handle empty data.
func (s *ModelService) RunModel(ctx context.Context, opts RunOptions) (*model.ModelResult, error) {
	if opts.Days <= 0 {
		opts.Days = 10
	}
	if opts.MarketType == "" {
		opts.MarketType = "total"
	}

	cacheKey := modelCacheKey(opts)
	if s.cache != nil {
		var cached model.ModelResult
		if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err != nil {
			log.Printf("model cache read failed: %v", err)
		} else if hit {
			return &cached, nil
		}
	}

	var rows []model.BoxScoreRow
	for _, source := range s.sources {
		loaded, err := source.LoadRecentBoxScores(ctx, opts.Days)
		if err != nil {
			log.Printf("box score source failed: %v (trying next)", err)
			continue
		}
		if len(loaded) > 0 {
			rows = loaded
			break
		}
	}

	var injuryFeed []model.InjuryEntry
	if s.injuries != nil {
		feed, err := s.injuries.Fetch(ctx)
		if err != nil {
			log.Printf("injury feed unavailable: %v (running without adjustments)", err)
		} else {
			injuryFeed = feed
		}
	}

	seed := opts.SyntheticSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	result, err := s.runner.Run(ctx, model.RunInput{
		Rows:             rows,
		Injuries:         injuryFeed,
		Matchup:          opts.Matchup,
		OpponentTeam:     opts.OpponentTeam,
		GameID:           opts.GameID,
		MarketType:       opts.MarketType,
		BookOddsAmerican: opts.BookOdds,
		SyntheticSeed:    seed,
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, result, s.cacheTTL); err != nil {
			log.Printf("model cache write failed: %v", err)
		}
	}

	return result, nil
}

// modelCacheKey derives the cache key from every option that changes the
// result, not just the game and market. Two runs share an entry only when
// their full normalized options match; map keys marshal in sorted order,
// so the matchup profile fingerprints deterministically.
func modelCacheKey(opts RunOptions) string {
	payload, err := json.Marshal(opts)
	if err != nil {
		// RunOptions is plain data; marshal cannot fail for real inputs.
		payload = []byte(opts.GameID + "|" + opts.MarketType)
	}

	h := fnv.New64a()
	h.Write(payload)
	return cache.ModelResultKey(opts.GameID, opts.MarketType, strconv.FormatUint(h.Sum64(), 16))
}
