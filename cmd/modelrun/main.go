// Command modelrun executes the projection pipeline once and prints a
// summary. With no reachable database it runs against an in-memory
// snapshot store seeded with a small demo line history.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/fortuna/apollo/internal/config"
	"github.com/fortuna/apollo/internal/ingest/bdl"
	"github.com/fortuna/apollo/internal/ingest/espn"
	"github.com/fortuna/apollo/internal/ingest/injuries"
	"github.com/fortuna/apollo/internal/market"
	"github.com/fortuna/apollo/internal/service"
	"github.com/fortuna/apollo/internal/store"
	"github.com/fortuna/apollo/internal/store/repository"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	days := flag.Int("days", cfg.LookbackDays, "lookback window in days")
	gameID := flag.String("game-id", cfg.DefaultGameID, "game id for market line history")
	opponent := flag.String("opponent", "", "opponent team abbreviation for matchup adjustment")
	odds := flag.Int("odds", 0, "american odds on the over (0 uses the default)")
	seed := flag.Int64("seed", 0, "synthetic fallback seed (0 seeds from the clock)")
	noDB := flag.Bool("no-db", false, "skip the database and use an in-memory snapshot store")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	snapshots := openSnapshotStore(ctx, cfg, *noDB, *gameID)

	bdlClient := bdl.NewClient(cfg.BDLBaseURL, cfg.BDLAPIKey, cfg.BDLRateLimit)
	espnClient := espn.New(cfg.ESPNAPIBase)
	sources := []service.BoxScoreSource{bdlClient, espnClient}

	var injurySource service.InjurySource
	if cfg.InjuryFeedURL != "" {
		injurySource = injuries.NewClient(cfg.InjuryFeedURL)
	}

	svc := service.NewModelService(sources, injurySource, snapshots, nil, 0)

	result, err := svc.RunModel(ctx, service.RunOptions{
		Days:          *days,
		GameID:        *gameID,
		MarketType:    store.MarketTotal,
		OpponentTeam:  *opponent,
		BookOdds:      *odds,
		SyntheticSeed: *seed,
	})
	if err != nil {
		log.Fatalf("model run failed: %v", err)
	}

	printResult(result.UsedRealData, result.RowsLoaded, result.ProjGameTotal, result.BookTotal, result.POver, result.EV)

	fmt.Println("\nTeam ratings:")
	for _, tr := range result.TeamRatings {
		fmt.Printf("  %-4s off=%.1f def=%.1f\n", tr.Team, tr.OffRtg, tr.DefRtg)
	}

	fmt.Println("\nTop projected scorers:")
	for _, p := range result.TopPlayers {
		fmt.Printf("  %-16s %-4s %4.1f min  %5.1f pts\n", p.Name, p.Team, p.ProjMin, p.ProjPtsAdj)
	}
}

// openSnapshotStore connects to Postgres, falling back to an in-memory
// store seeded with a demo line history when the database is
// unreachable or disabled.
func openSnapshotStore(ctx context.Context, cfg config.Config, noDB bool, gameID string) market.Store {
	if !noDB {
		db, err := store.NewDatabase(cfg.DatabaseDSN)
		if err == nil {
			if err := db.EnsureSchema(); err != nil {
				log.Fatalf("failed to ensure schema: %v", err)
			}
			log.Println("✓ Connected to database")
			return repository.NewOddsRepository(db)
		}
		log.Printf("database unavailable (%v), using in-memory snapshot store", err)
	}

	mem := market.NewMemoryStore()
	seedDemoSnapshots(ctx, mem, gameID)
	return mem
}

// seedDemoSnapshots records a small opening-then-move line history so
// drift and book total have something to work with.
func seedDemoSnapshots(ctx context.Context, s market.Store, gameID string) {
	now := time.Now().UTC()
	demo := []store.OddsSnapshot{
		{GameID: gameID, Bookmaker: "demo_book", MarketType: store.MarketTotal, LineValue: 229.5, OddsAmerican: -110, Timestamp: now.Add(-2 * time.Hour)},
		{GameID: gameID, Bookmaker: "demo_book", MarketType: store.MarketTotal, LineValue: 228.0, OddsAmerican: -110, Timestamp: now.Add(-1 * time.Hour)},
	}
	for i := range demo {
		if err := s.Insert(ctx, &demo[i]); err != nil {
			log.Printf("failed to seed demo snapshot: %v", err)
		}
	}
}

func printResult(usedReal bool, rows int, projTotal, bookTotal, pOver, ev float64) {
	source := "SYNTHETIC"
	if usedReal {
		source = "REAL"
	}

	fmt.Fprintln(os.Stdout, "=== MODEL RUN ===")
	fmt.Printf("Data source:      %s (%d rows)\n", source, rows)
	fmt.Printf("Projected total:  %.2f\n", projTotal)
	fmt.Printf("Book total:       %.2f\n", bookTotal)
	fmt.Printf("P(over):          %.4f\n", pOver)
	fmt.Printf("EV per unit:      %+.4f\n", ev)
}
