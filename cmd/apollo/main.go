package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fortuna/apollo/internal/api/rest"
	"github.com/fortuna/apollo/internal/api/websocket"
	"github.com/fortuna/apollo/internal/cache"
	"github.com/fortuna/apollo/internal/config"
	"github.com/fortuna/apollo/internal/ingest/bdl"
	"github.com/fortuna/apollo/internal/ingest/espn"
	"github.com/fortuna/apollo/internal/ingest/injuries"
	"github.com/fortuna/apollo/internal/ingest/lines"
	"github.com/fortuna/apollo/internal/publisher"
	"github.com/fortuna/apollo/internal/scheduler"
	"github.com/fortuna/apollo/internal/service"
	"github.com/fortuna/apollo/internal/store"
	"github.com/fortuna/apollo/internal/store/repository"
)

const (
	serviceName    = "apollo"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - NBA Projection & Pricing Service", serviceName, serviceVersion)

	// .env is optional; environment wins either way
	if err := godotenv.Load(); err == nil {
		log.Println("✓ Loaded .env file")
	}

	cfg := config.Load()

	// Initialize database connection
	db, err := store.NewDatabase(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("✓ Connected to database")

	if err := db.EnsureSchema(); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	log.Println("✓ Schema ensured")

	snapshots := repository.NewOddsRepository(db)

	// Initialize Redis cache with retry logic
	var redisCache *cache.RedisCache
	maxRetries := 30
	retryDelay := 2 * time.Second

	log.Println("Connecting to Redis...")
	for i := 0; i < maxRetries; i++ {
		redisCache, err = cache.NewRedisCache(cfg.RedisURL)
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, maxRetries, err, retryDelay)
			time.Sleep(retryDelay)
		} else {
			log.Fatalf("Failed to connect to Redis after %d attempts: %v", maxRetries, err)
		}
	}
	defer redisCache.Close()

	log.Println("✓ Connected to Redis")

	redisPublisher := publisher.NewRedisPublisherFromClient(redisCache.Client())
	log.Println("✓ Redis publisher initialized")

	// Box score sources, tried in order
	bdlClient := bdl.NewClient(cfg.BDLBaseURL, cfg.BDLAPIKey, cfg.BDLRateLimit)
	espnClient := espn.New(cfg.ESPNAPIBase)
	sources := []service.BoxScoreSource{bdlClient, espnClient}

	var injurySource service.InjurySource
	if cfg.InjuryFeedURL != "" {
		injurySource = injuries.NewClient(cfg.InjuryFeedURL)
		log.Println("✓ Injury feed configured")
	}

	modelService := service.NewModelService(sources, injurySource, snapshots, redisCache, cfg.ModelCacheTTL)
	propService := service.NewPropService(bdlClient, cfg.BDLSeason)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Odds polling scheduler
	var linesClient *lines.Client
	if cfg.EnableOddsPolling && cfg.LinesPageURL != "" {
		linesClient, err = lines.NewClient(cfg.LinesPageURL)
		if err != nil {
			log.Fatalf("Failed to create lines client: %v", err)
		}
		defer linesClient.Close()
	}

	sched := scheduler.NewOrchestrator(linesClient, snapshots, redisPublisher, &scheduler.Config{
		PollInterval:      cfg.OddsPollInterval,
		EnableOddsPolling: cfg.EnableOddsPolling,
		MaxRetries:        3,
		RetryDelay:        5 * time.Second,
	})
	go sched.Start(ctx)
	log.Println("✓ Scheduler started")

	// WebSocket hub fed by the snapshot stream
	hub := websocket.NewHub()
	go hub.Run(ctx)

	consumer := websocket.NewStreamConsumer(redisCache.Client(), hub)
	go consumer.Run(ctx)

	wsServer := websocket.NewServer(cfg.WSPort, hub)
	go func() {
		log.Printf("Starting WebSocket server on port %s", cfg.WSPort)
		if err := wsServer.Start(); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()

	log.Printf("✓ WebSocket server listening on :%s", cfg.WSPort)

	// REST API server
	restServer := rest.NewServer(cfg.RESTPort, db, modelService, propService, snapshots, redisPublisher)
	go func() {
		log.Printf("Starting REST API server on port %s", cfg.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	log.Printf("✓ REST API server listening on :%s", cfg.RESTPort)
	log.Printf("✓ Apollo v%s started successfully", serviceVersion)
	log.Printf("  REST API: http://0.0.0.0:%s", cfg.RESTPort)
	log.Printf("  WebSocket: ws://0.0.0.0:%s", cfg.WSPort)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down Apollo gracefully...")

	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Println("Apollo stopped")
}
