package websocket

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fortuna/apollo/internal/publisher"
)

// StreamConsumer reads snapshot events from the Redis stream and feeds
// them into the hub.
type StreamConsumer struct {
	client *redis.Client
	hub    *Hub
}

// NewStreamConsumer creates a consumer over an existing Redis client.
func NewStreamConsumer(client *redis.Client, hub *Hub) *StreamConsumer {
	return &StreamConsumer{client: client, hub: hub}
}

// Run blocks, reading stream entries until ctx is cancelled. Only
// events appended after startup are delivered.
func (sc *StreamConsumer) Run(ctx context.Context) {
	log.Printf("✓ Stream consumer started on %s", publisher.SnapshotStream)

	lastID := "$"
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		streams, err := sc.client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{publisher.SnapshotStream, lastID},
			Count:   100,
			Block:   5 * time.Second,
		}).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			log.Printf("❌ Stream read error: %v", err)
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID
				sc.dispatch(msg)
			}
		}
	}
}

func (sc *StreamConsumer) dispatch(msg redis.XMessage) {
	raw, ok := msg.Values["data"].(string)
	if !ok {
		log.Printf("⚠️  Stream entry %s missing data field", msg.ID)
		return
	}

	var event publisher.SnapshotEvent
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		log.Printf("⚠️  Failed to decode stream entry %s: %v", msg.ID, err)
		return
	}

	sc.hub.Broadcast(event)
}
