// Package publisher pushes snapshot events onto a Redis stream for the
// WebSocket broadcaster (and anything else that wants line movement as it
// happens).
package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fortuna/apollo/internal/market"
	"github.com/fortuna/apollo/internal/store"
)

// SnapshotStream is the Redis stream carrying snapshot-appended events.
const SnapshotStream = "odds.snapshots.basketball_nba"

// SnapshotEvent is the stream payload for one appended snapshot, bundled
// with the line drift as of that snapshot so subscribers need no store
// access of their own.
type SnapshotEvent struct {
	Snapshot store.OddsSnapshot `json:"snapshot"`
	Drift    *market.LineDrift  `json:"drift,omitempty"`
}

// RedisPublisher publishes snapshot events to a Redis stream.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a publisher from its own connection.
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisPublisher{client: client}, nil
}

// NewRedisPublisherFromClient reuses an existing Redis client.
func NewRedisPublisherFromClient(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Close closes the Redis connection.
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishSnapshot publishes one snapshot event to the stream.
func (rp *RedisPublisher) PublishSnapshot(ctx context.Context, event SnapshotEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: SnapshotStream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
