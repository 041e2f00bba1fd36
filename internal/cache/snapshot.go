// Package cache provides a Redis-backed cache for the aggregated event
// snapshot, encoded with CBOR to keep payloads compact.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/redis/go-redis/v9"

	"github.com/eventscout/eventscout/internal/event"
)

// DefaultKey is the Redis key holding the cached snapshot.
const DefaultKey = "eventscout:catalog:snapshot"

// DefaultTTL bounds snapshot staleness. Sources are re-aggregated on expiry.
const DefaultTTL = 5 * time.Minute

// SnapshotCache stores the aggregated candidate list in Redis.
type SnapshotCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewSnapshotCache creates a snapshot cache. Zero ttl falls back to
// DefaultTTL; empty key falls back to DefaultKey.
func NewSnapshotCache(client *redis.Client, key string, ttl time.Duration) *SnapshotCache {
	if key == "" {
		key = DefaultKey
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SnapshotCache{client: client, key: key, ttl: ttl}
}

// Get returns the cached snapshot, or ok=false on a miss. Decode failures
// are returned as errors; callers treat them as misses and re-aggregate.
func (c *SnapshotCache) Get(ctx context.Context) ([]event.Record, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get snapshot: %w", err)
	}

	records, err := decodeSnapshot(data)
	if err != nil {
		return nil, false, err
	}
	return records, true, nil
}

// Set stores the snapshot with the configured TTL.
func (c *SnapshotCache) Set(ctx context.Context, records []event.Record) error {
	data, err := encodeSnapshot(records)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot so the next read re-aggregates.
// Called after an event submission lands in the database.
func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("invalidate snapshot: %w", err)
	}
	return nil
}

func encodeSnapshot(records []event.Record) ([]byte, error) {
	data, err := cbor.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) ([]event.Record, error) {
	var records []event.Record
	if err := cbor.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return records, nil
}
