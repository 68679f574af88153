// Package cache is an optional Redis-backed cache for rendered
// recommendation lists. Keys carry the library version, so any change
// to the collection naturally misses; Invalidate additionally clears
// stale versions eagerly.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lbakerr/cinematch/internal/domain"
)

const defaultTTL = 10 * time.Minute

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func buildKey(version int64, count int) string {
	return fmt.Sprintf("rec:v%d:count:%d", version, count)
}

func (c *Cache) Get(ctx context.Context, version int64, count int) ([]domain.Recommendation, bool, error) {
	val, err := c.client.Get(ctx, buildKey(version, count)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var recs []domain.Recommendation
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached recommendations: %w", err)
	}
	return recs, true, nil
}

func (c *Cache) Set(ctx context.Context, version int64, count int, recs []domain.Recommendation) error {
	val, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}
	if err := c.client.Set(ctx, buildKey(version, count), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops every cached recommendation list. Called when the
// library changes.
func (c *Cache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "rec:v*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
