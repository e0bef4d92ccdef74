// Package cache provides a Redis-backed cache for derived timetable gaps.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/daybreak/internal/planning/domain/schedule"
	"github.com/redis/go-redis/v9"
)

// GapSource is the uncached gap derivation the cache sits in front of.
type GapSource interface {
	GapsForDay(ctx context.Context, day time.Time) ([]schedule.Gap, error)
}

// RedisGapCache caches derived gaps per day. Cache failures are soft: a
// Redis outage falls through to the source, never into the caller's error
// path.
type RedisGapCache struct {
	source GapSource
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisGapCache creates a new gap cache around a source.
func NewRedisGapCache(source GapSource, client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisGapCache {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisGapCache{source: source, client: client, ttl: ttl, logger: logger}
}

func gapKey(day time.Time) string {
	return fmt.Sprintf("daybreak:gaps:%s", day.Format("2006-01-02"))
}

// GapsForDay returns cached gaps when fresh, deriving and storing otherwise.
func (c *RedisGapCache) GapsForDay(ctx context.Context, day time.Time) ([]schedule.Gap, error) {
	key := gapKey(day)

	cached, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var gaps []schedule.Gap
		if err := json.Unmarshal(cached, &gaps); err == nil {
			return gaps, nil
		}
		c.logger.Warn("discarding unreadable gap cache entry", "key", key)
	} else if err != redis.Nil {
		c.logger.Warn("gap cache read failed", "key", key, "error", err)
	}

	gaps, err := c.source.GapsForDay(ctx, day)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(gaps)
	if err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("gap cache write failed", "key", key, "error", err)
		}
	}

	return gaps, nil
}

// Invalidate drops the cached gaps for a day. Called whenever an event on
// that day changes.
func (c *RedisGapCache) Invalidate(ctx context.Context, day time.Time) {
	if err := c.client.Del(ctx, gapKey(day)).Err(); err != nil {
		c.logger.Warn("gap cache invalidation failed", "day", day.Format("2006-01-02"), "error", err)
	}
}
