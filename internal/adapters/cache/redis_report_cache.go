package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Namespace prefix so Invalidate can drop report keys without touching
// anything else sharing the redis instance.
const reportKeyPrefix = "report:"

// Redis-backed implementation of the ReportCache port.
//
// Report payloads are recomputable at any time, so every entry carries
// a TTL and cache failures are surfaced to the caller, which treats
// them as misses rather than request failures.
type RedisReportCache struct {
	Client *redis.Client
}

func NewRedisReportCache(client *redis.Client) *RedisReportCache {
	return &RedisReportCache{Client: client}
}

func (c *RedisReportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.Client == nil {
		return nil, false, errors.New("report cache: client is nil")
	}

	payload, err := c.Client.Get(ctx, reportKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("report cache: get %q: %w", key, err)
	}

	return payload, true, nil
}

func (c *RedisReportCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if c.Client == nil {
		return errors.New("report cache: client is nil")
	}

	if err := c.Client.Set(ctx, reportKeyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("report cache: set %q: %w", key, err)
	}

	return nil
}

// Invalidate drops every cached report. Record and alias writes change
// what any report may contain, so the whole namespace goes at once.
func (c *RedisReportCache) Invalidate(ctx context.Context) error {
	if c.Client == nil {
		return errors.New("report cache: client is nil")
	}

	iter := c.Client.Scan(ctx, 0, reportKeyPrefix+"*", 0).Iterator()
	keys := make([]string, 0, 32)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("report cache: scan keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := c.Client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("report cache: delete %d keys: %w", len(keys), err)
	}

	return nil
}
