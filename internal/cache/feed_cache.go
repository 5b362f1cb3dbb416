// Package cache keeps copies of rendered feed pages in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPrefix  = "adoption:feed"
	versionKey = keyPrefix + ":version"
)

// RedisFeedCache stores feed pages under a generation number. Invalidate bumps
// the generation so every cached page is dropped at once; stale generations
// expire on their TTL.
type RedisFeedCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisClient connects and pings the server.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisFeedCache creates a feed cache over client. ttl <= 0 means 5 minutes.
func NewRedisFeedCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisFeedCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisFeedCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached page for key along with the generation it was read
// under. A miss returns ok=false with no error; the generation is still valid
// and should be passed to Set when the page is rebuilt.
func (c *RedisFeedCache) Get(ctx context.Context, key string) ([]byte, int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}
	val, err := c.client.Get(ctx, pageKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, fmt.Errorf("failed to read feed cache: %w", err)
	}
	return val, gen, true, nil
}

// Set stores a page for key under gen, the generation returned by the Get that
// missed. If Invalidate ran in between, the page lands in a retired generation
// and is never served.
func (c *RedisFeedCache) Set(ctx context.Context, gen int64, key string, page []byte) error {
	if err := c.client.Set(ctx, pageKey(gen, key), page, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write feed cache: %w", err)
	}
	return nil
}

// Invalidate drops every cached page.
func (c *RedisFeedCache) Invalidate(ctx context.Context) error {
	gen, err := c.client.Incr(ctx, versionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate feed cache: %w", err)
	}
	c.logger.Debug("feed cache invalidated", zap.Int64("generation", gen))
	return nil
}

func (c *RedisFeedCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read feed cache generation: %w", err)
	}
	return gen, nil
}

func pageKey(gen int64, key string) string {
	return fmt.Sprintf("%s:v%d:%s", keyPrefix, gen, key)
}

// NopFeedCache never hits. Used when Redis is disabled.
type NopFeedCache struct{}

func (NopFeedCache) Get(context.Context, string) ([]byte, int64, bool, error) {
	return nil, 0, false, nil
}
func (NopFeedCache) Set(context.Context, int64, string, []byte) error { return nil }
func (NopFeedCache) Invalidate(context.Context) error                 { return nil }
