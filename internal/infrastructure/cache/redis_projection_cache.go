package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/liquiplan/backend/internal/domain/liquidity"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisProjectionCache stores computed liquidity projections in Redis.
// Suitable for deployments where several instances should share the
// projection cache.
type RedisProjectionCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisProjectionCache creates a Redis-backed projection cache
func NewRedisProjectionCache(cfg RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisProjectionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &RedisProjectionCache{
		client:    client,
		keyPrefix: "liquidity:projection:",
		ttl:       ttl,
		logger:    logger,
	}, nil
}

// NewRedisProjectionCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisProjectionCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisProjectionCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisProjectionCache{
		client:    client,
		keyPrefix: "liquidity:projection:",
		ttl:       ttl,
		logger:    logger,
	}
}

// Get returns the cached projection for a year, if present. Cache errors
// are treated as misses so the caller recomputes.
func (c *RedisProjectionCache) Get(ctx context.Context, year int) (*liquidity.Projection, bool) {
	raw, err := c.client.Get(ctx, c.key(year)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("projection cache read failed", zap.Int("year", year), zap.Error(err))
		}
		return nil, false
	}

	var projection liquidity.Projection
	if err := json.Unmarshal(raw, &projection); err != nil {
		c.logger.Warn("projection cache entry corrupt, dropping", zap.Int("year", year), zap.Error(err))
		c.client.Del(ctx, c.key(year))
		return nil, false
	}
	return &projection, true
}

// Set stores the projection under its year
func (c *RedisProjectionCache) Set(ctx context.Context, year int, projection *liquidity.Projection) {
	raw, err := json.Marshal(projection)
	if err != nil {
		c.logger.Warn("projection cache encode failed", zap.Int("year", year), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.key(year), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("projection cache write failed", zap.Int("year", year), zap.Error(err))
	}
}

// Invalidate drops the cached projection for a year
func (c *RedisProjectionCache) Invalidate(ctx context.Context, year int) {
	if err := c.client.Del(ctx, c.key(year)).Err(); err != nil {
		c.logger.Warn("projection cache invalidation failed", zap.Int("year", year), zap.Error(err))
	}
}

// InvalidateAll drops every cached projection under the key prefix
func (c *RedisProjectionCache) InvalidateAll(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("projection cache invalidation failed", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("projection cache scan failed", zap.Error(err))
	}
}

// Close closes the Redis client
func (c *RedisProjectionCache) Close() error {
	return c.client.Close()
}

func (c *RedisProjectionCache) key(year int) string {
	return fmt.Sprintf("%s%d", c.keyPrefix, year)
}
