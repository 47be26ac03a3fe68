package cache

import (
	"fmt"
	"time"

	appfinance "github.com/liquiplan/backend/internal/application/finance"
	"github.com/liquiplan/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ProjectionCacheFactory creates projection caches based on configuration
type ProjectionCacheFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// ProjectionCacheFactoryOption is a functional option for configuring the factory
type ProjectionCacheFactoryOption func(*ProjectionCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ProjectionCacheFactoryOption {
	return func(f *ProjectionCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) ProjectionCacheFactoryOption {
	return func(f *ProjectionCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewProjectionCacheFactory creates a new factory
func NewProjectionCacheFactory(cfg config.RedisConfig, ttl time.Duration, opts ...ProjectionCacheFactoryOption) *ProjectionCacheFactory {
	f := &ProjectionCacheFactory{
		redisConfig:           cfg,
		ttl:                   ttl,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisCache creates a Redis-backed projection cache
func (f *ProjectionCacheFactory) CreateRedisCache() (appfinance.ProjectionCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}
	c, err := NewRedisProjectionCache(redisCfg, f.ttl, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis projection cache: %w", err)
	}
	return c, nil
}

// CreateInMemoryCache creates an in-memory projection cache
func (f *ProjectionCacheFactory) CreateInMemoryCache() appfinance.ProjectionCache {
	return NewInMemoryProjectionCache(f.ttl)
}

// CreateCache creates a projection cache, trying Redis first and falling
// back to in-memory when Redis is unreachable and fallback is allowed.
func (f *ProjectionCacheFactory) CreateCache() (appfinance.ProjectionCache, error) {
	c, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis projection cache",
			zap.String("host", f.redisConfig.Host),
			zap.Int("port", f.redisConfig.Port))
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis unavailable and in-memory fallback disabled: %w", err)
	}

	f.logger.Warn("redis unavailable, falling back to in-memory projection cache", zap.Error(err))
	return f.CreateInMemoryCache(), nil
}
