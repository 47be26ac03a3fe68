package cache

import (
	"context"
	"sync"
	"time"

	"github.com/liquiplan/backend/internal/domain/liquidity"
)

type projectionEntry struct {
	projection liquidity.Projection
	expiresAt  time.Time
}

// InMemoryProjectionCache stores computed liquidity projections in memory.
// Suitable for single-instance deployments and testing; state is not
// shared across processes.
type InMemoryProjectionCache struct {
	mu      sync.RWMutex
	entries map[int]projectionEntry
	ttl     time.Duration
}

// NewInMemoryProjectionCache creates an in-memory projection cache
func NewInMemoryProjectionCache(ttl time.Duration) *InMemoryProjectionCache {
	return &InMemoryProjectionCache{
		entries: make(map[int]projectionEntry),
		ttl:     ttl,
	}
}

// Get returns the cached projection for a year, if present and not expired
func (c *InMemoryProjectionCache) Get(_ context.Context, year int) (*liquidity.Projection, bool) {
	c.mu.RLock()
	e, ok := c.entries[year]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	projection := e.projection
	return &projection, true
}

// Set stores the projection under its year
func (c *InMemoryProjectionCache) Set(_ context.Context, year int, projection *liquidity.Projection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[year] = projectionEntry{
		projection: *projection,
		expiresAt:  time.Now().Add(c.ttl),
	}
}

// Invalidate drops the cached projection for a year
func (c *InMemoryProjectionCache) Invalidate(_ context.Context, year int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, year)
}

// InvalidateAll drops every cached projection
func (c *InMemoryProjectionCache) InvalidateAll(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int]projectionEntry)
}
