package aggcache

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/hospital-records/pkg/metrics"
)

// Aggregate keys
const (
	KeyDashboard      = "dashboard_summary"
	KeyInventoryValue = "inventory_value"
	KeyBloodSummary   = "blood_summary"
)

// Cache holds computed aggregates between writes. A nil *Cache, or one built
// with a non-positive TTL, caches nothing.
type Cache struct {
	store   *cache.Cache
	metrics *metrics.Metrics

	mu  sync.Mutex
	gen map[string]uint64
}

func New(ttl time.Duration, m *metrics.Metrics) *Cache {
	if ttl <= 0 {
		return &Cache{metrics: m, gen: make(map[string]uint64)}
	}
	return &Cache{
		store:   cache.New(ttl, 2*ttl),
		metrics: m,
		gen:     make(map[string]uint64),
	}
}

func (c *Cache) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen[key]
}

// Invalidate drops keys. A value computed before the call is never stored
// after it.
func (c *Cache) Invalidate(keys ...string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		c.gen[k]++
		if c.store != nil {
			c.store.Delete(k)
		}
	}
}

// Load returns the cached value for key or computes and stores it.
func Load[T any](ctx context.Context, c *Cache, key string, compute func(context.Context) (T, error)) (T, error) {
	if c == nil || c.store == nil {
		return compute(ctx)
	}

	if v, found := c.store.Get(key); found {
		c.metrics.CacheLookup(key, true)
		return v.(T), nil
	}
	c.metrics.CacheLookup(key, false)

	gen := c.generation(key)
	v, err := compute(ctx)
	if err != nil {
		return v, err
	}

	c.mu.Lock()
	if c.gen[key] == gen {
		c.store.Set(key, v, cache.DefaultExpiration)
	}
	c.mu.Unlock()
	return v, nil
}
