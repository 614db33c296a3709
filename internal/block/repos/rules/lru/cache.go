package lru

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/haukened/tubegate/internal/block/repos/rules"
)

// hostCache is an LRU-backed implementation of rules.HostCache. It tracks
// basic metrics: hits, misses, and evictions.
type hostCache struct {
	lru       *lru.Cache[string, bool]
	hits      uint64
	misses    uint64
	evictions uint64
}

// disabledCache is a no-op HostCache used when size <= 0.
type disabledCache struct{}

// New creates a HostCache with the given capacity. If size <= 0, a disabled
// no-op cache is returned that always misses and tracks no metrics.
func New(size int) (rules.HostCache, error) {
	if size <= 0 {
		return &disabledCache{}, nil
	}

	var hc hostCache
	// NewWithEvict observes evictions, including Purge-induced ones.
	cache, err := lru.NewWithEvict(size, func(_ string, _ bool) {
		atomic.AddUint64(&hc.evictions, 1)
	})
	if err != nil {
		return nil, err
	}
	hc.lru = cache
	return &hc, nil
}

func (c *hostCache) Get(host string) (bool, bool) {
	if val, ok := c.lru.Get(host); ok {
		atomic.AddUint64(&c.hits, 1)
		return val, true
	}
	atomic.AddUint64(&c.misses, 1)
	return false, false
}

func (c *hostCache) Put(host string, maybe bool) {
	c.lru.Add(host, maybe)
}

func (c *hostCache) Len() int { return c.lru.Len() }

// Purge clears all entries. Evictions are counted via the eviction callback.
func (c *hostCache) Purge() { c.lru.Purge() }

func (c *hostCache) Stats() (hits, misses, evictions uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses), atomic.LoadUint64(&c.evictions)
}

// disabledCache implementation

func (d *disabledCache) Get(string) (bool, bool) { return false, false }

func (d *disabledCache) Put(string, bool) {}

func (d *disabledCache) Len() int { return 0 }

func (d *disabledCache) Purge() {}

func (d *disabledCache) Stats() (uint64, uint64, uint64) { return 0, 0, 0 }

var _ rules.HostCache = (*hostCache)(nil)
var _ rules.HostCache = (*disabledCache)(nil)
