package pipeline

import (
	"sync"

	"github.com/ma202004gh/jp-wage-dashboard/internal/model"
)

// cacheKey 完整参数元组
type cacheKey struct {
	op         string
	year       int
	prefecture string
	metric     model.MetricKind
}

type cacheEntry struct {
	value   any
	axisMax float64
}

// resultCache 派生表缓存；源表只读，因此同一参数的结果不变
type resultCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]cacheEntry
}

func newResultCache() *resultCache {
	return &resultCache{entries: make(map[cacheKey]cacheEntry)}
}

func (c *resultCache) get(key cacheKey) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

func (c *resultCache) put(key cacheKey, e cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = e
}

// Len 缓存条目数
func (c *resultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
