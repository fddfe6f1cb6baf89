package filter

import (
	"container/list"
	"sync"
)

// programCache keeps the most recently used compiled filters, keyed by
// their trimmed expression. Safe for concurrent use.
type programCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front is most recent
	byExpr   map[string]*list.Element
	hits     uint64
	misses   uint64
}

type cachedFilter struct {
	expression string
	filter     CompiledFilter
}

// CacheStats reports how the compiled filter cache has been used
type CacheStats struct {
	Size   int
	Hits   uint64
	Misses uint64
}

func newProgramCache(capacity int) *programCache {
	return &programCache{
		capacity: capacity,
		order:    list.New(),
		byExpr:   make(map[string]*list.Element, capacity),
	}
}

func (c *programCache) get(expression string) (CompiledFilter, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.byExpr[expression]
	if !ok {
		c.misses++
		return nil, false
	}

	c.hits++
	c.order.MoveToFront(el)
	return el.Value.(*cachedFilter).filter, true
}

func (c *programCache) put(expression string, f CompiledFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.byExpr[expression]; ok {
		el.Value.(*cachedFilter).filter = f
		c.order.MoveToFront(el)
		return
	}

	c.byExpr[expression] = c.order.PushFront(&cachedFilter{expression: expression, filter: f})

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.byExpr, oldest.Value.(*cachedFilter).expression)
	}
}

func (c *programCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	clear(c.byExpr)
}

func (c *programCache) stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStats{Size: c.order.Len(), Hits: c.hits, Misses: c.misses}
}
