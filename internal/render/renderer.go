package render

import (
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/rainfall-atlas/internal/frames"
	"github.com/couchcryptid/rainfall-atlas/internal/observability"
)

// DefaultCacheSize bounds the rendered-frame cache. A full animation cycle
// for a multi-decade station dataset stays well under this.
const DefaultCacheSize = 512

// Renderer turns frames into SVG bytes, memoizing results by frame index.
// Frames are immutable once built, so a cached render never goes stale.
type Renderer struct {
	cache   *lruCache
	logger  *slog.Logger
	metrics *observability.Metrics
}

func NewRenderer(cacheSize int, logger *slog.Logger, metrics *observability.Metrics) *Renderer {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return &Renderer{
		cache:   newLRUCache(cacheSize),
		logger:  logger,
		metrics: metrics,
	}
}

// Render returns the SVG document for f, serving from cache when possible.
func (r *Renderer) Render(f frames.Frame) []byte {
	if svg, ok := r.cache.get(f.Index); ok {
		r.metrics.FrameCache.WithLabelValues("hit").Inc()
		return svg
	}
	r.metrics.FrameCache.WithLabelValues("miss").Inc()

	start := time.Now()
	svg := renderSVG(f)
	r.metrics.FrameRenderDuration.Observe(time.Since(start).Seconds())

	r.cache.put(f.Index, svg)
	r.logger.Debug("rendered frame",
		slog.Int("index", f.Index),
		slog.String("title", f.Title),
		slog.Int("bytes", len(svg)))
	return svg
}

// lruCache is a fixed-capacity cache over a doubly-linked list and an index
// map. Most recently used entries sit at the front; eviction takes the tail.
type lruCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[int]*cacheNode
	head     *cacheNode
	tail     *cacheNode
}

type cacheNode struct {
	key   int
	value []byte
	prev  *cacheNode
	next  *cacheNode
}

func newLRUCache(capacity int) *lruCache {
	return &lruCache{
		capacity: capacity,
		entries:  make(map[int]*cacheNode, capacity),
	}
}

func (c *lruCache) get(key int) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(node)
	return node.value, true
}

func (c *lruCache) put(key int, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.entries[key]; ok {
		node.value = value
		c.moveToFront(node)
		return
	}

	node := &cacheNode{key: key, value: value}
	c.entries[key] = node
	c.pushFront(node)

	if len(c.entries) > c.capacity {
		c.evictTail()
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) pushFront(node *cacheNode) {
	node.prev = nil
	node.next = c.head
	if c.head != nil {
		c.head.prev = node
	}
	c.head = node
	if c.tail == nil {
		c.tail = node
	}
}

func (c *lruCache) moveToFront(node *cacheNode) {
	if node == c.head {
		return
	}
	c.unlink(node)
	c.pushFront(node)
}

func (c *lruCache) unlink(node *cacheNode) {
	if node.prev != nil {
		node.prev.next = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	}
	if c.tail == node {
		c.tail = node.prev
	}
	node.prev = nil
	node.next = nil
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	victim := c.tail
	c.unlink(victim)
	delete(c.entries, victim.key)
}
