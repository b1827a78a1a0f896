package rendercache

import (
	"sync"
	"time"
)

// DefaultMaxSize is the number of documents kept when no size is configured
const DefaultMaxSize = 64

// CacheStats tracks cache performance metrics
type CacheStats struct {
	Hits           int64   `json:"hits"`
	Misses         int64   `json:"misses"`
	Evictions      int64   `json:"evictions"`
	Size           int     `json:"size"`
	MaxSize        int     `json:"max_size"`
	TotalSizeBytes int64   `json:"total_size_bytes"`
	HitRate        float64 `json:"hit_rate"`
}

func (s *CacheStats) updateHitRate() {
	total := s.Hits + s.Misses
	if total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
}

type lruEntry struct {
	key        string
	value      *Entry
	accessedAt time.Time
	prev, next *lruEntry
}

// LRUCache is a thread-safe LRU of rendered documents. A cache with
// maxSize 0 stores nothing and counts every lookup as a miss.
type LRUCache struct {
	maxSize    int
	cache      map[string]*lruEntry
	head, tail *lruEntry
	mu         sync.Mutex
	stats      CacheStats
}

// NewLRUCache creates a new LRU cache with the given maximum size
func NewLRUCache(maxSize int) *LRUCache {
	if maxSize < 0 {
		maxSize = 0
	}
	return &LRUCache{
		maxSize: maxSize,
		cache:   make(map[string]*lruEntry),
		stats:   CacheStats{MaxSize: maxSize},
	}
}

// Get retrieves a document and marks it most recently used
func (c *LRUCache) Get(key string) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache[key]
	if !ok {
		c.stats.Misses++
		c.stats.updateHitRate()
		return nil, false
	}

	c.moveToFront(entry)
	entry.accessedAt = time.Now()
	entry.value.RecordAccess()

	c.stats.Hits++
	c.stats.updateHitRate()
	return entry.value, true
}

// Put stores a document, evicting the least recently used ones over capacity
func (c *LRUCache) Put(key string, value *Entry) {
	if value == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxSize == 0 {
		return
	}

	if entry, ok := c.cache[key]; ok {
		c.stats.TotalSizeBytes += value.SizeBytes - entry.value.SizeBytes
		entry.value = value
		entry.accessedAt = time.Now()
		c.moveToFront(entry)
		return
	}

	entry := &lruEntry{key: key, value: value, accessedAt: time.Now()}
	c.cache[key] = entry
	c.addToFront(entry)
	c.stats.Size = len(c.cache)
	c.stats.TotalSizeBytes += value.SizeBytes

	for len(c.cache) > c.maxSize {
		c.evictLRU()
	}
}

// GetOrRender returns the cached document for key, or calls render, stores
// its result and returns it. The render function runs outside the lock;
// errors are not cached.
func (c *LRUCache) GetOrRender(key, target string, version uint64, render func() (string, error)) (string, bool, error) {
	if entry, ok := c.Get(key); ok {
		return entry.Body, true, nil
	}

	body, err := render()
	if err != nil {
		return "", false, err
	}
	c.Put(key, NewEntry(key, target, body, version))
	return body, false, nil
}

// Stats returns a copy of the cache statistics
func (c *LRUCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *LRUCache) moveToFront(entry *lruEntry) {
	if entry == c.head {
		return
	}
	c.unlink(entry)
	c.addToFront(entry)
}

func (c *LRUCache) addToFront(entry *lruEntry) {
	entry.prev = nil
	entry.next = c.head
	if c.head != nil {
		c.head.prev = entry
	}
	c.head = entry
	if c.tail == nil {
		c.tail = entry
	}
}

// removeEntry drops entry from both the map and the list
func (c *LRUCache) removeEntry(entry *lruEntry) {
	delete(c.cache, entry.key)
	c.stats.TotalSizeBytes -= entry.value.SizeBytes
	c.stats.Size = len(c.cache)
	c.unlink(entry)
}

func (c *LRUCache) unlink(entry *lruEntry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}
	entry.prev, entry.next = nil, nil
}

func (c *LRUCache) evictLRU() {
	if c.tail == nil {
		return
	}
	c.removeEntry(c.tail)
	c.stats.Evictions++
}
