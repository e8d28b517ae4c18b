package atobusu

import (
	"container/list"
	"sync"
	"time"
)

// CacheConfig contains configuration options for the region cache.
type CacheConfig struct {
	// MaxSize is the maximum number of entries to cache. 0 disables caching.
	MaxSize int
	// TTL is the time-to-live for cached entries. 0 means no expiration.
	TTL time.Duration
}

// RegionCache caches tokenized region sequences keyed by template name.
// Region slices are read-only after tokenization, so cached entries are
// safe to share across concurrent renders. Caching is purely an
// optimization; rendering is a pure function of (template text, context)
// and never requires it for correctness.
type RegionCache struct {
	mu     sync.Mutex
	cache  map[string]*cacheEntry
	lru    *list.List
	config CacheConfig
}

type cacheEntry struct {
	key     string
	regions []Region
	expiry  time.Time
	element *list.Element
}

// NewRegionCache creates a region cache configured from the global config.
func NewRegionCache() *RegionCache {
	config := GetGlobalConfig()
	return NewRegionCacheWithConfig(CacheConfig{
		MaxSize: config.CacheMaxSize,
		TTL:     config.CacheTTL,
	})
}

// NewRegionCacheWithConfig creates a region cache with the given configuration.
func NewRegionCacheWithConfig(config CacheConfig) *RegionCache {
	return &RegionCache{
		cache:  make(map[string]*cacheEntry),
		lru:    list.New(),
		config: config,
	}
}

// GetOrTokenize returns the cached region sequence for key, tokenizing
// text on a miss. When caching is disabled it tokenizes every time.
func (rc *RegionCache) GetOrTokenize(key, text string) ([]Region, error) {
	if rc.config.MaxSize == 0 {
		return Tokenize(text)
	}

	if regions, ok := rc.Get(key); ok {
		return regions, nil
	}

	regions, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	rc.Set(key, regions)
	return regions, nil
}

// Get retrieves a cached region sequence.
func (rc *RegionCache) Get(key string) ([]Region, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	entry, exists := rc.cache[key]
	if !exists {
		return nil, false
	}

	if rc.config.TTL > 0 && time.Now().After(entry.expiry) {
		delete(rc.cache, key)
		rc.lru.Remove(entry.element)
		return nil, false
	}

	rc.lru.MoveToFront(entry.element)
	return entry.regions, true
}

// Set stores a region sequence, evicting the least recently used entry
// when the cache is full.
func (rc *RegionCache) Set(key string, regions []Region) {
	if rc.config.MaxSize == 0 {
		return
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if existing, exists := rc.cache[key]; exists {
		existing.regions = regions
		if rc.config.TTL > 0 {
			existing.expiry = time.Now().Add(rc.config.TTL)
		}
		rc.lru.MoveToFront(existing.element)
		return
	}

	if rc.lru.Len() >= rc.config.MaxSize {
		oldest := rc.lru.Back()
		if oldest != nil {
			oldEntry := oldest.Value.(*cacheEntry)
			delete(rc.cache, oldEntry.key)
			rc.lru.Remove(oldest)
		}
	}

	entry := &cacheEntry{
		key:     key,
		regions: regions,
	}
	if rc.config.TTL > 0 {
		entry.expiry = time.Now().Add(rc.config.TTL)
	}
	entry.element = rc.lru.PushFront(entry)
	rc.cache[key] = entry
}

// Remove removes an entry from the cache.
func (rc *RegionCache) Remove(key string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	entry, exists := rc.cache[key]
	if !exists {
		return
	}
	delete(rc.cache, key)
	rc.lru.Remove(entry.element)
}

// Clear removes all entries from the cache.
func (rc *RegionCache) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.cache = make(map[string]*cacheEntry)
	rc.lru = list.New()
}

// Size returns the current number of cached entries.
func (rc *RegionCache) Size() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.cache)
}

var (
	defaultCache     *RegionCache
	defaultCacheOnce sync.Once
)

// getDefaultCache lazily builds the shared cache from the global
// configuration on first use.
func getDefaultCache() *RegionCache {
	defaultCacheOnce.Do(func() {
		defaultCache = NewRegionCache()
	})
	return defaultCache
}
