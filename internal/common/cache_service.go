package common

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// cacheEntry wraps a stored value so reads can report its age and so a
// "known miss" can be cached explicitly.
type cacheEntry struct {
	value    interface{}
	storedAt time.Time
	negative bool
}

// ResultCache is a TTL key/value store with negative-result caching and
// single-flight request coalescing. The value store and the in-flight group
// are independent: a key may be in flight without a cached value and vice
// versa.
type ResultCache struct {
	store  *gocache.Cache
	flight singleflight.Group
}

func NewResultCache(cleanUpInterval time.Duration) *ResultCache {
	// Per-entry TTLs are passed on Set; the default expiration is unused.
	return &ResultCache{
		store: gocache.New(gocache.NoExpiration, cleanUpInterval),
	}
}

// Set stores a positive result under key for ttl.
func (c *ResultCache) Set(key string, value interface{}, ttl time.Duration) {
	c.store.Set(key, cacheEntry{value: value, storedAt: time.Now()}, ttl)
}

// SetNegative records a known miss so repeated lookups of a non-existent key
// do not re-hit the upstream within ttl.
func (c *ResultCache) SetNegative(key string, ttl time.Duration) {
	c.store.Set(key, cacheEntry{storedAt: time.Now(), negative: true}, ttl)
}

// Get returns the cached positive value and its age. Expired and negative
// entries report absent.
func (c *ResultCache) Get(key string) (interface{}, time.Duration, bool) {
	raw, found := c.store.Get(key)
	if !found {
		return nil, 0, false
	}
	entry := raw.(cacheEntry)
	if entry.negative {
		return nil, 0, false
	}
	return entry.value, time.Since(entry.storedAt), true
}

// IsNegative reports whether key holds an unexpired negative entry.
func (c *ResultCache) IsNegative(key string) bool {
	raw, found := c.store.Get(key)
	if !found {
		return false
	}
	return raw.(cacheEntry).negative
}

// Delete removes a value from the cache by key.
func (c *ResultCache) Delete(key string) {
	c.store.Delete(key)
}

// Do executes fn under a single-flight guard: at most one concurrent call
// per key runs fn, concurrent callers share its result, and the in-flight
// marker is dropped on completion so a later call re-executes.
func (c *ResultCache) Do(key string, fn func() (interface{}, error)) (interface{}, error) {
	v, err, _ := c.flight.Do(key, fn)
	return v, err
}
