package tracker

import (
	"time"

	lru "github.com/hashicorp/golang-lru"
)

type cachedValue struct {
	value any
	at    time.Time
}

// ttlCache is a size-bounded LRU whose entries also expire.
type ttlCache struct {
	lru *lru.Cache
	ttl time.Duration
	now func() time.Time
}

func newTTLCache(size int, ttl time.Duration) *ttlCache {
	if size <= 0 {
		size = 128
	}
	c, _ := lru.New(size)
	return &ttlCache{lru: c, ttl: ttl, now: time.Now}
}

func (c *ttlCache) get(key string) (any, bool) {
	v, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	cv, ok := v.(cachedValue)
	if !ok || (c.ttl > 0 && c.now().Sub(cv.at) >= c.ttl) {
		c.lru.Remove(key)
		return nil, false
	}
	return cv.value, true
}

func (c *ttlCache) add(key string, v any) {
	c.lru.Add(key, cachedValue{value: v, at: c.now()})
}
