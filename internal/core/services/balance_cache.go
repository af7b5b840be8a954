package services

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Defaults used when the configuration leaves the cache unset.
const (
	DefaultBalanceCacheSize = 10000
	DefaultBalanceCacheTTL  = 30 * time.Second
)

type cachedBalance struct {
	balance  int64
	sequence int64
}

// BalanceCache keeps the latest known balance per user. Entries carry the ledger
// sequence they were read at, and an older sequence never replaces a newer one, so
// out-of-order updates from concurrent commits cannot resurrect a stale balance.
// A nil *BalanceCache is valid and caches nothing.
type BalanceCache struct {
	mu  sync.Mutex
	lru *expirable.LRU[string, cachedBalance]
}

// NewBalanceCache creates a cache holding up to size users for ttl each.
func NewBalanceCache(size int, ttl time.Duration) *BalanceCache {
	if size <= 0 {
		size = DefaultBalanceCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultBalanceCacheTTL
	}
	return &BalanceCache{lru: expirable.NewLRU[string, cachedBalance](size, nil, ttl)}
}

// Get returns the cached balance for userID.
func (c *BalanceCache) Get(userID string) (int64, bool) {
	if c == nil {
		return 0, false
	}
	v, ok := c.lru.Get(userID)
	return v.balance, ok
}

// Set records balance as of sequence unless a newer entry is already cached.
func (c *BalanceCache) Set(userID string, balance, sequence int64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.lru.Peek(userID); ok && cur.sequence > sequence {
		return
	}
	c.lru.Add(userID, cachedBalance{balance: balance, sequence: sequence})
}

// Invalidate drops the entry for userID.
func (c *BalanceCache) Invalidate(userID string) {
	if c == nil {
		return
	}
	c.lru.Remove(userID)
}
