package valutatrade

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is one provider's rate for an ordered currency pair at a point in
// time: one unit of From is worth Rate units of To. Providers always quote
// against the base currency, so To is the pivot for every fetched Quote.
type Quote struct {
	From      string
	To        string
	Rate      decimal.Decimal
	Source    string
	Timestamp time.Time
}

// PairKey is the cache and snapshot key for an ordered pair, e.g. "BTC_USD".
func PairKey(from, to string) string {
	return from + "_" + to
}

// SplitPairKey is the inverse of PairKey.
func SplitPairKey(key string) (from, to string, err error) {
	i := -1
	for j, r := range key {
		if r == '_' {
			i = j
			break
		}
	}
	if i <= 0 || i == len(key)-1 {
		return "", "", fmt.Errorf("malformed pair key %q", key)
	}
	return key[:i], key[i+1:], nil
}

// Pair returns the quote's pair key.
func (q Quote) Pair() string { return PairKey(q.From, q.To) }

// StaleAt reports whether the quote is older than ttl at the given instant.
// Staleness is advisory: callers warn, they do not block.
func (q Quote) StaleAt(ttl time.Duration, now time.Time) bool {
	return now.Sub(q.Timestamp) > ttl
}

// RateCache is the single point of truth for the latest known Quote per
// ordered pair. It is safe for one writer (a refresh run) concurrent with any
// number of readers: readers see the pre-put or post-put Quote, never a torn
// one.
type RateCache struct {
	mu          sync.RWMutex
	quotes      map[string]Quote
	lastRefresh time.Time
}

// NewRateCache returns an empty cache.
func NewRateCache() *RateCache {
	return &RateCache{quotes: make(map[string]Quote)}
}

// Get returns the cached Quote for (from, to).
func (c *RateCache) Get(from, to string) (Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.quotes[PairKey(from, to)]
	return q, ok
}

// Put stores a Quote unless a strictly newer one is already cached for the
// same pair: last-writer-wins by timestamp, not by call order, so an
// out-of-order completion of a concurrent fetch cannot clobber fresher data.
// Quotes with a non-positive rate are always rejected.
func (c *RateCache) Put(q Quote) bool {
	if !q.Rate.IsPositive() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.quotes[q.Pair()]; ok && old.Timestamp.After(q.Timestamp) {
		return false
	}
	c.quotes[q.Pair()] = q
	return true
}

// Len returns the number of cached pairs.
func (c *RateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.quotes)
}

// LastRefresh returns the start time of the last refresh run in which at
// least one pair succeeded. Zero means never refreshed.
func (c *RateCache) LastRefresh() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastRefresh
}

// SetLastRefresh records a refresh run's start time.
func (c *RateCache) SetLastRefresh(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastRefresh = t
}

// All returns the cached quotes sorted by pair key.
func (c *RateCache) All() []Quote {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := slices.Collect(maps.Keys(c.quotes))
	slices.Sort(keys)
	quotes := make([]Quote, 0, len(keys))
	for _, k := range keys {
		quotes = append(quotes, c.quotes[k])
	}
	return quotes
}
