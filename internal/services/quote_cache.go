// Package services provides shared services used by multiple modules.
package services

import (
	"sync"
	"time"

	"github.com/aristath/portfolio-analyzer/internal/domain"
)

// QuoteCache is a time-bounded in-memory cache for recent quotes. It sits in
// front of the quote provider for the insights views, where slightly stale
// index data is acceptable. The analysis engine does not use it: every
// analysis call gets a fresh best-effort fetch.
type QuoteCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cachedQuote
	now     func() time.Time // injectable clock for tests
}

type cachedQuote struct {
	quote     domain.Quote
	fetchedAt time.Time
}

// NewQuoteCache creates a quote cache with the given TTL.
func NewQuoteCache(ttl time.Duration) *QuoteCache {
	return &QuoteCache{
		ttl:     ttl,
		entries: make(map[string]cachedQuote),
		now:     time.Now,
	}
}

// Get returns the cached quote for a symbol if it is still fresh.
func (c *QuoteCache) Get(symbol string) (domain.Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[symbol]
	if !ok || c.now().Sub(entry.fetchedAt) > c.ttl {
		return domain.Quote{}, false
	}
	return entry.quote, true
}

// SetAll stores a batch of quotes with the current timestamp.
func (c *QuoteCache) SetAll(quotes map[string]domain.Quote) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fetchedAt := c.now()
	for symbol, quote := range quotes {
		c.entries[symbol] = cachedQuote{quote: quote, fetchedAt: fetchedAt}
	}
}

// Len returns the number of cached entries, fresh or not.
func (c *QuoteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
