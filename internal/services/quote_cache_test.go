package services

import (
	"testing"
	"time"

	"github.com/aristath/portfolio-analyzer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteCacheRoundTrip(t *testing.T) {
	cache := NewQuoteCache(time.Minute)

	cache.SetAll(map[string]domain.Quote{
		"^NSEI": {LatestClose: 24500, PriorClose: 24400},
	})

	quote, ok := cache.Get("^NSEI")
	require.True(t, ok)
	assert.Equal(t, 24500.0, quote.LatestClose)

	_, ok = cache.Get("^BSESN")
	assert.False(t, ok)
}

func TestQuoteCacheExpiry(t *testing.T) {
	cache := NewQuoteCache(time.Minute)

	current := time.Now()
	cache.now = func() time.Time { return current }

	cache.SetAll(map[string]domain.Quote{"^NSEI": {LatestClose: 24500, PriorClose: 24400}})

	_, ok := cache.Get("^NSEI")
	assert.True(t, ok)

	// Advance past the TTL.
	current = current.Add(2 * time.Minute)
	_, ok = cache.Get("^NSEI")
	assert.False(t, ok)
}

func TestQuoteCacheOverwrite(t *testing.T) {
	cache := NewQuoteCache(time.Minute)

	cache.SetAll(map[string]domain.Quote{"^NSEI": {LatestClose: 1, PriorClose: 1}})
	cache.SetAll(map[string]domain.Quote{"^NSEI": {LatestClose: 2, PriorClose: 1}})

	quote, ok := cache.Get("^NSEI")
	require.True(t, ok)
	assert.Equal(t, 2.0, quote.LatestClose)
	assert.Equal(t, 1, cache.Len())
}
