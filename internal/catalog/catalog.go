// Package catalog provides the static reference data for known securities.
//
// The catalog is built once at startup and never mutated afterwards, so it is
// safe to share across concurrent requests without locking. Symbols missing
// from the catalog are a recoverable condition: callers are expected to skip
// them, not abort.
package catalog

import (
	"sort"
	"strings"
)

// Risk labels used by catalog entries and the portfolio risk tier.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// Entry holds the static risk/return characteristics of one security.
type Entry struct {
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	Sector         string  `json:"sector"`
	Risk           string  `json:"risk"` // Low / Medium / High
	Beta           float64 `json:"beta"`
	ExpectedReturn float64 `json:"expected_return"` // percent, annual
	Volatility     float64 `json:"volatility"`      // stddev proxy, fraction
}

// Catalog is an immutable symbol -> Entry mapping.
type Catalog struct {
	entries map[string]Entry
}

// New builds a catalog from a list of entries. The input is copied, so later
// changes to the slice do not affect the catalog. Symbols are normalized to
// uppercase.
func New(entries []Entry) *Catalog {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		e.Symbol = strings.ToUpper(strings.TrimSpace(e.Symbol))
		m[e.Symbol] = e
	}
	return &Catalog{entries: m}
}

// Lookup returns the entry for a symbol. The lookup is case-insensitive.
func (c *Catalog) Lookup(symbol string) (Entry, bool) {
	e, ok := c.entries[strings.ToUpper(strings.TrimSpace(symbol))]
	return e, ok
}

// Symbols returns all known symbols, sorted.
func (c *Catalog) Symbols() []string {
	symbols := make([]string, 0, len(c.entries))
	for s := range c.entries {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Defaults returns the built-in reference entries used to seed an empty
// catalog store.
func Defaults() []Entry {
	return []Entry{
		{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology", Risk: RiskMedium, Beta: 1.2, ExpectedReturn: 15.0, Volatility: 0.25},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", Sector: "Technology", Risk: RiskMedium, Beta: 1.3, ExpectedReturn: 12.0, Volatility: 0.28},
		{Symbol: "MSFT", Name: "Microsoft Corp.", Sector: "Technology", Risk: RiskMedium, Beta: 1.1, ExpectedReturn: 14.0, Volatility: 0.22},
		{Symbol: "NVDA", Name: "NVIDIA Corp.", Sector: "Technology", Risk: RiskHigh, Beta: 1.8, ExpectedReturn: 20.0, Volatility: 0.45},
		{Symbol: "JPM", Name: "JPMorgan Chase", Sector: "Financial", Risk: RiskLow, Beta: 1.0, ExpectedReturn: 12.0, Volatility: 0.20},
		{Symbol: "BAC", Name: "Bank of America", Sector: "Financial", Risk: RiskMedium, Beta: 1.2, ExpectedReturn: 10.0, Volatility: 0.25},
		{Symbol: "JNJ", Name: "Johnson & Johnson", Sector: "Healthcare", Risk: RiskLow, Beta: 0.7, ExpectedReturn: 8.0, Volatility: 0.15},
		{Symbol: "PFE", Name: "Pfizer", Sector: "Healthcare", Risk: RiskLow, Beta: 0.8, ExpectedReturn: 6.0, Volatility: 0.18},
		{Symbol: "XOM", Name: "ExxonMobil", Sector: "Energy", Risk: RiskMedium, Beta: 1.1, ExpectedReturn: 8.0, Volatility: 0.30},
		{Symbol: "SPY", Name: "S&P 500 ETF", Sector: "Index", Risk: RiskLow, Beta: 1.0, ExpectedReturn: 10.0, Volatility: 0.15},
		{Symbol: "TSLA", Name: "Tesla Inc.", Sector: "Automotive", Risk: RiskHigh, Beta: 2.0, ExpectedReturn: 25.0, Volatility: 0.55},
		{Symbol: "AMZN", Name: "Amazon.com", Sector: "Consumer", Risk: RiskMedium, Beta: 1.3, ExpectedReturn: 16.0, Volatility: 0.30},
	}
}
