// Package domain contains shared types and interfaces used across modules.
// Keeping them here avoids import cycles between modules and clients.
package domain

import "context"

// Quote holds the two most recent closing prices of a symbol.
type Quote struct {
	LatestClose float64
	PriorClose  float64
}

// DailyChangePct returns the percent change between the two closes.
// A zero prior close yields zero rather than dividing by it.
func (q Quote) DailyChangePct() float64 {
	if q.PriorClose == 0 {
		return 0
	}
	return (q.LatestClose - q.PriorClose) / q.PriorClose * 100
}

// QuoteProvider fetches recent closing prices for a set of symbols in one
// batch. Symbols the provider cannot resolve are absent from the result;
// a non-nil error means the whole batch failed.
type QuoteProvider interface {
	FetchRecent(ctx context.Context, symbols []string, lookbackDays int) (map[string]Quote, error)
}
