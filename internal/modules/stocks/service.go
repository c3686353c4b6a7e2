// Package stocks provides per-symbol market metrics and ticker search.
package stocks

import (
	"context"
	"fmt"
	"math"

	"github.com/aristath/portfolio-analyzer/internal/catalog"
	"github.com/aristath/portfolio-analyzer/internal/clients/yahoo"
	"github.com/aristath/portfolio-analyzer/pkg/formulas"
	"github.com/rs/zerolog"
)

// MarketDataClient defines the market data operations needed by this module
type MarketDataClient interface {
	GetHistoricalPrices(ctx context.Context, symbol string, period string) ([]yahoo.HistoricalPrice, error)
	Search(ctx context.Context, query string) ([]yahoo.SearchResult, error)
}

// Metrics is the per-symbol analysis view: latest price, daily return, and
// realized volatility over the trailing month, plus the catalog beta when
// the symbol is a known security.
type Metrics struct {
	Symbol           string                  `json:"symbol"`
	Price            float64                 `json:"price"`
	PreviousClose    float64                 `json:"previous_close"`
	DailyReturnPct   float64                 `json:"daily_return_pct"`
	Beta             *float64                `json:"beta,omitempty"` // absent for symbols outside the catalog
	Volatility30DPct float64                 `json:"volatility_30d_pct"`
	History          []yahoo.HistoricalPrice `json:"history"`
}

// Service provides stock analysis operations
type Service struct {
	client  MarketDataClient
	catalog *catalog.Catalog
	log     zerolog.Logger
}

// NewService creates a new stocks service
func NewService(client MarketDataClient, cat *catalog.Catalog, log zerolog.Logger) *Service {
	return &Service{
		client:  client,
		catalog: cat,
		log:     log.With().Str("service", "stocks").Logger(),
	}
}

// GetMetrics fetches a month of history for a symbol and derives its metrics.
func (s *Service) GetMetrics(ctx context.Context, symbol string) (*Metrics, error) {
	history, err := s.client.GetHistoricalPrices(ctx, symbol, "1mo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", symbol, err)
	}
	if len(history) < 2 {
		return nil, fmt.Errorf("insufficient history for %s", symbol)
	}

	closes := make([]float64, len(history))
	for i, bar := range history {
		closes[i] = bar.Close
	}

	price := closes[len(closes)-1]
	previousClose := closes[len(closes)-2]

	dailyReturn := 0.0
	if previousClose != 0 {
		dailyReturn = (price - previousClose) / previousClose * 100
	}

	metrics := &Metrics{
		Symbol:           symbol,
		Price:            round(price, 2),
		PreviousClose:    round(previousClose, 2),
		DailyReturnPct:   round(dailyReturn, 2),
		Volatility30DPct: round(formulas.RealizedVolatilityPct(closes), 2),
		History:          history,
	}

	if entry, ok := s.catalog.Lookup(symbol); ok {
		beta := entry.Beta
		metrics.Beta = &beta
	}

	return metrics, nil
}

// Search looks up tickers matching a company name or symbol fragment.
func (s *Service) Search(ctx context.Context, query string) ([]yahoo.SearchResult, error) {
	matches, err := s.client.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ticker search failed: %w", err)
	}
	return matches, nil
}

// round rounds a float64 to n decimal places
func round(val float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(val*multiplier) / multiplier
}
