// Package analysis implements the portfolio aggregation engine: it validates
// a raw weight map, enriches it with best-effort live prices, and produces a
// weighted risk/return report with sector and risk-tier breakdowns.
package analysis

import (
	"context"
	"math"
	"strings"

	"github.com/aristath/portfolio-analyzer/internal/catalog"
	"github.com/aristath/portfolio-analyzer/internal/domain"
	"github.com/rs/zerolog"
)

// Risk tier thresholds on weighted beta. Fixed design constants.
const (
	highBetaThreshold   = 1.3
	mediumBetaThreshold = 0.8
)

// Service orchestrates portfolio analysis.
//
// The weighted statistics depend only on the static catalog; the live quote
// fetch is informational and a provider failure never fails the analysis.
type Service struct {
	catalog      *catalog.Catalog
	quotes       domain.QuoteProvider
	lookbackDays int
	log          zerolog.Logger
}

// NewService creates a new analysis service
func NewService(cat *catalog.Catalog, quotes domain.QuoteProvider, lookbackDays int, log zerolog.Logger) *Service {
	if lookbackDays < 2 {
		lookbackDays = 2
	}
	return &Service{
		catalog:      cat,
		quotes:       quotes,
		lookbackDays: lookbackDays,
		log:          log.With().Str("service", "analysis").Logger(),
	}
}

// Validate checks a weight map for the two terminal input errors.
func Validate(weights map[string]float64) error {
	if len(weights) == 0 {
		return ErrEmptyPortfolio
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return ErrZeroWeight
	}

	return nil
}

// Analyze validates the weight map, fetches live prices for its symbols in
// one batch, and computes the weighted report. Only ErrEmptyPortfolio and
// ErrZeroWeight are returned as errors; every other failure mode degrades
// the report data instead.
func (s *Service) Analyze(ctx context.Context, weights map[string]float64) (*Report, error) {
	if err := Validate(weights); err != nil {
		return nil, err
	}

	live := s.fetchLive(ctx, symbolsOf(weights))
	return s.compute(weights, live), nil
}

// fetchLive resolves recent quotes for the distinct symbol set. It never
// returns an error: a provider failure yields an empty map, because live
// enrichment must not block the static computation.
func (s *Service) fetchLive(ctx context.Context, symbols []string) map[string]domain.Quote {
	if s.quotes == nil {
		return map[string]domain.Quote{}
	}

	quotes, err := s.quotes.FetchRecent(ctx, symbols, s.lookbackDays)
	if err != nil {
		s.log.Warn().
			Err(err).
			Int("symbols", len(symbols)).
			Msg("Live price fetch failed, continuing with static data only")
		return map[string]domain.Quote{}
	}

	return quotes
}

// compute builds the report from the weight map, the catalog, and whatever
// live quotes resolved.
func (s *Service) compute(weights map[string]float64, live map[string]domain.Quote) *Report {
	totalWeight := 0.0
	for _, w := range weights {
		totalWeight += w
	}

	var weightedBeta, weightedReturn, weightedVolatility float64
	sectors := make(map[string]float64)
	risks := make(map[string]float64)

	for symbol, weight := range weights {
		entry, ok := s.catalog.Lookup(symbol)
		if !ok {
			// Unknown tickers are dropped: they contribute nothing to the
			// weighted metrics or breakdowns, but their weight stays in the
			// normalization denominator.
			s.log.Debug().Str("symbol", symbol).Msg("Symbol not in catalog, skipped")
			continue
		}

		weightPct := weight / totalWeight
		weightedBeta += entry.Beta * weightPct
		weightedReturn += entry.ExpectedReturn * weightPct
		weightedVolatility += entry.Volatility * weightPct
		sectors[entry.Sector] += weight
		risks[entry.Risk] += weight
	}

	report := &Report{
		TotalWeight:        round(totalWeight, 2),
		WeightedBeta:       round(weightedBeta, 2),
		WeightedReturn:     round(weightedReturn, 2),
		WeightedVolatility: round(weightedVolatility, 2),
		// Classified on the full-precision value, before display rounding.
		RiskTier:        classifyRiskTier(weightedBeta),
		SectorBreakdown: toPercentages(sectors, totalWeight),
		RiskBreakdown:   toPercentages(risks, totalWeight),
		Live:            make(map[string]PricePoint, len(live)),
	}

	for symbol, q := range live {
		report.Live[symbol] = PricePoint{
			Price:          round(q.LatestClose, 2),
			DailyChangePct: round(q.DailyChangePct(), 2),
		}
	}

	return report
}

// classifyRiskTier maps weighted beta to the coarse risk tier.
// Boundaries are strict: beta of exactly 1.3 is Medium, 0.8 is Low.
func classifyRiskTier(weightedBeta float64) string {
	switch {
	case weightedBeta > highBetaThreshold:
		return catalog.RiskHigh
	case weightedBeta > mediumBetaThreshold:
		return catalog.RiskMedium
	default:
		return catalog.RiskLow
	}
}

// toPercentages converts raw weight buckets to percent-of-total values.
func toPercentages(buckets map[string]float64, totalWeight float64) map[string]float64 {
	result := make(map[string]float64, len(buckets))
	for name, weight := range buckets {
		result[name] = round(weight/totalWeight*100, 2)
	}
	return result
}

// symbolsOf returns the distinct, uppercased symbols of a weight map.
func symbolsOf(weights map[string]float64) []string {
	seen := make(map[string]bool, len(weights))
	symbols := make([]string, 0, len(weights))
	for symbol := range weights {
		normalized := strings.ToUpper(strings.TrimSpace(symbol))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		symbols = append(symbols, normalized)
	}
	return symbols
}

// round rounds a float64 to n decimal places
func round(val float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(val*multiplier) / multiplier
}
