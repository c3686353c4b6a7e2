// Package insights provides the market-overview data: tracked index
// snapshots, top gainers/losers over a watchlist, and the news feed.
// Everything here is best-effort presentation data; failures degrade to
// empty results rather than errors wherever a partial view is still useful.
package insights

import (
	"context"
	"math"
	"sort"

	"github.com/aristath/portfolio-analyzer/internal/domain"
	"github.com/aristath/portfolio-analyzer/internal/services"
	"github.com/rs/zerolog"
)

// IndexQuote is one tracked index with its latest close and absolute change.
type IndexQuote struct {
	Symbol string  `json:"symbol"`
	Last   float64 `json:"last"`
	Change float64 `json:"change"`
}

// Mover is one watchlist symbol with its daily percent change.
type Mover struct {
	Symbol    string  `json:"symbol"`
	ChangePct float64 `json:"change_pct"`
}

// Config holds the insights service configuration
type Config struct {
	IndexSymbols []string
	MoverSymbols []string
	FeedURL      string
	NewsLimit    int
	LookbackDays int
}

// Service provides market insights operations
type Service struct {
	quotes       domain.QuoteProvider
	cache        *services.QuoteCache
	feed         FeedParser
	indexSymbols []string
	moverSymbols []string
	feedURL      string
	newsLimit    int
	lookbackDays int
	log          zerolog.Logger
}

// NewService creates a new insights service
func NewService(quotes domain.QuoteProvider, cache *services.QuoteCache, feed FeedParser, cfg Config, log zerolog.Logger) *Service {
	if cfg.NewsLimit <= 0 {
		cfg.NewsLimit = 5
	}
	if cfg.LookbackDays < 2 {
		cfg.LookbackDays = 2
	}
	return &Service{
		quotes:       quotes,
		cache:        cache,
		feed:         feed,
		indexSymbols: cfg.IndexSymbols,
		moverSymbols: cfg.MoverSymbols,
		feedURL:      cfg.FeedURL,
		newsLimit:    cfg.NewsLimit,
		lookbackDays: cfg.LookbackDays,
		log:          log.With().Str("service", "insights").Logger(),
	}
}

// IndexSnapshot returns the latest close and change for each tracked index.
// Fresh cache entries are used as-is; the misses are fetched in one batch.
// Indices the provider cannot resolve are omitted from the snapshot.
func (s *Service) IndexSnapshot(ctx context.Context) []IndexQuote {
	resolved := make(map[string]domain.Quote, len(s.indexSymbols))
	var misses []string

	for _, symbol := range s.indexSymbols {
		if quote, ok := s.cache.Get(symbol); ok {
			resolved[symbol] = quote
		} else {
			misses = append(misses, symbol)
		}
	}

	if len(misses) > 0 {
		quotes, err := s.quotes.FetchRecent(ctx, misses, s.lookbackDays)
		if err != nil {
			s.log.Warn().Err(err).Msg("Index quote fetch failed")
		} else {
			s.cache.SetAll(quotes)
			for symbol, quote := range quotes {
				resolved[symbol] = quote
			}
		}
	}

	snapshot := make([]IndexQuote, 0, len(s.indexSymbols))
	for _, symbol := range s.indexSymbols {
		quote, ok := resolved[symbol]
		if !ok {
			continue
		}
		snapshot = append(snapshot, IndexQuote{
			Symbol: symbol,
			Last:   round(quote.LatestClose, 2),
			Change: round(quote.LatestClose-quote.PriorClose, 2),
		})
	}

	return snapshot
}

// RefreshIndexCache fetches all tracked indices in one batch and stores them
// in the quote cache. Run periodically by the scheduler.
func (s *Service) RefreshIndexCache(ctx context.Context) error {
	quotes, err := s.quotes.FetchRecent(ctx, s.indexSymbols, s.lookbackDays)
	if err != nil {
		return err
	}

	s.cache.SetAll(quotes)
	s.log.Debug().Int("indices", len(quotes)).Msg("Refreshed index quote cache")
	return nil
}

// TopMovers returns the best and worst daily performers of the watchlist,
// up to n each. Gainers are sorted best-first, losers worst-first. A total
// provider failure yields two empty lists.
func (s *Service) TopMovers(ctx context.Context, n int) (gainers, losers []Mover) {
	if n <= 0 {
		n = 5
	}

	quotes, err := s.quotes.FetchRecent(ctx, s.moverSymbols, s.lookbackDays)
	if err != nil {
		s.log.Warn().Err(err).Msg("Mover quote fetch failed")
		return []Mover{}, []Mover{}
	}

	movers := make([]Mover, 0, len(quotes))
	for symbol, quote := range quotes {
		movers = append(movers, Mover{
			Symbol:    symbol,
			ChangePct: round(quote.DailyChangePct(), 2),
		})
	}

	sort.Slice(movers, func(i, j int) bool {
		if movers[i].ChangePct != movers[j].ChangePct {
			return movers[i].ChangePct > movers[j].ChangePct
		}
		return movers[i].Symbol < movers[j].Symbol
	})

	gainers = append([]Mover{}, movers[:min(n, len(movers))]...)

	losers = append([]Mover{}, movers[max(0, len(movers)-n):]...)
	// Worst first.
	sort.Slice(losers, func(i, j int) bool {
		if losers[i].ChangePct != losers[j].ChangePct {
			return losers[i].ChangePct < losers[j].ChangePct
		}
		return losers[i].Symbol < losers[j].Symbol
	})

	return gainers, losers
}

// round rounds a float64 to n decimal places
func round(val float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(val*multiplier) / multiplier
}
