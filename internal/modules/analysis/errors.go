package analysis

import "errors"

// Input errors. These are the only failures that cross the engine boundary;
// enrichment problems (unknown tickers, provider outages) degrade the report
// instead of failing the call.
var (
	// ErrEmptyPortfolio is returned when the weight map has no entries.
	ErrEmptyPortfolio = errors.New("portfolio is empty")

	// ErrZeroWeight is returned when the weights sum to zero.
	ErrZeroWeight = errors.New("portfolio weights sum to zero")
)
