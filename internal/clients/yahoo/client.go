// Package yahoo provides a Yahoo Finance API client.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aristath/portfolio-analyzer/internal/domain"
	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client is a Yahoo Finance API client
type Client struct {
	client  *http.Client
	baseURL string
	log     zerolog.Logger
}

// NewClient creates a new Yahoo Finance client
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: defaultBaseURL,
		log:     log.With().Str("client", "yahoo").Logger(),
	}
}

// FetchRecent fetches the two bracketing closes of the lookback window for a
// set of symbols in one batched spark request. Symbols with no usable history
// are absent from the result. Implements domain.QuoteProvider.
func (c *Client) FetchRecent(ctx context.Context, symbols []string, lookbackDays int) (map[string]domain.Quote, error) {
	if len(symbols) == 0 {
		return map[string]domain.Quote{}, nil
	}
	if lookbackDays < 2 {
		lookbackDays = 2
	}

	params := url.Values{}
	params.Add("symbols", strings.Join(symbols, ","))
	params.Add("range", rangeForLookback(lookbackDays))
	params.Add("interval", "1d")

	body, err := c.get(ctx, "/v8/finance/spark", params)
	if err != nil {
		return nil, err
	}

	var result sparkResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse spark response: %w", err)
	}
	if result.Spark.Error != nil {
		return nil, fmt.Errorf("Yahoo Finance API error: %v", result.Spark.Error)
	}

	quotes := make(map[string]domain.Quote, len(symbols))
	for _, res := range result.Spark.Result {
		if len(res.Response) == 0 || len(res.Response[0].Indicators.Quote) == 0 {
			continue
		}

		closes := nonZero(res.Response[0].Indicators.Quote[0].Close)
		if len(closes) < 2 {
			// A single close gives no prior reference; treat as absent.
			continue
		}

		// The range request may return more sessions than the lookback
		// window; the window is the trailing lookbackDays closes.
		if len(closes) > lookbackDays {
			closes = closes[len(closes)-lookbackDays:]
		}

		quotes[strings.ToUpper(res.Symbol)] = domain.Quote{
			LatestClose: closes[len(closes)-1],
			PriorClose:  closes[0],
		}
	}

	c.log.Debug().
		Int("requested", len(symbols)).
		Int("resolved", len(quotes)).
		Msg("Fetched recent closes")

	return quotes, nil
}

// GetHistoricalPrices fetches daily bars from the chart API.
//
// Supports ranges: 1d, 5d, 1mo, 3mo, 6mo, 1y, 2y, 5y, 10y, ytd, max
func (c *Client) GetHistoricalPrices(ctx context.Context, symbol string, period string) ([]HistoricalPrice, error) {
	params := url.Values{}
	params.Add("interval", "1d")
	params.Add("range", period)

	body, err := c.get(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), params)
	if err != nil {
		return nil, err
	}

	var result chartResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse chart response: %w", err)
	}
	if result.Chart.Error != nil {
		return nil, fmt.Errorf("Yahoo Finance API error: %v", result.Chart.Error)
	}

	if len(result.Chart.Result) == 0 {
		c.log.Warn().Str("symbol", symbol).Msg("No historical data returned")
		return []HistoricalPrice{}, nil
	}

	chartData := result.Chart.Result[0]
	if len(chartData.Indicators.Quote) == 0 {
		c.log.Warn().Str("symbol", symbol).Msg("No quote data in response")
		return []HistoricalPrice{}, nil
	}

	quote := chartData.Indicators.Quote[0]

	var prices []HistoricalPrice
	for i := range chartData.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			continue
		}

		// Yahoo sometimes returns null bars
		if quote.Open[i] == 0 && quote.High[i] == 0 && quote.Low[i] == 0 && quote.Close[i] == 0 {
			continue
		}

		volume := int64(0)
		if i < len(quote.Volume) {
			volume = quote.Volume[i]
		}

		prices = append(prices, HistoricalPrice{
			Date:   time.Unix(chartData.Timestamp[i], 0),
			Open:   quote.Open[i],
			High:   quote.High[i],
			Low:    quote.Low[i],
			Close:  quote.Close[i],
			Volume: volume,
		})
	}

	c.log.Debug().
		Str("symbol", symbol).
		Str("period", period).
		Int("count", len(prices)).
		Msg("Fetched historical prices")

	return prices, nil
}

// Search looks up tickers by company name or symbol fragment.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	params := url.Values{}
	params.Add("q", query)
	params.Add("quotesCount", "5")
	params.Add("newsCount", "0")

	body, err := c.get(ctx, "/v1/finance/search", params)
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	matches := make([]SearchResult, 0, len(result.Quotes))
	for _, q := range result.Quotes {
		if q.Symbol == "" {
			continue
		}
		name := q.ShortName
		if name == "" {
			name = q.LongName
		}
		matches = append(matches, SearchResult{
			Symbol:    q.Symbol,
			Name:      name,
			Exchange:  q.Exchange,
			QuoteType: q.QuoteType,
		})
	}

	return matches, nil
}

// get performs a GET request against the Yahoo Finance API
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers to mimic browser
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Yahoo Finance API returned status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// rangeForLookback maps a lookback in days to the nearest chart range the API
// accepts.
func rangeForLookback(days int) string {
	switch {
	case days <= 1:
		return "1d"
	case days <= 5:
		return "5d"
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	default:
		return "1y"
	}
}

// nonZero filters null (zero) closes out of a series.
func nonZero(values []float64) []float64 {
	result := make([]float64, 0, len(values))
	for _, v := range values {
		if v != 0 {
			result = append(result, v)
		}
	}
	return result
}
