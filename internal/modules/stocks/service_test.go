package stocks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aristath/portfolio-analyzer/internal/catalog"
	"github.com/aristath/portfolio-analyzer/internal/clients/yahoo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMarketDataClient is a mock market data client for testing
type MockMarketDataClient struct {
	mock.Mock
}

func (m *MockMarketDataClient) GetHistoricalPrices(ctx context.Context, symbol string, period string) ([]yahoo.HistoricalPrice, error) {
	args := m.Called(ctx, symbol, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]yahoo.HistoricalPrice), args.Error(1)
}

func (m *MockMarketDataClient) Search(ctx context.Context, query string) ([]yahoo.SearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]yahoo.SearchResult), args.Error(1)
}

func bars(closes ...float64) []yahoo.HistoricalPrice {
	history := make([]yahoo.HistoricalPrice, len(closes))
	day := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		history[i] = yahoo.HistoricalPrice{Date: day.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c}
	}
	return history
}

func TestGetMetrics(t *testing.T) {
	client := &MockMarketDataClient{}
	client.On("GetHistoricalPrices", mock.Anything, "AAPL", "1mo").
		Return(bars(100, 105, 110, 104.5), nil)

	svc := NewService(client, catalog.New(catalog.Defaults()), zerolog.Nop())

	metrics, err := svc.GetMetrics(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, 104.5, metrics.Price)
	assert.Equal(t, 110.0, metrics.PreviousClose)
	assert.Equal(t, -5.0, metrics.DailyReturnPct)
	assert.Greater(t, metrics.Volatility30DPct, 0.0)
	require.NotNil(t, metrics.Beta)
	assert.Equal(t, 1.2, *metrics.Beta)
	assert.Len(t, metrics.History, 4)
}

func TestGetMetricsUnknownSymbolHasNoBeta(t *testing.T) {
	client := &MockMarketDataClient{}
	client.On("GetHistoricalPrices", mock.Anything, "ZZZZ", "1mo").
		Return(bars(10, 11), nil)

	svc := NewService(client, catalog.New(catalog.Defaults()), zerolog.Nop())

	metrics, err := svc.GetMetrics(context.Background(), "ZZZZ")
	require.NoError(t, err)
	assert.Nil(t, metrics.Beta)
}

func TestGetMetricsInsufficientHistory(t *testing.T) {
	client := &MockMarketDataClient{}
	client.On("GetHistoricalPrices", mock.Anything, "NEWIPO", "1mo").
		Return(bars(42), nil)

	svc := NewService(client, catalog.New(catalog.Defaults()), zerolog.Nop())

	_, err := svc.GetMetrics(context.Background(), "NEWIPO")
	assert.ErrorContains(t, err, "insufficient history")
}

func TestGetMetricsClientError(t *testing.T) {
	client := &MockMarketDataClient{}
	client.On("GetHistoricalPrices", mock.Anything, "AAPL", "1mo").
		Return(nil, errors.New("boom"))

	svc := NewService(client, catalog.New(catalog.Defaults()), zerolog.Nop())

	_, err := svc.GetMetrics(context.Background(), "AAPL")
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	client := &MockMarketDataClient{}
	client.On("Search", mock.Anything, "apple").
		Return([]yahoo.SearchResult{{Symbol: "AAPL", Name: "Apple Inc."}}, nil)

	svc := NewService(client, catalog.New(catalog.Defaults()), zerolog.Nop())

	matches, err := svc.Search(context.Background(), "apple")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "AAPL", matches[0].Symbol)
}
