package analysis

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/aristath/portfolio-analyzer/internal/catalog"
	"github.com/aristath/portfolio-analyzer/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockQuoteProvider is a mock live price provider for testing
type MockQuoteProvider struct {
	mock.Mock
}

func (m *MockQuoteProvider) FetchRecent(ctx context.Context, symbols []string, lookbackDays int) (map[string]domain.Quote, error) {
	args := m.Called(ctx, symbols, lookbackDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Quote), args.Error(1)
}

func newTestService(provider domain.QuoteProvider) *Service {
	return NewService(catalog.New(catalog.Defaults()), provider, 2, zerolog.Nop())
}

// noQuotes wires the provider to return an empty result for any symbol set.
func noQuotes(provider *MockQuoteProvider) {
	provider.On("FetchRecent", mock.Anything, mock.Anything, 2).
		Return(map[string]domain.Quote{}, nil)
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Validate(map[string]float64{}), ErrEmptyPortfolio)
	assert.ErrorIs(t, Validate(nil), ErrEmptyPortfolio)
	assert.ErrorIs(t, Validate(map[string]float64{"AAPL": 0, "GOOGL": 0}), ErrZeroWeight)
	assert.NoError(t, Validate(map[string]float64{"AAPL": 40, "GOOGL": 60}))
}

func TestAnalyzeEmptyPortfolio(t *testing.T) {
	provider := &MockQuoteProvider{}
	svc := newTestService(provider)

	_, err := svc.Analyze(context.Background(), map[string]float64{})
	assert.ErrorIs(t, err, ErrEmptyPortfolio)

	// Input errors are terminal: the provider is never consulted.
	provider.AssertNotCalled(t, "FetchRecent", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyzeZeroWeights(t *testing.T) {
	provider := &MockQuoteProvider{}
	svc := newTestService(provider)

	_, err := svc.Analyze(context.Background(), map[string]float64{"AAPL": 0, "GOOGL": 0})
	assert.ErrorIs(t, err, ErrZeroWeight)

	provider.AssertNotCalled(t, "FetchRecent", mock.Anything, mock.Anything, mock.Anything)
}

func TestSingleHoldingPassesThroughCatalogValues(t *testing.T) {
	provider := &MockQuoteProvider{}
	noQuotes(provider)
	svc := newTestService(provider)

	report, err := svc.Analyze(context.Background(), map[string]float64{"AAPL": 100})
	require.NoError(t, err)

	assert.Equal(t, 100.0, report.TotalWeight)
	assert.Equal(t, 1.2, report.WeightedBeta)
	assert.Equal(t, 15.0, report.WeightedReturn)
	assert.Equal(t, 0.25, report.WeightedVolatility)
	assert.Equal(t, catalog.RiskMedium, report.RiskTier)
	assert.Equal(t, map[string]float64{"Technology": 100}, report.SectorBreakdown)
	assert.Equal(t, map[string]float64{catalog.RiskMedium: 100}, report.RiskBreakdown)
}

func TestUnknownTickerWeightStaysInDenominator(t *testing.T) {
	provider := &MockQuoteProvider{}
	noQuotes(provider)
	svc := newTestService(provider)

	report, err := svc.Analyze(context.Background(), map[string]float64{"AAPL": 50, "ZZZZ": 50})
	require.NoError(t, err)

	// ZZZZ contributes nothing, but its 50 stays in the denominator, so
	// AAPL's catalog values enter at half strength.
	assert.Equal(t, 100.0, report.TotalWeight)
	assert.Equal(t, 0.6, report.WeightedBeta)
	assert.Equal(t, 7.5, report.WeightedReturn)
	assert.Equal(t, 0.13, report.WeightedVolatility) // 0.125 rounded for display

	// The dropped weight also makes breakdowns sum below 100%.
	assert.Equal(t, map[string]float64{"Technology": 50}, report.SectorBreakdown)
	assert.Equal(t, 50.0, sumValues(report.RiskBreakdown))
}

func TestBreakdownsSumToHundredWhenAllSymbolsKnown(t *testing.T) {
	provider := &MockQuoteProvider{}
	noQuotes(provider)
	svc := newTestService(provider)

	report, err := svc.Analyze(context.Background(), map[string]float64{
		"AAPL": 40, "JPM": 30, "JNJ": 20, "TSLA": 10,
	})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, sumValues(report.SectorBreakdown), 0.01)
	assert.InDelta(t, 100.0, sumValues(report.RiskBreakdown), 0.01)
}

func TestRiskTierBoundaries(t *testing.T) {
	tests := []struct {
		beta float64
		tier string
	}{
		{0.8, catalog.RiskLow},     // boundary is exclusive
		{0.81, catalog.RiskMedium},
		{1.3, catalog.RiskMedium},  // boundary is exclusive
		{1.31, catalog.RiskHigh},
	}

	for _, tc := range tests {
		cat := catalog.New([]catalog.Entry{{
			Symbol: "TEST", Name: "Test Corp.", Sector: "Testing",
			Risk: catalog.RiskMedium, Beta: tc.beta, ExpectedReturn: 10, Volatility: 0.2,
		}})

		provider := &MockQuoteProvider{}
		noQuotes(provider)
		svc := NewService(cat, provider, 2, zerolog.Nop())

		report, err := svc.Analyze(context.Background(), map[string]float64{"TEST": 100})
		require.NoError(t, err)
		assert.Equalf(t, tc.tier, report.RiskTier, "beta %v", tc.beta)
	}
}

func TestProviderFailureDoesNotFailAnalysis(t *testing.T) {
	provider := &MockQuoteProvider{}
	provider.On("FetchRecent", mock.Anything, mock.Anything, 2).
		Return(nil, errors.New("network down"))
	svc := newTestService(provider)

	report, err := svc.Analyze(context.Background(), map[string]float64{"AAPL": 60, "JNJ": 40})
	require.NoError(t, err)

	// The weighted statistics are intact, only enrichment is absent.
	assert.Empty(t, report.Live)
	assert.InDelta(t, 1.0, report.WeightedBeta, 0.001) // 1.2*0.6 + 0.7*0.4
	assert.Equal(t, catalog.RiskMedium, report.RiskTier)
}

func TestPartialLiveDataIsReportedPerSymbol(t *testing.T) {
	provider := &MockQuoteProvider{}
	provider.On("FetchRecent", mock.Anything, mock.Anything, 2).
		Return(map[string]domain.Quote{
			"AAPL": {LatestClose: 172.333, PriorClose: 170.111},
		}, nil)
	svc := newTestService(provider)

	report, err := svc.Analyze(context.Background(), map[string]float64{"AAPL": 60, "JNJ": 40})
	require.NoError(t, err)

	require.Contains(t, report.Live, "AAPL")
	assert.NotContains(t, report.Live, "JNJ")
	assert.Equal(t, 172.33, report.Live["AAPL"].Price)
	assert.Equal(t, 1.31, report.Live["AAPL"].DailyChangePct)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	provider := &MockQuoteProvider{}
	provider.On("FetchRecent", mock.Anything, mock.Anything, 2).
		Return(map[string]domain.Quote{
			"AAPL": {LatestClose: 170, PriorClose: 168},
		}, nil)
	svc := newTestService(provider)

	weights := map[string]float64{"AAPL": 40, "GOOGL": 30, "SPY": 30}

	first, err := svc.Analyze(context.Background(), weights)
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), weights)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFetchRecentIsBatchedOverDistinctSymbols(t *testing.T) {
	provider := &MockQuoteProvider{}
	provider.On("FetchRecent", mock.Anything, mock.MatchedBy(func(symbols []string) bool {
		sorted := append([]string(nil), symbols...)
		sort.Strings(sorted)
		return assert.ObjectsAreEqual([]string{"AAPL", "GOOGL"}, sorted)
	}), 2).Return(map[string]domain.Quote{}, nil).Once()
	svc := newTestService(provider)

	_, err := svc.Analyze(context.Background(), map[string]float64{"AAPL": 50, "googl": 50})
	require.NoError(t, err)

	provider.AssertExpectations(t)
}

func TestRenderText(t *testing.T) {
	provider := &MockQuoteProvider{}
	noQuotes(provider)
	svc := newTestService(provider)

	report, err := svc.Analyze(context.Background(), map[string]float64{"AAPL": 100})
	require.NoError(t, err)

	text := RenderText(report)

	assert.Contains(t, text, "Portfolio Analysis")
	assert.Contains(t, text, "- Total Allocation: 100%")
	assert.Contains(t, text, "- Weighted Beta: 1.2")
	assert.Contains(t, text, "- Weighted Expected Return: 15%")
	assert.Contains(t, text, "- Weighted Volatility: 0.25")
	assert.Contains(t, text, "- Portfolio Risk: Medium")
	assert.Contains(t, text, "  - Technology: 100.0%")
	assert.Contains(t, text, "  - Medium Risk: 100.0%")
}

func sumValues(m map[string]float64) float64 {
	total := 0.0
	for _, v := range m {
		total += v
	}
	return total
}
