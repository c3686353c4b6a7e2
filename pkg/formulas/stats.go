// Package formulas provides shared statistical calculations for price series.
package formulas

import (
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation of a slice of float64
// values. Fewer than two samples yield zero, not NaN.
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// CalculateReturns converts prices to percentage returns
// Returns[i] = (Price[i] - Price[i-1]) / Price[i-1]
func CalculateReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}

	returns := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] != 0 {
			returns[i-1] = (prices[i] - prices[i-1]) / prices[i-1]
		}
	}

	return returns
}

// RealizedVolatilityPct calculates the realized volatility of a price series
// as the standard deviation of its daily returns, expressed in percent.
// This is the windowed (non-annualized) figure shown on the stock metrics view.
func RealizedVolatilityPct(prices []float64) float64 {
	returns := CalculateReturns(prices)
	if len(returns) == 0 {
		return 0
	}
	return StdDev(returns) * 100
}
