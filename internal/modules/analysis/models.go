package analysis

// PricePoint is the live enrichment for one symbol. A symbol the provider
// could not resolve has no PricePoint at all rather than a zeroed one.
type PricePoint struct {
	Price          float64 `json:"price"`
	DailyChangePct float64 `json:"daily_change_pct"`
}

// Report is the aggregated weighted risk/return view of one portfolio.
// Produced fresh on every Analyze call; never persisted.
//
// Breakdown percentages are percent-of-total-weight. When part of the weight
// belongs to tickers outside the catalog the breakdowns sum to less than
// 100% — that weight is dropped from the numerators but stays in the
// denominator.
type Report struct {
	TotalWeight        float64               `json:"total_weight"`
	WeightedBeta       float64               `json:"weighted_beta"`
	WeightedReturn     float64               `json:"weighted_return"`     // percent, annual
	WeightedVolatility float64               `json:"weighted_volatility"` // fraction
	RiskTier           string                `json:"risk_tier"`           // Low / Medium / High
	SectorBreakdown    map[string]float64    `json:"sector_breakdown"`    // sector -> percent of total weight
	RiskBreakdown      map[string]float64    `json:"risk_breakdown"`      // risk label -> percent of total weight
	Live               map[string]PricePoint `json:"live,omitempty"`      // symbol -> latest price point
}
