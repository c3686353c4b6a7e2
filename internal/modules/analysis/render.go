package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RenderText formats a report as the plain-text summary shown to the user.
// Field order is fixed: total allocation, weighted beta, weighted expected
// return, weighted volatility, risk tier, sector breakdown, risk breakdown.
// Live price points are structured data only and are not part of the text.
func RenderText(r *Report) string {
	var b strings.Builder

	b.WriteString("Portfolio Analysis\n")
	fmt.Fprintf(&b, "- Total Allocation: %s%%\n", formatFloat(r.TotalWeight))
	fmt.Fprintf(&b, "- Weighted Beta: %s\n", formatFloat(r.WeightedBeta))
	fmt.Fprintf(&b, "- Weighted Expected Return: %s%%\n", formatFloat(r.WeightedReturn))
	fmt.Fprintf(&b, "- Weighted Volatility: %s\n", formatFloat(r.WeightedVolatility))
	fmt.Fprintf(&b, "- Portfolio Risk: %s\n", r.RiskTier)

	b.WriteString("\nSector Breakdown:\n")
	for _, sector := range sortedKeys(r.SectorBreakdown) {
		fmt.Fprintf(&b, "  - %s: %.1f%%\n", sector, r.SectorBreakdown[sector])
	}

	b.WriteString("\nRisk Distribution:\n")
	for _, risk := range sortedKeys(r.RiskBreakdown) {
		fmt.Fprintf(&b, "  - %s Risk: %.1f%%\n", risk, r.RiskBreakdown[risk])
	}

	return b.String()
}

// formatFloat trims trailing zeros so 1.20 renders as 1.2 and 100.00 as 100.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
