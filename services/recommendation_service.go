package services

import (
	"cmp"
	"fmt"
	"itsector/types"
	"itsector/utils/helpers"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// RecommendationStyleKey turns "Strong Buy" into "strong-buy" for CSS classes.
func RecommendationStyleKey(r types.Recommendation) string {
	return strings.Join(strings.Fields(strings.ToLower(string(r))), "-")
}

// RecommendationRationale explains a company's recommendation in one or two sentences.
func RecommendationRationale(c types.Company) string {
	switch c.Recommendation {
	case types.StrongBuy:
		return fmt.Sprintf("High upside potential (%s) with strong fundamentals. ROE of %s%% indicates efficient capital allocation.",
			helpers.FormatPercent(c.Upside), helpers.FormatFixed(c.ROE))
	case types.Buy:
		return "Attractive valuation with decent upside potential. Growth momentum and market position support positive outlook."
	case types.Hold:
		return "Limited upside at current levels. Suitable for long-term investors seeking stability."
	case types.Sell:
		return "Overvalued at current levels with negative upside potential. Consider profit booking."
	}
	return "Based on comprehensive DCF and peer valuation analysis."
}

// RecommendationsSummary counts companies per recommendation.
func RecommendationsSummary(companies []types.Company) map[types.Recommendation]int {
	summary := make(map[types.Recommendation]int)
	for _, c := range companies {
		summary[c.Recommendation]++
	}
	return summary
}

// RecommendationRows builds the recommendations table in dataset order.
func RecommendationRows(companies []types.Company) []types.RecommendationRow {
	rows := make([]types.RecommendationRow, 0, len(companies))
	for _, c := range companies {
		rows = append(rows, types.RecommendationRow{
			Name:           c.Name,
			Ticker:         c.Ticker,
			Price:          helpers.FormatCurrency(c.Price),
			Target:         helpers.FormatCurrency(c.Target),
			Recommendation: c.Recommendation,
			StyleKey:       RecommendationStyleKey(c.Recommendation),
			Upside:         helpers.FormatPercent(c.Upside),
			UpsideValue:    c.Upside,
			Risk:           c.Risk,
			Rationale:      RecommendationRationale(c),
		})
	}
	return rows
}

func totalMarketCap(companies []types.Company) float64 {
	caps := make([]float64, len(companies))
	for i, c := range companies {
		caps[i] = c.MCap
	}
	return floats.Sum(caps)
}

// PortfolioAllocation weights every Strong Buy and Buy company by its share of
// the market cap of all companies, rounded to whole percent. Rounding means the
// total is not guaranteed to be 100, and the remainder is not redistributed.
func PortfolioAllocation(companies []types.Company) []types.Allocation {
	total := totalMarketCap(companies)
	allocations := []types.Allocation{}
	if total <= 0 {
		return allocations
	}

	for _, c := range companies {
		if c.Recommendation != types.StrongBuy && c.Recommendation != types.Buy {
			continue
		}
		allocations = append(allocations, types.Allocation{
			Name:       c.Ticker,
			Allocation: int(math.Round(c.MCap / total * 100)),
		})
	}

	slices.SortStableFunc(allocations, func(a, b types.Allocation) int {
		return cmp.Compare(b.Allocation, a.Allocation)
	})
	return allocations
}
