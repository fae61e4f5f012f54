package services

import (
	"itsector/dataset"
	"itsector/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendationStyleKey(t *testing.T) {
	assert.Equal(t, "strong-buy", RecommendationStyleKey(types.StrongBuy))
	assert.Equal(t, "buy", RecommendationStyleKey(types.Buy))
	assert.Equal(t, "hold", RecommendationStyleKey(types.Hold))
	assert.Equal(t, "sell", RecommendationStyleKey(types.Sell))
}

func TestRecommendationRationale(t *testing.T) {
	tcs := dataset.Sample().Companies()[0]
	assert.Equal(t,
		"High upside potential (+72.1%) with strong fundamentals. ROE of 51.2% indicates efficient capital allocation.",
		RecommendationRationale(tcs))

	assert.Equal(t,
		"Attractive valuation with decent upside potential. Growth momentum and market position support positive outlook.",
		RecommendationRationale(types.Company{Recommendation: types.Buy}))
	assert.Equal(t,
		"Limited upside at current levels. Suitable for long-term investors seeking stability.",
		RecommendationRationale(types.Company{Recommendation: types.Hold}))
	assert.Equal(t,
		"Overvalued at current levels with negative upside potential. Consider profit booking.",
		RecommendationRationale(types.Company{Recommendation: types.Sell}))
	assert.Equal(t,
		"Based on comprehensive DCF and peer valuation analysis.",
		RecommendationRationale(types.Company{Recommendation: "Accumulate"}))
}

func TestRecommendationsSummary(t *testing.T) {
	summary := RecommendationsSummary(dataset.Sample().Companies())
	assert.Equal(t, map[types.Recommendation]int{
		types.StrongBuy: 2,
		types.Buy:       2,
		types.Hold:      1,
		types.Sell:      1,
	}, summary)

	total := 0
	for _, n := range summary {
		total += n
	}
	assert.Equal(t, 6, total)
}

func TestRecommendationRows(t *testing.T) {
	rows := RecommendationRows(dataset.Sample().Companies())
	require.Len(t, rows, 6)

	assert.Equal(t, "TCS", rows[0].Ticker)
	assert.Equal(t, "₹3,022.3", rows[0].Price)
	assert.Equal(t, "₹5,200", rows[0].Target)
	assert.Equal(t, "strong-buy", rows[0].StyleKey)
	assert.Equal(t, "+72.1%", rows[0].Upside)

	assert.Equal(t, "TECHM", rows[5].Ticker)
	assert.Equal(t, "-19.3%", rows[5].Upside)
	assert.Equal(t, types.RiskHigh, rows[5].Risk)
}

func TestPortfolioAllocation(t *testing.T) {
	allocations := PortfolioAllocation(dataset.Sample().Companies())
	assert.Equal(t, []types.Allocation{
		{Name: "TCS", Allocation: 41},
		{Name: "INFY", Allocation: 23},
		{Name: "HCLTECH", Allocation: 15},
		{Name: "WIPRO", Allocation: 10},
	}, allocations)

	sum := 0
	for _, a := range allocations {
		sum += a.Allocation
	}
	assert.Equal(t, 89, sum)
}

func TestPortfolioAllocation_NoBuys(t *testing.T) {
	companies := []types.Company{
		{Ticker: "A", MCap: 100, Recommendation: types.Hold},
		{Ticker: "B", MCap: 100, Recommendation: types.Sell},
	}
	allocations := PortfolioAllocation(companies)
	assert.NotNil(t, allocations)
	assert.Empty(t, allocations)
}

func TestPortfolioAllocation_ZeroTotal(t *testing.T) {
	assert.Empty(t, PortfolioAllocation(nil))
	assert.Empty(t, PortfolioAllocation([]types.Company{{Ticker: "A", Recommendation: types.Buy}}))
}

func TestPortfolioAllocation_TiesKeepOrder(t *testing.T) {
	companies := []types.Company{
		{Ticker: "A", MCap: 10, Recommendation: types.Buy},
		{Ticker: "B", MCap: 30, Recommendation: types.StrongBuy},
		{Ticker: "C", MCap: 10, Recommendation: types.Buy},
		{Ticker: "D", MCap: 50, Recommendation: types.Hold},
	}
	assert.Equal(t, []types.Allocation{
		{Name: "B", Allocation: 30},
		{Name: "A", Allocation: 10},
		{Name: "C", Allocation: 10},
	}, PortfolioAllocation(companies))
}
