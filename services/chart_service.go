package services

import (
	"itsector/dataset"
	"itsector/types"
)

// Chart IDs double as the element IDs the renderer draws into.
const (
	GlobalSpendingChart = "globalSpendingChart"
	MarketSegmentChart  = "marketSegmentChart"
	TargetPriceChart    = "targetPriceChart"
	PortfolioChart      = "portfolioChart"
)

var (
	segmentPalette   = []string{"#1FB8CD", "#FFC185", "#B4413C", "#ECEBD5", "#5D878F", "#DB4545"}
	portfolioPalette = []string{"#1FB8CD", "#FFC185", "#B4413C", "#5D878F", "#DB4545", "#D2BA4C"}
)

type palette struct {
	text        string
	grid        string
	border      string
	priceFill   string
	targetFill  string
	priceStroke string
	tgtStroke   string
}

func paletteFor(theme types.Theme) palette {
	if theme == types.ThemeDark {
		return palette{
			text: "#f5f5f5", grid: "rgba(245, 245, 245, 0.1)", border: "#262828",
			priceFill: "rgba(50, 184, 198, 0.7)", targetFill: "rgba(255, 84, 89, 0.7)",
			priceStroke: "#32b8c6", tgtStroke: "#ff5459",
		}
	}
	return palette{
		text: "#1f2121", grid: "rgba(31, 33, 33, 0.1)", border: "#ffffff",
		priceFill: "rgba(33, 128, 141, 0.7)", targetFill: "rgba(192, 21, 47, 0.7)",
		priceStroke: "#21808d", tgtStroke: "#c0152f",
	}
}

// ChartsForSection returns the charts shown in a section. Sections without
// charts return nil.
func ChartsForSection(section string, theme types.Theme, data *dataset.Dataset) []types.ChartSpec {
	p := paletteFor(theme)
	var spec types.ChartSpec

	switch section {
	case types.SectionMacroAnalysis:
		spec = types.ChartSpec{
			ID:     GlobalSpendingChart,
			Kind:   "line",
			Title:  "Global IT Spending vs India Revenue",
			Labels: []string{"2022", "2023", "2024", "2025F", "2026F"},
			Datasets: []types.ChartDataset{
				{Label: "Global IT Spending ($ Tn)", Data: []float64{4.2, 4.5, 4.8, 5.1, 5.4}, Colors: []string{"rgba(50, 160, 168, 0.1)"}, Border: "#32a0a8", Axis: "y", Tension: 0.4},
				{Label: "India IT Revenue ($ Bn)", Data: []float64{160, 177, 194, 210, 225}, Colors: []string{"rgba(230, 96, 97, 0.1)"}, Border: "#e66061", Axis: "y1", Tension: 0.4},
			},
		}
	case types.SectionIndustryAnalysis:
		segments := data.MarketSegments()
		labels := make([]string, len(segments))
		shares := make([]float64, len(segments))
		for i, s := range segments {
			labels[i] = s.Segment
			shares[i] = s.Share
		}
		spec = types.ChartSpec{
			ID:       MarketSegmentChart,
			Kind:     "doughnut",
			Title:    "Market Segmentation by Industry Vertical (%)",
			Labels:   labels,
			Datasets: []types.ChartDataset{{Data: shares, Colors: segmentPalette, Border: p.border}},
		}
	case types.SectionValuationAnalysis:
		companies := data.Companies()
		labels := make([]string, len(companies))
		prices := make([]float64, len(companies))
		targets := make([]float64, len(companies))
		for i, c := range companies {
			labels[i] = c.Ticker
			prices[i] = c.Price
			targets[i] = c.Target
		}
		spec = types.ChartSpec{
			ID:     TargetPriceChart,
			Kind:   "bar",
			Title:  "Current Price vs Target Price Comparison",
			Labels: labels,
			Datasets: []types.ChartDataset{
				{Label: "Current Price", Data: prices, Colors: []string{p.priceFill}, Border: p.priceStroke},
				{Label: "Target Price", Data: targets, Colors: []string{p.targetFill}, Border: p.tgtStroke},
			},
		}
	case types.SectionRecommendations:
		allocations := PortfolioAllocation(data.Companies())
		labels := make([]string, len(allocations))
		weights := make([]float64, len(allocations))
		for i, a := range allocations {
			labels[i] = a.Name
			weights[i] = float64(a.Allocation)
		}
		colors := portfolioPalette
		if len(allocations) < len(colors) {
			colors = colors[:len(allocations)]
		}
		spec = types.ChartSpec{
			ID:       PortfolioChart,
			Kind:     "pie",
			Title:    "Recommended Portfolio Allocation (%)",
			Labels:   labels,
			Datasets: []types.ChartDataset{{Data: weights, Colors: colors, Border: p.border}},
		}
	default:
		return nil
	}

	spec.Section = section
	spec.Theme = theme
	spec.TextColor = p.text
	spec.GridColor = p.grid
	return []types.ChartSpec{spec}
}
