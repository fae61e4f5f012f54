package dataset

import "itsector/types"

// Sample returns the built-in Indian IT services dataset.
func Sample() *Dataset {
	d, err := New(sampleCompanies, sampleSegments, sampleScenarios)
	if err != nil {
		panic(err)
	}
	return d
}

var sampleCompanies = []types.Company{
	{Name: "Tata Consultancy Services", Ticker: "TCS", Price: 3022.30, Target: 5200, PE: 22.19, ROE: 51.24, Growth: 6.17, MCap: 1093350, Recommendation: types.StrongBuy, Upside: 72.1, Risk: types.RiskLow},
	{Name: "Infosys", Ticker: "INFY", Price: 1447.70, Target: 1650, PE: 22.05, ROE: 28.72, Growth: 5.94, MCap: 601310, Recommendation: types.Buy, Upside: 14.0, Risk: types.RiskLow},
	{Name: "HCL Technologies", Ticker: "HCLTECH", Price: 1489.80, Target: 1720, PE: 23.80, ROE: 23.01, Growth: 8.17, MCap: 404282, Recommendation: types.Buy, Upside: 15.4, Risk: types.RiskMedium},
	{Name: "Wipro", Ticker: "WIPRO", Price: 246.81, Target: 385, PE: 19.22, ROE: 14.88, Growth: 0.78, MCap: 258710, Recommendation: types.StrongBuy, Upside: 56.0, Risk: types.RiskMedium},
	{Name: "LTIMindtree", Ticker: "LTIM", Price: 5108.00, Target: 4500, PE: 32.08, ROE: 22.89, Growth: 7.63, MCap: 151376, Recommendation: types.Hold, Upside: -11.9, Risk: types.RiskMedium},
	{Name: "Tech Mahindra", Ticker: "TECHM", Price: 1486.70, Target: 1200, PE: 32.05, ROE: 8.83, Growth: 2.66, MCap: 145569, Recommendation: types.Sell, Upside: -19.3, Risk: types.RiskHigh},
}

var sampleSegments = []types.MarketSegment{
	{Segment: "BFSI", Share: 32.5, Growth: 8.5, Risk: types.RiskMedium},
	{Segment: "Manufacturing & Hi-tech", Share: 18.2, Growth: 12.3, Risk: types.RiskLow},
	{Segment: "Healthcare & Life Sciences", Share: 12.8, Growth: 15.2, Risk: types.RiskLow},
	{Segment: "Retail & CPG", Share: 11.4, Growth: 9.8, Risk: types.RiskMedium},
	{Segment: "Energy & Utilities", Share: 8.7, Growth: 7.2, Risk: types.RiskHigh},
	{Segment: "Others", Share: 16.4, Growth: 10.1, Risk: types.RiskMedium},
}

// LTIM and TECHM intentionally have no scenario row.
var sampleScenarios = []types.DcfScenario{
	{Company: "TCS", Conservative: 4236.83, BaseCase: 5348.43, Aggressive: 6903.33},
	{Company: "INFY", Conservative: 1219.65, BaseCase: 1395.96, Aggressive: 1596.10},
	{Company: "HCLTECH", Conservative: 1347.95, BaseCase: 1564.36, Aggressive: 1813.76},
	{Company: "WIPRO", Conservative: 348.28, BaseCase: 370.87, Aggressive: 394.82},
}
