package services

import (
	"itsector/types"
	"itsector/utils/helpers"
)

/*
Valuation table

The DCF scenarios are supplied data; nothing here computes them. Each company
is joined to its scenario row by ticker:
  - a company without a row shows "N/A" in every scenario column
  - if several rows share a ticker the first one wins
  - scenario rows for unknown tickers are ignored
*/

// DcfLookup returns the first scenario whose ticker matches exactly.
func DcfLookup(ticker string, scenarios []types.DcfScenario) (types.DcfScenario, bool) {
	for _, s := range scenarios {
		if s.Company == ticker {
			return s, true
		}
	}
	return types.DcfScenario{}, false
}

// scenarioValue keeps the dashboard's habit of treating a zero value as missing.
func scenarioValue(v float64, ok bool) string {
	if !ok || v == 0 {
		return types.NotAvailable
	}
	return helpers.FormatCurrency(v)
}

// ValuationRows joins every company to its DCF scenario for the valuation table.
func ValuationRows(companies []types.Company, scenarios []types.DcfScenario) []types.ValuationRow {
	rows := make([]types.ValuationRow, 0, len(companies))
	for _, c := range companies {
		dcf, ok := DcfLookup(c.Ticker, scenarios)
		rows = append(rows, types.ValuationRow{
			Name:         c.Name,
			Ticker:       c.Ticker,
			Price:        helpers.FormatCurrency(c.Price),
			Conservative: scenarioValue(dcf.Conservative, ok),
			BaseCase:     scenarioValue(dcf.BaseCase, ok),
			Aggressive:   scenarioValue(dcf.Aggressive, ok),
			Target:       helpers.FormatCurrency(c.Target),
			Upside:       helpers.FormatPercent(c.Upside),
			UpsideValue:  c.Upside,
			DcfAvailable: ok,
		})
	}
	return rows
}
