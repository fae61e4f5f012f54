package services

import (
	"cmp"
	"itsector/types"
	"itsector/utils/helpers"
	"slices"
)

// Market cap thresholds in crores, inclusive on the lower bound.
const (
	LargeCapThreshold = 200000
	MidCapThreshold   = 50000
)

// CapCategoryOf buckets a market capitalisation into large, mid or small.
func CapCategoryOf(mcap float64) types.CapCategory {
	if mcap >= LargeCapThreshold {
		return types.CapLarge
	} else if mcap >= MidCapThreshold {
		return types.CapMid
	}
	return types.CapSmall
}

// ParseFilterSpec builds a FilterSpec from raw UI values. Unknown values fall
// back to "all" / "all" / "mcap".
func ParseFilterSpec(capCategory, recommendation, sortKey string) types.FilterSpec {
	spec := types.DefaultFilter()

	switch c := types.CapCategory(helpers.NormalizeString(capCategory)); c {
	case types.CapLarge, types.CapMid, types.CapSmall:
		spec.CapCategory = c
	}

	for _, r := range types.Recommendations {
		if helpers.NormalizeString(string(r)) == helpers.NormalizeString(recommendation) {
			spec.Recommendation = r
			break
		}
	}

	switch k := types.SortKey(helpers.NormalizeString(sortKey)); k {
	case types.SortByMCap, types.SortByUpside, types.SortByPE, types.SortByROE, types.SortByGrowth:
		spec.SortKey = k
	}

	return spec
}

func matchesFilter(c types.Company, spec types.FilterSpec) bool {
	if spec.CapCategory != types.CapAll && spec.CapCategory != "" && CapCategoryOf(c.MCap) != spec.CapCategory {
		return false
	}
	if spec.Recommendation != types.RecommendationAll && spec.Recommendation != "" && c.Recommendation != spec.Recommendation {
		return false
	}
	return true
}

func comparatorFor(key types.SortKey) func(a, b types.Company) int {
	switch key {
	case types.SortByUpside:
		return func(a, b types.Company) int { return cmp.Compare(b.Upside, a.Upside) }
	case types.SortByPE:
		return func(a, b types.Company) int { return cmp.Compare(a.PE, b.PE) }
	case types.SortByROE:
		return func(a, b types.Company) int { return cmp.Compare(b.ROE, a.ROE) }
	case types.SortByGrowth:
		return func(a, b types.Company) int { return cmp.Compare(b.Growth, a.Growth) }
	default:
		return func(a, b types.Company) int { return cmp.Compare(b.MCap, a.MCap) }
	}
}

// DeriveCompanyView filters and orders companies for the companies grid.
// The input slice is left untouched; equal keys keep their input order.
func DeriveCompanyView(companies []types.Company, spec types.FilterSpec) []types.Company {
	view := make([]types.Company, 0, len(companies))
	for _, c := range companies {
		if matchesFilter(c, spec) {
			view = append(view, c)
		}
	}
	slices.SortStableFunc(view, comparatorFor(spec.SortKey))
	return view
}
