package types

// CapCategory buckets companies by market capitalisation.
type CapCategory string

const (
	CapAll   CapCategory = "all"
	CapLarge CapCategory = "large"
	CapMid   CapCategory = "mid"
	CapSmall CapCategory = "small"
)

// SortKey selects the comparator used for the company view.
type SortKey string

const (
	SortByMCap   SortKey = "mcap"
	SortByUpside SortKey = "upside"
	SortByPE     SortKey = "pe"
	SortByROE    SortKey = "roe"
	SortByGrowth SortKey = "growth"
)

// RecommendationAll disables the recommendation filter.
const RecommendationAll Recommendation = "all"

// FilterSpec is the current filter/sort selection of the companies grid.
type FilterSpec struct {
	CapCategory    CapCategory    `json:"capCategory"`
	Recommendation Recommendation `json:"recommendation"`
	SortKey        SortKey        `json:"sortKey"`
}

// DefaultFilter shows every company ordered by market cap.
func DefaultFilter() FilterSpec {
	return FilterSpec{CapCategory: CapAll, Recommendation: RecommendationAll, SortKey: SortByMCap}
}

// Allocation is one slice of the recommended portfolio, in whole percent.
type Allocation struct {
	Name       string `json:"name"`
	Allocation int    `json:"allocation"`
}

// NotAvailable is displayed wherever a value cannot be resolved.
const NotAvailable = "N/A"

// ValuationRow is one line of the valuation table.
type ValuationRow struct {
	Name         string  `json:"name"`
	Ticker       string  `json:"ticker"`
	Price        string  `json:"price"`
	Conservative string  `json:"conservative"`
	BaseCase     string  `json:"baseCase"`
	Aggressive   string  `json:"aggressive"`
	Target       string  `json:"target"`
	Upside       string  `json:"upside"`
	UpsideValue  float64 `json:"upsideValue"`
	DcfAvailable bool    `json:"dcfAvailable"`
}

// RecommendationRow is one line of the recommendations table.
type RecommendationRow struct {
	Name           string         `json:"name"`
	Ticker         string         `json:"ticker"`
	Price          string         `json:"price"`
	Target         string         `json:"target"`
	Recommendation Recommendation `json:"recommendation"`
	StyleKey       string         `json:"styleKey"`
	Upside         string         `json:"upside"`
	UpsideValue    float64        `json:"upsideValue"`
	Risk           Risk           `json:"risk"`
	Rationale      string         `json:"rationale"`
}

// SectorMetrics are unweighted aggregates over every company.
type SectorMetrics struct {
	TotalCompanies int     `json:"total_companies"`
	TotalMarketCap float64 `json:"total_market_cap"`
	AvgPE          float64 `json:"avg_pe"`
	AvgROE         float64 `json:"avg_roe"`
}

// ExportSnapshot is the document written by the export action.
type ExportSnapshot struct {
	ReportDate      string                 `json:"report_date"`
	Analyst         string                 `json:"analyst"`
	Companies       []Company              `json:"companies"`
	Recommendations map[Recommendation]int `json:"recommendations"`
	MarketSegments  []MarketSegment        `json:"market_segments"`
	DcfAnalysis     []DcfScenario          `json:"dcf_analysis"`
	SectorMetrics   SectorMetrics          `json:"sector_metrics"`
}

// ChartDataset is one series of a chart.
type ChartDataset struct {
	Label   string    `json:"label,omitempty"`
	Data    []float64 `json:"data"`
	Colors  []string  `json:"colors,omitempty"`
	Border  string    `json:"border,omitempty"`
	Axis    string    `json:"axis,omitempty"`
	Tension float64   `json:"tension,omitempty"`
}

// ChartSpec is the renderer-agnostic description of a chart widget.
type ChartSpec struct {
	ID        string         `json:"id"`
	Section   string         `json:"section"`
	Kind      string         `json:"kind"`
	Title     string         `json:"title"`
	Labels    []string       `json:"labels"`
	Datasets  []ChartDataset `json:"datasets"`
	Theme     Theme          `json:"theme"`
	TextColor string         `json:"textColor"`
	GridColor string         `json:"gridColor"`
}

// ChartHandle tracks a chart the renderer currently displays.
type ChartHandle struct {
	ID      string `json:"id"`
	Section string `json:"section"`
	Theme   Theme  `json:"theme"`
}

// Dashboard sections, in navigation order.
const (
	SectionExecutiveSummary  = "executive-summary"
	SectionMacroAnalysis     = "macro-analysis"
	SectionIndustryAnalysis  = "industry-analysis"
	SectionCompanyAnalysis   = "company-analysis"
	SectionValuationAnalysis = "valuation-analysis"
	SectionRecommendations   = "recommendations"
)

var Sections = []string{
	SectionExecutiveSummary,
	SectionMacroAnalysis,
	SectionIndustryAnalysis,
	SectionCompanyAnalysis,
	SectionValuationAnalysis,
	SectionRecommendations,
}

// DashboardState is the UI state owned by the dashboard.
type DashboardState struct {
	Filter  FilterSpec             `json:"filter"`
	Theme   Theme                  `json:"theme"`
	Section string                 `json:"section"`
	Charts  map[string]ChartHandle `json:"charts"`
}
