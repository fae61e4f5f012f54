package types

// Recommendation is the analyst verdict attached to a company.
type Recommendation string

const (
	StrongBuy Recommendation = "Strong Buy"
	Buy       Recommendation = "Buy"
	Hold      Recommendation = "Hold"
	Sell      Recommendation = "Sell"
)

// Recommendations lists the closed set in display order.
var Recommendations = []Recommendation{StrongBuy, Buy, Hold, Sell}

func (r Recommendation) Valid() bool {
	switch r {
	case StrongBuy, Buy, Hold, Sell:
		return true
	}
	return false
}

// Risk is the qualitative risk level of a company or segment.
type Risk string

const (
	RiskLow    Risk = "Low"
	RiskMedium Risk = "Medium"
	RiskHigh   Risk = "High"
)

func (r Risk) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// Company represents one listed IT-sector company. MCap is in crores.
type Company struct {
	Name           string         `json:"name" yaml:"name"`
	Ticker         string         `json:"ticker" yaml:"ticker"`
	Price          float64        `json:"price" yaml:"price"`
	Target         float64        `json:"target" yaml:"target"`
	PE             float64        `json:"pe" yaml:"pe"`
	ROE            float64        `json:"roe" yaml:"roe"`
	Growth         float64        `json:"growth" yaml:"growth"`
	MCap           float64        `json:"mcap" yaml:"mcap"`
	Recommendation Recommendation `json:"recommendation" yaml:"recommendation"`
	Upside         float64        `json:"upside" yaml:"upside"`
	Risk           Risk           `json:"risk" yaml:"risk"`
}

// MarketSegment is an industry vertical and its share of sector revenue.
type MarketSegment struct {
	Segment string  `json:"segment" yaml:"segment"`
	Share   float64 `json:"share" yaml:"share"`
	Growth  float64 `json:"growth" yaml:"growth"`
	Risk    Risk    `json:"risk" yaml:"risk"`
}

// DcfScenario holds the precomputed DCF values for one ticker.
type DcfScenario struct {
	Company      string  `json:"company" yaml:"company"`
	Conservative float64 `json:"conservative" yaml:"conservative"`
	BaseCase     float64 `json:"base_case" yaml:"base_case"`
	Aggressive   float64 `json:"aggressive" yaml:"aggressive"`
}

// Theme is the dashboard colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}
