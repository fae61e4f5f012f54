package dataset

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"itsector/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample(t *testing.T) {
	d := Sample()
	assert.Equal(t, 6, d.Len())
	assert.Len(t, d.MarketSegments(), 6)
	assert.Len(t, d.DcfScenarios(), 4)
}

func TestAccessorsReturnCopies(t *testing.T) {
	d := Sample()
	companies := d.Companies()
	companies[0].Name = "changed"

	fresh := d.Companies()
	assert.Equal(t, "Tata Consultancy Services", fresh[0].Name)
	assert.Len(t, fresh, 6)
}

func company(ticker string) types.Company {
	return types.Company{Ticker: ticker, Price: 100, Target: 120, PE: 20, MCap: 60000, Recommendation: types.Buy, Risk: types.RiskLow}
}

func TestNew_RejectsDuplicateTicker(t *testing.T) {
	c := company("TCS")
	_, err := New([]types.Company{c, c}, nil, nil)
	assert.ErrorIs(t, err, ErrDuplicateTicker)
}

func TestNew_RejectsUnknownRecommendation(t *testing.T) {
	c := company("TCS")
	c.Recommendation = "Accumulate"
	_, err := New([]types.Company{c}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidEnum)
}

func TestNew_RejectsUnknownSegmentRisk(t *testing.T) {
	c := company("TCS")
	s := types.MarketSegment{Segment: "BFSI", Risk: "Extreme"}
	_, err := New([]types.Company{c}, []types.MarketSegment{s}, nil)
	assert.ErrorIs(t, err, ErrInvalidEnum)
}

func TestNew_RejectsInvalidCompanyNumbers(t *testing.T) {
	cases := map[string]func(*types.Company){
		"nan price":     func(c *types.Company) { c.Price = math.NaN() },
		"zero target":   func(c *types.Company) { c.Target = 0 },
		"negative pe":   func(c *types.Company) { c.PE = -3 },
		"negative mcap": func(c *types.Company) { c.MCap = -5 },
		"inf roe":       func(c *types.Company) { c.ROE = math.Inf(1) },
		"nan upside":    func(c *types.Company) { c.Upside = math.NaN() },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := company("TCS")
			mutate(&c)
			_, err := New([]types.Company{c}, nil, nil)
			assert.ErrorIs(t, err, ErrInvalidValue)
		})
	}
}

func TestNew_AllowsNegativeUpsideAndGrowth(t *testing.T) {
	c := company("TECHM")
	c.Upside = -11.9
	c.Growth = -2.5
	_, err := New([]types.Company{c}, nil, nil)
	assert.NoError(t, err)
}

func TestNew_RejectsInvalidSegmentAndScenarioNumbers(t *testing.T) {
	c := company("TCS")

	_, err := New([]types.Company{c}, []types.MarketSegment{{Segment: "BFSI", Share: math.NaN(), Risk: types.RiskLow}}, nil)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = New([]types.Company{c}, nil, []types.DcfScenario{{Company: "TCS", Conservative: 1, BaseCase: math.Inf(-1), Aggressive: 3}})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestLoad_YAMLRejectsNaN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	doc := `companies:
  - name: Broken
    ticker: BRK
    price: .nan
    target: 10
    pe: 10
    mcap: -5
    recommendation: Hold
    risk: Low
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestNew_RejectsEmpty(t *testing.T) {
	_, err := New(nil, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	doc := `{
  "companies": [{"name": "Mphasis", "ticker": "MPHASIS", "price": 2500, "target": 2800, "pe": 30, "roe": 18, "growth": 4, "mcap": 47000, "recommendation": "Hold", "upside": 12, "risk": "Medium"}],
  "market_segments": [{"segment": "BFSI", "share": 100, "growth": 8, "risk": "Low"}],
  "dcf_scenarios": [{"company": "MPHASIS", "conservative": 2100, "base_case": 2600, "aggressive": 3000}]
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	d, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, d.Len())
	assert.Equal(t, types.Hold, d.Companies()[0].Recommendation)
	assert.Equal(t, 2600.0, d.DcfScenarios()[0].BaseCase)
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	doc := `companies:
  - name: Coforge
    ticker: COFORGE
    price: 1700
    target: 1900
    pe: 40
    roe: 20
    growth: 9
    mcap: 57000
    recommendation: Buy
    upside: 11.8
    risk: High
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, types.RiskHigh, d.Companies()[0].Risk)
	assert.Empty(t, d.DcfScenarios())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
