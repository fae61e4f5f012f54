// Package dataset holds the read-only company, segment and DCF tables the
// dashboard is built from.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"itsector/types"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	ErrDuplicateTicker = errors.New("duplicate ticker")
	ErrInvalidEnum     = errors.New("invalid enum value")
	ErrEmptyDataset    = errors.New("dataset has no companies")
	ErrInvalidValue    = errors.New("invalid numeric value")
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// validateCompany rejects non-finite numbers and non-positive prices, multiples and caps.
func validateCompany(c types.Company) error {
	fields := []struct {
		name     string
		value    float64
		positive bool
	}{
		{"price", c.Price, true},
		{"target", c.Target, true},
		{"pe", c.PE, true},
		{"mcap", c.MCap, true},
		{"roe", c.ROE, false},
		{"growth", c.Growth, false},
		{"upside", c.Upside, false},
	}
	for _, f := range fields {
		if !finite(f.value) || (f.positive && f.value <= 0) {
			return fmt.Errorf("%w: %s %v for %s", ErrInvalidValue, f.name, f.value, c.Ticker)
		}
	}
	return nil
}

// Dataset is immutable once built. Accessors hand out copies.
type Dataset struct {
	companies []types.Company
	segments  []types.MarketSegment
	scenarios []types.DcfScenario
}

type document struct {
	Companies      []types.Company       `json:"companies" yaml:"companies"`
	MarketSegments []types.MarketSegment `json:"market_segments" yaml:"market_segments"`
	DcfScenarios   []types.DcfScenario   `json:"dcf_scenarios" yaml:"dcf_scenarios"`
}

// New validates the tables and returns a dataset owning private copies of them.
func New(companies []types.Company, segments []types.MarketSegment, scenarios []types.DcfScenario) (*Dataset, error) {
	if len(companies) == 0 {
		return nil, ErrEmptyDataset
	}
	seen := make(map[string]struct{}, len(companies))
	for _, c := range companies {
		if _, ok := seen[c.Ticker]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTicker, c.Ticker)
		}
		seen[c.Ticker] = struct{}{}
		if !c.Recommendation.Valid() {
			return nil, fmt.Errorf("%w: recommendation %q for %s", ErrInvalidEnum, c.Recommendation, c.Ticker)
		}
		if !c.Risk.Valid() {
			return nil, fmt.Errorf("%w: risk %q for %s", ErrInvalidEnum, c.Risk, c.Ticker)
		}
		if err := validateCompany(c); err != nil {
			return nil, err
		}
	}
	for _, s := range segments {
		if !s.Risk.Valid() {
			return nil, fmt.Errorf("%w: risk %q for segment %s", ErrInvalidEnum, s.Risk, s.Segment)
		}
		if !finite(s.Share) || !finite(s.Growth) || s.Share < 0 {
			return nil, fmt.Errorf("%w: segment %s", ErrInvalidValue, s.Segment)
		}
	}
	for _, d := range scenarios {
		if !finite(d.Conservative) || !finite(d.BaseCase) || !finite(d.Aggressive) {
			return nil, fmt.Errorf("%w: DCF scenario for %s", ErrInvalidValue, d.Company)
		}
		if _, ok := seen[d.Company]; !ok {
			zap.L().Warn("DCF scenario references unknown ticker", zap.String("ticker", d.Company))
		}
	}

	return &Dataset{
		companies: slices.Clone(companies),
		segments:  slices.Clone(segments),
		scenarios: slices.Clone(scenarios),
	}, nil
}

// Load reads a dataset document from a .json, .yaml or .yml file.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var doc document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	return New(doc.Companies, doc.MarketSegments, doc.DcfScenarios)
}

func (d *Dataset) Companies() []types.Company            { return slices.Clone(d.companies) }
func (d *Dataset) MarketSegments() []types.MarketSegment { return slices.Clone(d.segments) }
func (d *Dataset) DcfScenarios() []types.DcfScenario     { return slices.Clone(d.scenarios) }
func (d *Dataset) Len() int                              { return len(d.companies) }
