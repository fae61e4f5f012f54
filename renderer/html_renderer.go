package renderer

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"itsector/services"
	"itsector/types"
	"itsector/utils/helpers"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

// ErrMissingElement is returned when the page has no element for a view.
var ErrMissingElement = services.ErrMissingElement

// Element IDs of the page.
const (
	CompaniesGrid       = "companiesGrid"
	ValuationTableBody  = "valuationTableBody"
	RecommendationsBody = "recommendationsTable"
)

var sectionTitles = map[string]string{
	types.SectionExecutiveSummary:  "Executive Summary",
	types.SectionMacroAnalysis:     "Macro Analysis",
	types.SectionIndustryAnalysis:  "Industry Analysis",
	types.SectionCompanyAnalysis:   "Company Analysis",
	types.SectionValuationAnalysis: "Valuation",
	types.SectionRecommendations:   "Recommendations",
}

var sectionCharts = map[string][]string{
	types.SectionMacroAnalysis:     {services.GlobalSpendingChart},
	types.SectionIndustryAnalysis:  {services.MarketSegmentChart},
	types.SectionValuationAnalysis: {services.TargetPriceChart},
	types.SectionRecommendations:   {services.PortfolioChart},
}

type companyCard struct {
	Name, Ticker   string
	Recommendation types.Recommendation
	StyleKey       string
	MCap, PE       string
	ROE, Growth    string
	Price, Target  string
	Upside         string
	UpsideClass    string
	Risk           types.Risk
}

type summaryItem struct {
	Recommendation types.Recommendation
	StyleKey       string
	Count          int
}

type option struct {
	Value, Label string
	Selected     bool
}

type chartSlot struct {
	ID   string
	Spec string
}

type sectionView struct {
	ID, Title string
	Active    bool
	Charts    []chartSlot
}

type pageView struct {
	Theme           types.Theme
	Analyst         string
	Has             map[string]bool
	Sections        []sectionView
	CapOptions      []option
	RecOptions      []option
	SortOptions     []option
	Companies       template.HTML
	Valuation       template.HTML
	Recommendations template.HTML
}

type Option func(*HTMLRenderer)

// WithoutElements removes element IDs from the page, e.g. a trimmed layout.
func WithoutElements(ids ...string) Option {
	return func(r *HTMLRenderer) {
		for _, id := range ids {
			delete(r.elements, id)
		}
	}
}

func WithAnalyst(name string) Option {
	return func(r *HTMLRenderer) { r.analyst = name }
}

// HTMLRenderer keeps the latest rendered fragment for every element and
// assembles them into a single page on demand.
type HTMLRenderer struct {
	mu        sync.RWMutex
	tmpl      *template.Template
	elements  map[string]bool
	analyst   string
	fragments map[string]template.HTML
	charts    map[string]types.ChartSpec
	filter    types.FilterSpec
	theme     types.Theme
	section   string
}

func New(opts ...Option) (*HTMLRenderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"upsideClass": upsideClass,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := &HTMLRenderer{
		tmpl:      tmpl,
		elements:  map[string]bool{CompaniesGrid: true, ValuationTableBody: true, RecommendationsBody: true},
		analyst:   services.DefaultAnalyst,
		fragments: make(map[string]template.HTML),
		charts:    make(map[string]types.ChartSpec),
		filter:    types.DefaultFilter(),
		theme:     types.ThemeLight,
		section:   types.SectionExecutiveSummary,
	}
	for _, section := range types.Sections {
		r.elements[section] = true
		for _, id := range sectionCharts[section] {
			r.elements[id] = true
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func upsideClass(upside float64) string {
	if upside > 0 {
		return "positive"
	}
	return "negative"
}

func (r *HTMLRenderer) require(id string) error {
	if !r.elements[id] {
		return fmt.Errorf("%s: %w", id, ErrMissingElement)
	}
	return nil
}

func (r *HTMLRenderer) renderFragment(id, name string, data any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.require(id); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	r.fragments[id] = template.HTML(buf.String())
	return nil
}

func (r *HTMLRenderer) RenderCompanies(companies []types.Company) error {
	cards := make([]companyCard, 0, len(companies))
	for _, c := range companies {
		cards = append(cards, companyCard{
			Name:           c.Name,
			Ticker:         c.Ticker,
			Recommendation: c.Recommendation,
			StyleKey:       services.RecommendationStyleKey(c.Recommendation),
			MCap:           helpers.FormatCurrency(c.MCap) + " Cr",
			PE:             helpers.FormatRatio(c.PE),
			ROE:            helpers.FormatFixed(c.ROE) + "%",
			Growth:         helpers.FormatFixed(c.Growth) + "%",
			Price:          helpers.FormatCurrency(c.Price),
			Target:         helpers.FormatCurrency(c.Target),
			Upside:         helpers.FormatPercent(c.Upside),
			UpsideClass:    upsideClass(c.Upside),
			Risk:           c.Risk,
		})
	}
	return r.renderFragment(CompaniesGrid, "companies", cards)
}

func (r *HTMLRenderer) RenderValuation(rows []types.ValuationRow) error {
	return r.renderFragment(ValuationTableBody, "valuation", rows)
}

func (r *HTMLRenderer) RenderRecommendations(rows []types.RecommendationRow, summary map[types.Recommendation]int) error {
	items := make([]summaryItem, 0, len(summary))
	for _, rec := range types.Recommendations {
		if n, ok := summary[rec]; ok {
			items = append(items, summaryItem{Recommendation: rec, StyleKey: services.RecommendationStyleKey(rec), Count: n})
		}
	}
	return r.renderFragment(RecommendationsBody, "recommendations", struct {
		Rows    []types.RecommendationRow
		Summary []summaryItem
	}{rows, items})
}

func (r *HTMLRenderer) RenderChart(spec types.ChartSpec) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.require(spec.ID); err != nil {
		return err
	}
	r.charts[spec.ID] = spec
	return nil
}

func (r *HTMLRenderer) DestroyChart(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.require(id); err != nil {
		return err
	}
	delete(r.charts, id)
	return nil
}

func (r *HTMLRenderer) ApplyTheme(theme types.Theme) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.theme = theme
	return nil
}

func (r *HTMLRenderer) ActivateSection(section string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.require(section); err != nil {
		return err
	}
	r.section = section
	return nil
}

// SetFilter marks the options selected in the filter controls.
func (r *HTMLRenderer) SetFilter(spec types.FilterSpec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filter = spec
}

// Page writes the whole dashboard with the latest fragments.
func (r *HTMLRenderer) Page(w io.Writer) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	view := pageView{
		Theme:           r.theme,
		Analyst:         r.analyst,
		Has:             r.elements,
		CapOptions:      capOptions(r.filter.CapCategory),
		RecOptions:      recOptions(r.filter.Recommendation),
		SortOptions:     sortOptions(r.filter.SortKey),
		Companies:       r.fragments[CompaniesGrid],
		Valuation:       r.fragments[ValuationTableBody],
		Recommendations: r.fragments[RecommendationsBody],
	}
	for _, id := range types.Sections {
		if !r.elements[id] {
			continue
		}
		section := sectionView{ID: id, Title: sectionTitles[id], Active: id == r.section}
		for _, chartID := range sectionCharts[id] {
			if !r.elements[chartID] {
				continue
			}
			slot := chartSlot{ID: chartID}
			if spec, ok := r.charts[chartID]; ok {
				body, err := json.Marshal(spec)
				if err != nil {
					return fmt.Errorf("encode chart %s: %w", chartID, err)
				}
				slot.Spec = string(body)
			}
			section.Charts = append(section.Charts, slot)
		}
		view.Sections = append(view.Sections, section)
	}

	return r.tmpl.ExecuteTemplate(w, "page", view)
}

func capOptions(selected types.CapCategory) []option {
	return []option{
		{Value: string(types.CapAll), Label: "All Market Caps", Selected: selected == types.CapAll},
		{Value: string(types.CapLarge), Label: "Large Cap", Selected: selected == types.CapLarge},
		{Value: string(types.CapMid), Label: "Mid Cap", Selected: selected == types.CapMid},
		{Value: string(types.CapSmall), Label: "Small Cap", Selected: selected == types.CapSmall},
	}
}

func recOptions(selected types.Recommendation) []option {
	opts := []option{{Value: string(types.RecommendationAll), Label: "All Recommendations", Selected: selected == types.RecommendationAll}}
	for _, rec := range types.Recommendations {
		opts = append(opts, option{Value: string(rec), Label: string(rec), Selected: selected == rec})
	}
	return opts
}

func sortOptions(selected types.SortKey) []option {
	return []option{
		{Value: string(types.SortByMCap), Label: "Market Cap", Selected: selected == types.SortByMCap},
		{Value: string(types.SortByUpside), Label: "Upside Potential", Selected: selected == types.SortByUpside},
		{Value: string(types.SortByPE), Label: "PE Ratio", Selected: selected == types.SortByPE},
		{Value: string(types.SortByROE), Label: "ROE", Selected: selected == types.SortByROE},
		{Value: string(types.SortByGrowth), Label: "Revenue Growth", Selected: selected == types.SortByGrowth},
	}
}
