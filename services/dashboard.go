package services

import (
	"context"
	"errors"
	"fmt"
	"itsector/dataset"
	"itsector/types"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultInitDelay separates rendering the tables from drawing charts.
const DefaultInitDelay = 100 * time.Millisecond

var (
	// ErrMissingElement is returned by a Renderer that has nowhere to draw.
	ErrMissingElement = errors.New("element not found")
	ErrUnknownEvent   = errors.New("unknown dashboard event")
)

// Renderer is the presentation layer. It only ever sees derived data.
type Renderer interface {
	RenderCompanies(companies []types.Company) error
	RenderValuation(rows []types.ValuationRow) error
	RenderRecommendations(rows []types.RecommendationRow, summary map[types.Recommendation]int) error
	RenderChart(spec types.ChartSpec) error
	DestroyChart(id string) error
	ApplyTheme(theme types.Theme) error
	ActivateSection(section string) error
}

type DashboardOption func(*Dashboard)

func WithInitDelay(d time.Duration) DashboardOption {
	return func(db *Dashboard) { db.initDelay = d }
}

func WithEventSink(sink EventSink) DashboardOption {
	return func(db *Dashboard) {
		if sink != nil {
			db.sink = sink
		}
	}
}

func WithClock(now func() time.Time) DashboardOption {
	return func(db *Dashboard) { db.now = now }
}

// Dashboard owns the UI state and applies events to it one at a time.
type Dashboard struct {
	mu        sync.Mutex
	data      *dataset.Dataset
	renderer  Renderer
	themes    ThemeServiceI
	sink      EventSink
	initDelay time.Duration
	now       func() time.Time
	state     types.DashboardState
}

func NewDashboard(data *dataset.Dataset, renderer Renderer, themes ThemeServiceI, opts ...DashboardOption) *Dashboard {
	db := &Dashboard{
		data:      data,
		renderer:  renderer,
		themes:    themes,
		sink:      NewNoopSink(),
		initDelay: DefaultInitDelay,
		now:       time.Now,
		state: types.DashboardState{
			Filter:  types.DefaultFilter(),
			Theme:   types.ThemeLight,
			Section: types.SectionExecutiveSummary,
			Charts:  make(map[string]types.ChartHandle),
		},
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

func (d *Dashboard) Dataset() *dataset.Dataset { return d.data }

// State returns a copy of the current UI state.
func (d *Dashboard) State() types.DashboardState {
	d.mu.Lock()
	defer d.mu.Unlock()
	state := d.state
	state.Charts = maps.Clone(d.state.Charts)
	return state
}

// Init renders every table, then draws the charts of the active section once
// initDelay has passed.
func (d *Dashboard) Init(ctx context.Context) error {
	d.mu.Lock()
	d.state.Theme = d.themes.Load(ctx)
	d.step("apply theme", d.renderer.ApplyTheme(d.state.Theme))
	d.step("activate section", d.renderer.ActivateSection(d.state.Section))
	d.renderCompanies()
	companies := d.data.Companies()
	d.step("render valuation", d.renderer.RenderValuation(ValuationRows(companies, d.data.DcfScenarios())))
	d.step("render recommendations", d.renderer.RenderRecommendations(RecommendationRows(companies), RecommendationsSummary(companies)))
	d.mu.Unlock()

	return d.afterDelay(ctx, d.initActiveSectionCharts)
}

// Dispatch applies one event. Presentation failures are logged and never
// abort the event.
func (d *Dashboard) Dispatch(ctx context.Context, event types.DashboardEvent) error {
	var redrawCharts bool

	d.mu.Lock()
	switch event.Type {
	case types.EventFilterChanged:
		d.state.Filter = ParseFilterSpec(event.CapCategory, event.Recommendation, event.SortKey)
		d.renderCompanies()
	case types.EventThemeToggled:
		d.state.Theme = d.themes.Toggle(ctx, d.state.Theme)
		d.step("apply theme", d.renderer.ApplyTheme(d.state.Theme))
		for _, id := range slices.Sorted(maps.Keys(d.state.Charts)) {
			d.step("destroy chart", d.renderer.DestroyChart(id))
		}
		clear(d.state.Charts)
		redrawCharts = true
	case types.EventNavigationSelected:
		if d.step("activate section", d.renderer.ActivateSection(event.Section)) {
			d.state.Section = event.Section
			redrawCharts = true
		}
	default:
		d.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event.Type)
	}
	audit := types.AuditEvent{
		ID:        uuid.NewString(),
		Event:     event,
		Filter:    d.state.Filter,
		Theme:     d.state.Theme,
		Section:   d.state.Section,
		Timestamp: d.now().UTC(),
	}
	d.mu.Unlock()

	if err := d.sink.Publish(ctx, audit); err != nil {
		zap.L().Error("Error publishing dashboard event", zap.Error(err), zap.String("event", string(event.Type)))
	}

	if redrawCharts {
		return d.afterDelay(ctx, d.initActiveSectionCharts)
	}
	return nil
}

// Close releases the event sink.
func (d *Dashboard) Close() error {
	return d.sink.Close()
}

func (d *Dashboard) afterDelay(ctx context.Context, fn func()) error {
	if d.initDelay > 0 {
		timer := time.NewTimer(d.initDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
	return nil
}

// initActiveSectionCharts expects d.mu to be held.
func (d *Dashboard) initActiveSectionCharts() {
	for _, spec := range ChartsForSection(d.state.Section, d.state.Theme, d.data) {
		if _, exists := d.state.Charts[spec.ID]; exists {
			continue
		}
		if !d.step("render chart", d.renderer.RenderChart(spec)) {
			continue
		}
		d.state.Charts[spec.ID] = types.ChartHandle{ID: spec.ID, Section: spec.Section, Theme: spec.Theme}
	}
}

func (d *Dashboard) renderCompanies() {
	view := DeriveCompanyView(d.data.Companies(), d.state.Filter)
	d.step("render companies", d.renderer.RenderCompanies(view))
}

// step logs a failed presentation step and reports whether it succeeded.
func (d *Dashboard) step(name string, err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, ErrMissingElement) {
		zap.L().Warn("Dashboard element missing", zap.String("step", name), zap.Error(err))
	} else {
		zap.L().Error("Dashboard step failed", zap.String("step", name), zap.Error(err))
	}
	return false
}
