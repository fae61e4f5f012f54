package services

import (
	"context"
	"errors"
	"fmt"
	"itsector/dataset"
	"itsector/types"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	mu        sync.Mutex
	calls     []string
	companies []types.Company
	charts    []types.ChartSpec
	destroyed []string
	theme     types.Theme
	missing   map[string]bool
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{missing: map[string]bool{}}
}

func (f *fakeRenderer) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	if f.missing[call] {
		return fmt.Errorf("%s: %w", call, ErrMissingElement)
	}
	return nil
}

func (f *fakeRenderer) RenderCompanies(companies []types.Company) error {
	f.companies = companies
	return f.record("companies")
}

func (f *fakeRenderer) RenderValuation([]types.ValuationRow) error {
	return f.record("valuation")
}

func (f *fakeRenderer) RenderRecommendations([]types.RecommendationRow, map[types.Recommendation]int) error {
	return f.record("recommendations")
}

func (f *fakeRenderer) RenderChart(spec types.ChartSpec) error {
	if err := f.record("chart:" + spec.ID); err != nil {
		return err
	}
	f.charts = append(f.charts, spec)
	return nil
}

func (f *fakeRenderer) DestroyChart(id string) error {
	f.destroyed = append(f.destroyed, id)
	return f.record("destroy:" + id)
}

func (f *fakeRenderer) ApplyTheme(theme types.Theme) error {
	f.theme = theme
	return f.record("theme")
}

func (f *fakeRenderer) ActivateSection(section string) error {
	return f.record("section:" + section)
}

type recordingSink struct {
	events []types.AuditEvent
	err    error
}

func (r *recordingSink) Publish(_ context.Context, event types.AuditEvent) error {
	r.events = append(r.events, event)
	return r.err
}

func (r *recordingSink) Close() error { return nil }

func newTestDashboard(r Renderer, opts ...DashboardOption) *Dashboard {
	opts = append([]DashboardOption{WithInitDelay(0)}, opts...)
	return NewDashboard(dataset.Sample(), r, NewThemeService(NewMemoryStore()), opts...)
}

func TestDashboard_Init(t *testing.T) {
	r := newFakeRenderer()
	db := newTestDashboard(r)
	require.NoError(t, db.Init(context.Background()))

	assert.Equal(t, []string{"theme", "section:executive-summary", "companies", "valuation", "recommendations"}, r.calls)
	assert.Equal(t, []string{"TCS", "INFY", "HCLTECH", "WIPRO", "LTIM", "TECHM"}, tickers(r.companies))

	state := db.State()
	assert.Equal(t, types.DefaultFilter(), state.Filter)
	assert.Equal(t, types.ThemeLight, state.Theme)
	assert.Empty(t, state.Charts)
}

func TestDashboard_InitHonoursCancellation(t *testing.T) {
	r := newFakeRenderer()
	db := newTestDashboard(r, WithInitDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, db.Init(ctx), context.Canceled)
	assert.Contains(t, r.calls, "companies")
}

func TestDashboard_FilterChanged(t *testing.T) {
	r := newFakeRenderer()
	sink := &recordingSink{}
	db := newTestDashboard(r, WithEventSink(sink))

	require.NoError(t, db.Dispatch(context.Background(), types.FilterChanged("large", "Strong Buy", "upside")))
	assert.Equal(t, []string{"TCS", "WIPRO"}, tickers(r.companies))

	state := db.State()
	assert.Equal(t, types.CapLarge, state.Filter.CapCategory)
	assert.Equal(t, types.SortByUpside, state.Filter.SortKey)

	require.Len(t, sink.events, 1)
	assert.NotEmpty(t, sink.events[0].ID)
	assert.Equal(t, types.EventFilterChanged, sink.events[0].Event.Type)
	assert.Equal(t, state.Filter, sink.events[0].Filter)
}

func TestDashboard_NavigationDrawsChartsOnce(t *testing.T) {
	r := newFakeRenderer()
	db := newTestDashboard(r)
	ctx := context.Background()

	require.NoError(t, db.Dispatch(ctx, types.NavigationSelected(types.SectionRecommendations)))
	require.NoError(t, db.Dispatch(ctx, types.NavigationSelected(types.SectionExecutiveSummary)))
	require.NoError(t, db.Dispatch(ctx, types.NavigationSelected(types.SectionRecommendations)))

	require.Len(t, r.charts, 1)
	assert.Equal(t, PortfolioChart, r.charts[0].ID)

	state := db.State()
	assert.Equal(t, types.SectionRecommendations, state.Section)
	assert.Contains(t, state.Charts, PortfolioChart)
}

func TestDashboard_ThemeToggleRedrawsCharts(t *testing.T) {
	r := newFakeRenderer()
	db := newTestDashboard(r)
	ctx := context.Background()

	require.NoError(t, db.Dispatch(ctx, types.NavigationSelected(types.SectionMacroAnalysis)))
	require.NoError(t, db.Dispatch(ctx, types.ThemeToggled()))

	assert.Equal(t, types.ThemeDark, r.theme)
	assert.Equal(t, []string{GlobalSpendingChart}, r.destroyed)
	require.Len(t, r.charts, 2)
	assert.Equal(t, types.ThemeDark, r.charts[1].Theme)
	assert.Equal(t, types.ThemeDark, db.State().Charts[GlobalSpendingChart].Theme)

	require.NoError(t, db.Dispatch(ctx, types.ThemeToggled()))
	assert.Equal(t, types.ThemeLight, db.State().Theme)
}

func TestDashboard_MissingElementsAreSkipped(t *testing.T) {
	r := newFakeRenderer()
	r.missing["section:nowhere"] = true
	r.missing["chart:"+TargetPriceChart] = true
	db := newTestDashboard(r)
	ctx := context.Background()

	require.NoError(t, db.Dispatch(ctx, types.NavigationSelected("nowhere")))
	assert.Equal(t, types.SectionExecutiveSummary, db.State().Section)

	require.NoError(t, db.Dispatch(ctx, types.NavigationSelected(types.SectionValuationAnalysis)))
	assert.Equal(t, types.SectionValuationAnalysis, db.State().Section)
	assert.Empty(t, db.State().Charts)
}

func TestDashboard_UnknownEvent(t *testing.T) {
	db := newTestDashboard(newFakeRenderer())
	err := db.Dispatch(context.Background(), types.DashboardEvent{Type: "resize"})
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestDashboard_SinkFailureDoesNotFailEvent(t *testing.T) {
	sink := &recordingSink{err: errors.New("broker down")}
	db := newTestDashboard(newFakeRenderer(), WithEventSink(sink))
	assert.NoError(t, db.Dispatch(context.Background(), types.FilterChanged("mid", "all", "pe")))
	assert.Len(t, sink.events, 1)
}

func TestDashboard_StateIsACopy(t *testing.T) {
	db := newTestDashboard(newFakeRenderer())
	require.NoError(t, db.Dispatch(context.Background(), types.NavigationSelected(types.SectionIndustryAnalysis)))

	state := db.State()
	delete(state.Charts, MarketSegmentChart)
	assert.Contains(t, db.State().Charts, MarketSegmentChart)
}

func TestDashboard_ConcurrentDispatch(t *testing.T) {
	db := newTestDashboard(newFakeRenderer())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = db.Dispatch(ctx, types.FilterChanged("all", "all", "roe"))
			} else {
				_ = db.Dispatch(ctx, types.NavigationSelected(types.SectionRecommendations))
			}
		}(i)
	}
	wg.Wait()

	state := db.State()
	assert.Equal(t, types.SortByROE, state.Filter.SortKey)
	assert.Len(t, state.Charts, 1)
}
