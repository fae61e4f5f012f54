package controllers

import (
	"bytes"
	"errors"
	"io"
	"itsector/services"
	"itsector/types"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PageRenderer writes the full dashboard page.
type PageRenderer interface {
	SetFilter(spec types.FilterSpec)
	Page(w io.Writer) error
}

type DashboardControllerI interface {
	GetPage(ctx *gin.Context)
	GetCompanies(ctx *gin.Context)
	GetValuation(ctx *gin.Context)
	GetRecommendations(ctx *gin.Context)
	GetPortfolio(ctx *gin.Context)
	GetSegments(ctx *gin.Context)
	GetCharts(ctx *gin.Context)
	GetState(ctx *gin.Context)
	PostEvent(ctx *gin.Context)
}

type dashboardController struct {
	dashboard *services.Dashboard
	page      PageRenderer
}

func NewDashboardController(dashboard *services.Dashboard, page PageRenderer) DashboardControllerI {
	return &dashboardController{dashboard: dashboard, page: page}
}

// GetPage renders the dashboard. The filter form and section links submit
// back here as query parameters, which are dispatched as events first.
func (d *dashboardController) GetPage(ctx *gin.Context) {
	var events []types.DashboardEvent
	if slices.ContainsFunc([]string{"cap", "recommendation", "sortBy"}, hasQuery(ctx)) {
		events = append(events, types.FilterChanged(ctx.Query("cap"), ctx.Query("recommendation"), ctx.Query("sortBy")))
	}
	if section := ctx.Query("section"); section != "" {
		events = append(events, types.NavigationSelected(section))
	}
	for _, event := range events {
		if err := d.dashboard.Dispatch(ctx.Request.Context(), event); err != nil {
			zap.L().Warn("Page event not applied", zap.String("type", string(event.Type)), zap.Error(err))
		}
	}

	d.page.SetFilter(d.dashboard.State().Filter)

	var buf bytes.Buffer
	if err := d.page.Page(&buf); err != nil {
		zap.L().Error("Error rendering dashboard page", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error rendering dashboard"})
		return
	}
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func hasQuery(ctx *gin.Context) func(string) bool {
	return func(key string) bool {
		_, ok := ctx.GetQuery(key)
		return ok
	}
}

// GetCompanies serves the filtered and sorted company view. Missing or
// unknown query values fall back to all/all/mcap.
func (d *dashboardController) GetCompanies(ctx *gin.Context) {
	spec := services.ParseFilterSpec(ctx.Query("cap"), ctx.Query("recommendation"), ctx.Query("sortBy"))
	view := services.DeriveCompanyView(d.dashboard.Dataset().Companies(), spec)

	companies := make([]gin.H, 0, len(view))
	for _, c := range view {
		companies = append(companies, gin.H{
			"name":           c.Name,
			"ticker":         c.Ticker,
			"price":          c.Price,
			"target":         c.Target,
			"pe":             c.PE,
			"roe":            c.ROE,
			"growth":         c.Growth,
			"mcap":           c.MCap,
			"recommendation": c.Recommendation,
			"upside":         c.Upside,
			"risk":           c.Risk,
			"capCategory":    services.CapCategoryOf(c.MCap),
			"styleKey":       services.RecommendationStyleKey(c.Recommendation),
		})
	}
	ctx.JSON(http.StatusOK, gin.H{"filter": spec, "count": len(companies), "companies": companies})
}

func (d *dashboardController) GetValuation(ctx *gin.Context) {
	data := d.dashboard.Dataset()
	ctx.JSON(http.StatusOK, gin.H{"rows": services.ValuationRows(data.Companies(), data.DcfScenarios())})
}

func (d *dashboardController) GetRecommendations(ctx *gin.Context) {
	companies := d.dashboard.Dataset().Companies()
	ctx.JSON(http.StatusOK, gin.H{
		"rows":    services.RecommendationRows(companies),
		"summary": services.RecommendationsSummary(companies),
	})
}

func (d *dashboardController) GetPortfolio(ctx *gin.Context) {
	allocations := services.PortfolioAllocation(d.dashboard.Dataset().Companies())
	total := 0
	for _, a := range allocations {
		total += a.Allocation
	}
	ctx.JSON(http.StatusOK, gin.H{"allocations": allocations, "total": total})
}

func (d *dashboardController) GetSegments(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"segments": d.dashboard.Dataset().MarketSegments()})
}

func (d *dashboardController) GetCharts(ctx *gin.Context) {
	section := ctx.Param("section")
	if !slices.Contains(types.Sections, section) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Unknown section"})
		return
	}

	charts := services.ChartsForSection(section, d.dashboard.State().Theme, d.dashboard.Dataset())
	if charts == nil {
		charts = []types.ChartSpec{}
	}
	ctx.JSON(http.StatusOK, gin.H{"section": section, "charts": charts})
}

func (d *dashboardController) GetState(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, d.dashboard.State())
}

func (d *dashboardController) PostEvent(ctx *gin.Context) {
	var event types.DashboardEvent
	if err := ctx.ShouldBindJSON(&event); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event payload"})
		return
	}

	if err := d.dashboard.Dispatch(ctx.Request.Context(), event); err != nil {
		if errors.Is(err, services.ErrUnknownEvent) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zap.L().Error("Error dispatching dashboard event", zap.Error(err), zap.String("event", string(event.Type)))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error applying event"})
		return
	}
	ctx.JSON(http.StatusOK, d.dashboard.State())
}
