package routes

import (
	"itsector/controllers"

	"github.com/gin-gonic/gin"
)

// Handlers groups the controllers that need runtime dependencies.
type Handlers struct {
	Dashboard controllers.DashboardControllerI
	Theme     controllers.ThemeControllerI
	Export    controllers.ExportControllerI
}

func Routes(r *gin.Engine, h Handlers) {
	r.GET("/", h.Dashboard.GetPage)
	r.POST("/theme", h.Theme.TogglePageTheme)

	v1 := r.Group("/api")

	{
		v1.GET("/health", controllers.HealthController.IsRunning)
		v1.GET("/companies", h.Dashboard.GetCompanies)
		v1.GET("/valuation", h.Dashboard.GetValuation)
		v1.GET("/recommendations", h.Dashboard.GetRecommendations)
		v1.GET("/portfolio", h.Dashboard.GetPortfolio)
		v1.GET("/segments", h.Dashboard.GetSegments)
		v1.GET("/charts/:section", h.Dashboard.GetCharts)
		v1.GET("/state", h.Dashboard.GetState)
		v1.POST("/events", h.Dashboard.PostEvent)
		v1.GET("/theme", h.Theme.GetTheme)
		v1.POST("/theme/toggle", h.Theme.ToggleTheme)
		v1.GET("/export", h.Export.ExportJSON)
		v1.GET("/export.xlsx", h.Export.ExportWorkbook)
	}
}
