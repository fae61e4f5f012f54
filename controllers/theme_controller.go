package controllers

import (
	"itsector/services"
	"itsector/types"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ThemeControllerI interface {
	GetTheme(ctx *gin.Context)
	ToggleTheme(ctx *gin.Context)
	TogglePageTheme(ctx *gin.Context)
}

type themeController struct {
	dashboard *services.Dashboard
}

func NewThemeController(dashboard *services.Dashboard) ThemeControllerI {
	return &themeController{dashboard: dashboard}
}

func (t *themeController) GetTheme(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"theme": t.dashboard.State().Theme})
}

func (t *themeController) ToggleTheme(ctx *gin.Context) {
	if err := t.dashboard.Dispatch(ctx.Request.Context(), types.ThemeToggled()); err != nil {
		zap.L().Error("Error toggling theme", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error toggling theme"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"theme": t.dashboard.State().Theme})
}

// TogglePageTheme serves the page's theme button and sends the browser back to the page.
func (t *themeController) TogglePageTheme(ctx *gin.Context) {
	if err := t.dashboard.Dispatch(ctx.Request.Context(), types.ThemeToggled()); err != nil {
		zap.L().Error("Error toggling theme", zap.Error(err))
	}
	ctx.Redirect(http.StatusSeeOther, "/")
}
