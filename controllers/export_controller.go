package controllers

import (
	"fmt"
	"itsector/services"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const exportFailed = "Export failed. Please try again."

type ExportControllerI interface {
	ExportJSON(ctx *gin.Context)
	ExportWorkbook(ctx *gin.Context)
}

type exportController struct {
	exports services.ExportServiceI
	now     func() time.Time
}

func NewExportController(exports services.ExportServiceI, now func() time.Time) ExportControllerI {
	if now == nil {
		now = time.Now
	}
	return &exportController{exports: exports, now: now}
}

func (e *exportController) ExportJSON(ctx *gin.Context) {
	e.export(ctx, "ExportJSON", "application/json", e.exports.JSON)
}

func (e *exportController) ExportWorkbook(ctx *gin.Context) {
	e.export(ctx, "ExportWorkbook", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", e.exports.Workbook)
}

func (e *exportController) export(ctx *gin.Context, name, contentType string, build func(time.Time) ([]byte, string, error)) {
	defer sentry.Recover()

	sentrySpan := sentry.StartSpan(ctx.Request.Context(), name, sentry.WithTransactionName(name))
	defer sentrySpan.Finish()

	reportID := uuid.NewString()
	body, fileName, err := build(e.now())
	if err != nil {
		sentrySpan.Status = sentry.SpanStatusInternalError
		sentry.CaptureException(err)
		zap.L().Error("Error building export", zap.Error(err), zap.String("report_id", reportID))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": exportFailed})
		return
	}

	zap.L().Info("Report exported", zap.String("report_id", reportID), zap.String("file", fileName), zap.Int("bytes", len(body)))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	ctx.Header("X-Report-ID", reportID)
	ctx.Data(http.StatusOK, contentType, body)
}
