package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"itsector/dataset"
	"itsector/types"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultAnalyst   = "Survesh Bajpai"
	reportDateLayout = "2006-01-02"
)

type ExportServiceI interface {
	Snapshot(now time.Time) types.ExportSnapshot
	JSON(now time.Time) ([]byte, string, error)
	Workbook(now time.Time) ([]byte, string, error)
}

type exportService struct {
	data    *dataset.Dataset
	analyst string
}

func NewExportService(data *dataset.Dataset, analyst string) ExportServiceI {
	if analyst == "" {
		analyst = DefaultAnalyst
	}
	return &exportService{data: data, analyst: analyst}
}

// SectorMetricsOf aggregates over every company with unweighted means.
func SectorMetricsOf(companies []types.Company) types.SectorMetrics {
	metrics := types.SectorMetrics{
		TotalCompanies: len(companies),
		TotalMarketCap: totalMarketCap(companies),
	}
	if len(companies) == 0 {
		return metrics
	}

	pe := make([]float64, len(companies))
	roe := make([]float64, len(companies))
	for i, c := range companies {
		pe[i] = c.PE
		roe[i] = c.ROE
	}
	metrics.AvgPE = stat.Mean(pe, nil)
	metrics.AvgROE = stat.Mean(roe, nil)
	return metrics
}

// ExportFileName is the download name for a report generated at now.
func ExportFileName(now time.Time, ext string) string {
	return fmt.Sprintf("IT_Sector_Analysis_%s.%s", now.UTC().Format(reportDateLayout), ext)
}

// BuildSnapshot is a pure function of the dataset and the report date.
func BuildSnapshot(data *dataset.Dataset, analyst string, now time.Time) types.ExportSnapshot {
	companies := data.Companies()
	return types.ExportSnapshot{
		ReportDate:      now.UTC().Format(reportDateLayout),
		Analyst:         analyst,
		Companies:       companies,
		Recommendations: RecommendationsSummary(companies),
		MarketSegments:  data.MarketSegments(),
		DcfAnalysis:     data.DcfScenarios(),
		SectorMetrics:   SectorMetricsOf(companies),
	}
}

func (e *exportService) Snapshot(now time.Time) types.ExportSnapshot {
	return BuildSnapshot(e.data, e.analyst, now)
}

// JSON returns the indented export document and its file name.
func (e *exportService) JSON(now time.Time) ([]byte, string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e.Snapshot(now)); err != nil {
		return nil, "", fmt.Errorf("marshal export: %w", err)
	}
	return buf.Bytes(), ExportFileName(now, "json"), nil
}

// Workbook returns the same snapshot as an XLSX workbook with one sheet per table.
func (e *exportService) Workbook(now time.Time) ([]byte, string, error) {
	snap := e.Snapshot(now)

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			zap.L().Error("Error closing workbook", zap.Error(err))
		}
	}()

	companies := [][]interface{}{{"Name", "Ticker", "Price", "Target", "PE", "ROE", "Growth", "Market Cap (Cr)", "Recommendation", "Upside", "Risk"}}
	for _, c := range snap.Companies {
		companies = append(companies, []interface{}{c.Name, c.Ticker, c.Price, c.Target, c.PE, c.ROE, c.Growth, c.MCap, string(c.Recommendation), c.Upside, string(c.Risk)})
	}

	segments := [][]interface{}{{"Segment", "Share", "Growth", "Risk"}}
	for _, s := range snap.MarketSegments {
		segments = append(segments, []interface{}{s.Segment, s.Share, s.Growth, string(s.Risk)})
	}

	dcf := [][]interface{}{{"Company", "Conservative", "Base Case", "Aggressive"}}
	for _, d := range snap.DcfAnalysis {
		dcf = append(dcf, []interface{}{d.Company, d.Conservative, d.BaseCase, d.Aggressive})
	}

	summary := [][]interface{}{
		{"Report Date", snap.ReportDate},
		{"Analyst", snap.Analyst},
		{"Total Companies", snap.SectorMetrics.TotalCompanies},
		{"Total Market Cap (Cr)", snap.SectorMetrics.TotalMarketCap},
		{"Average PE", snap.SectorMetrics.AvgPE},
		{"Average ROE", snap.SectorMetrics.AvgROE},
	}
	for _, r := range types.Recommendations {
		summary = append(summary, []interface{}{string(r), snap.Recommendations[r]})
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{"Summary", summary},
		{"Companies", companies},
		{"Segments", segments},
		{"DCF", dcf},
	}

	// NewFile starts with "Sheet1"; rename it rather than leave an empty sheet behind.
	if err := f.SetSheetName("Sheet1", sheets[0].name); err != nil {
		return nil, "", fmt.Errorf("rename sheet: %w", err)
	}
	for i, sheet := range sheets {
		if i > 0 {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return nil, "", fmt.Errorf("create sheet %s: %w", sheet.name, err)
			}
		}
		for r, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
				return nil, "", fmt.Errorf("write %s row %d: %w", sheet.name, r+1, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), ExportFileName(now, "xlsx"), nil
}
