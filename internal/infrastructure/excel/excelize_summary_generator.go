// Package excel renders the sales summary as an XLSX workbook: a KPI sheet
// plus the daily series and the leaderboard.
package excel

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hamagardy/mandoubi-api/internal/application/dto"
	"github.com/hamagardy/mandoubi-api/internal/application/usecase"
	"github.com/hamagardy/mandoubi-api/internal/infrastructure/export"
)

var _ usecase.SummaryWorkbookGenerator = (*ExcelizeSummaryGenerator)(nil)

// ExcelizeSummaryGenerator implements SummaryWorkbookGenerator with excelize.
type ExcelizeSummaryGenerator struct{}

// NewExcelizeSummaryGenerator builds the generator.
func NewExcelizeSummaryGenerator() *ExcelizeSummaryGenerator { return &ExcelizeSummaryGenerator{} }

// GenerateSummaryWorkbook renders the report and returns the XLSX bytes.
func (g *ExcelizeSummaryGenerator) GenerateSummaryWorkbook(_ context.Context, report *dto.SummaryReport, opts usecase.ExportOptions) ([]byte, error) {
	loc := export.NewLocale(opts)

	f := excelize.NewFile()
	defer f.Close()

	summarySheet := loc.T("Sales Summary")
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	if err := writeSummarySheet(f, summarySheet, report, loc); err != nil {
		return nil, err
	}
	if err := writeDailySheet(f, loc.T("Daily Sales"), report, loc); err != nil {
		return nil, err
	}
	if len(report.Leaderboard) > 0 {
		if err := writeLeaderboardSheet(f, loc.T("Leaderboard"), report, loc); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, sheet string, report *dto.SummaryReport, loc *export.Locale) error {
	period := fmt.Sprintf("%s %d", time.Month(report.Month+1), report.Year)
	rows := [][]any{
		{loc.T("Sales Summary"), period},
		{},
		{loc.T("Total Sales"), loc.Money(report.Total)},
		{loc.T("Monthly Target"), loc.Money(report.Target)},
		{loc.T("Target Progress"), fmt.Sprintf("%.1f%%", report.TargetProgress)},
		{loc.T("Previous Month"), loc.Money(report.PreviousTotal)},
		{loc.T("Growth"), fmt.Sprintf("%.1f%%", report.MonthlyGrowth)},
		{loc.T("Top Product"), report.TopProduct},
		{loc.T("Top Customer"), report.TopCustomer},
		{loc.T("Streak"), report.Streak},
	}
	if report.Rank > 0 {
		rows = append(rows, []any{loc.T("Rank"), fmt.Sprintf("%d / %d", report.Rank, report.TotalUsers)})
	}
	if report.BestDay != nil {
		rows = append(rows, []any{loc.T("Best Day"), report.BestDay.Date.Format("2006-01-02"), loc.Money(report.BestDay.Total)})
	}
	return writeRows(f, sheet, rows)
}

func writeDailySheet(f *excelize.File, sheet string, report *dto.SummaryReport, loc *export.Locale) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("xlsx: new sheet: %w", err)
	}
	rows := [][]any{{loc.T("Day"), loc.T("Amount")}}
	for i, total := range report.DailySeries {
		rows = append(rows, []any{i + 1, loc.Money(total)})
	}
	return writeRows(f, sheet, rows)
}

func writeLeaderboardSheet(f *excelize.File, sheet string, report *dto.SummaryReport, loc *export.Locale) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("xlsx: new sheet: %w", err)
	}
	rows := [][]any{{loc.T("Seller"), loc.T("Sales Count"), loc.T("Amount")}}
	for _, e := range report.Leaderboard {
		name := e.Name
		if name == "" {
			name = e.UserID
		}
		rows = append(rows, []any{name, e.SalesCount, loc.Money(e.Total)})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, cells := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("xlsx: cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("xlsx: set row: %w", err)
		}
	}
	return nil
}
