// Package pdf renders the sales summary dashboard as a downloadable report.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: title + period         │  generated-at             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: total / target / progress / growth                   │
//	│  HIGHLIGHTS: top product, top customer, rank, streak, day   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: leaderboard (seller | sales | total)                │
//	│  FOOTER: Mandoubi App branding                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/hamagardy/mandoubi-api/internal/application/dto"
	"github.com/hamagardy/mandoubi-api/internal/application/usecase"
	"github.com/hamagardy/mandoubi-api/internal/infrastructure/export"
)

var (
	colorPrimary = &props.Color{Red: 13, Green: 71, Blue: 161}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ usecase.SummaryPDFGenerator = (*MarotoSummaryGenerator)(nil)

// MarotoSummaryGenerator implements SummaryPDFGenerator with Maroto v2.
type MarotoSummaryGenerator struct{}

// NewMarotoSummaryGenerator builds the generator.
func NewMarotoSummaryGenerator() *MarotoSummaryGenerator { return &MarotoSummaryGenerator{} }

// GenerateSummaryPDF renders the report and returns the PDF bytes.
func (g *MarotoSummaryGenerator) GenerateSummaryPDF(_ context.Context, report *dto.SummaryReport, opts usecase.ExportOptions) ([]byte, error) {
	loc := export.NewLocale(opts)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(loc.T("Sales Summary"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report, loc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRows(report, loc)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(highlightRows(report, loc)...)

	if len(report.Leaderboard) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(leaderboardHeaderRow(loc))
		for _, r := range leaderboardRows(report, loc) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: report title and period (left), generation timestamp (right).
func headerRow(report *dto.SummaryReport, loc *export.Locale) core.Row {
	period := fmt.Sprintf("%s %d", time.Month(report.Month+1), report.Year)
	return row.New(16).Add(
		col.New(7).Add(
			text.New(loc.T("Sales Summary"), props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{Size: 10, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(loc.Currency(), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 9,
			}),
		),
	)
}

// kpiRows: the four headline numbers.
func kpiRows(report *dto.SummaryReport, loc *export.Locale) []core.Row {
	return []core.Row{
		kpiRow(loc.T("Total Sales"), loc.Money(report.Total)),
		kpiRow(loc.T("Monthly Target"), loc.Money(report.Target)),
		kpiRow(loc.T("Target Progress"), fmt.Sprintf("%.1f%%", report.TargetProgress)),
		kpiRow(loc.T("Growth"), fmt.Sprintf("%.1f%%", report.MonthlyGrowth)),
	}
}

func kpiRow(label, value string) core.Row {
	return row.New(8).Add(
		col.New(6).Add(text.New(label, props.Text{Size: 9, Color: colorGray, Top: 1})),
		col.New(6).Add(text.New(value, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
		})),
	)
}

func highlightRows(report *dto.SummaryReport, loc *export.Locale) []core.Row {
	rows := []core.Row{}
	if report.TopProduct != "" {
		rows = append(rows, kpiRow(loc.T("Top Product"), report.TopProduct))
	}
	if report.TopCustomer != "" {
		rows = append(rows, kpiRow(loc.T("Top Customer"), report.TopCustomer))
	}
	if report.Rank > 0 {
		rows = append(rows, kpiRow(loc.T("Rank"), fmt.Sprintf("%d / %d", report.Rank, report.TotalUsers)))
	}
	rows = append(rows, kpiRow(loc.T("Streak"), fmt.Sprintf("%d", report.Streak)))
	if report.BestDay != nil {
		value := fmt.Sprintf("%s (%s)", report.BestDay.Date.Format("02/01/2006"), loc.Money(report.BestDay.Total))
		rows = append(rows, kpiRow(loc.T("Best Day"), value))
	}
	return rows
}

func leaderboardHeaderRow(loc *export.Locale) core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}
	return row.New(7).Add(
		col.New(6).Add(text.New(loc.T("Seller"), header)),
		col.New(3).Add(text.New(loc.T("Sales Count"), header)),
		col.New(3).Add(text.New(loc.T("Amount"), props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1, Align: align.Right,
		})),
	)
}

func leaderboardRows(report *dto.SummaryReport, loc *export.Locale) []core.Row {
	rows := make([]core.Row, 0, len(report.Leaderboard))
	for _, e := range report.Leaderboard {
		name := e.Name
		if name == "" {
			name = e.UserID
		}
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(name, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(fmt.Sprintf("%d", e.SalesCount), props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(loc.Money(e.Total), props.Text{Size: 8, Top: 1, Align: align.Right})),
		))
	}
	return rows
}

func footerRow() core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Mandoubi App - @hamagardy", props.Text{
				Size: 7, Align: align.Center, Color: colorGray, Top: 2,
			}),
		),
	)
}
