package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/hamagardy/mandoubi-api/internal/application/dto"
	"github.com/hamagardy/mandoubi-api/internal/domain"
)

// Display currencies. Targets and totals are stored in IQD; USD is a
// presentation-time conversion at a fixed rate inside the adapters.
const (
	CurrencyIQD = "IQD"
	CurrencyUSD = "USD"
)

// ExportOptions rendering knobs for the adapters.
type ExportOptions struct {
	Currency string // IQD | USD
	Language string // en | ar | ku
}

// SummaryPDFGenerator renders a summary report to PDF bytes. Implementations
// must not mutate the report.
type SummaryPDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, report *dto.SummaryReport, opts ExportOptions) ([]byte, error)
}

// SummaryWorkbookGenerator renders a summary report to a spreadsheet.
type SummaryWorkbookGenerator interface {
	GenerateSummaryWorkbook(ctx context.Context, report *dto.SummaryReport, opts ExportOptions) ([]byte, error)
}

// ExportUseCase produces the downloadable renditions of the summary.
type ExportUseCase struct {
	reports *ReportUseCase
	pdf     SummaryPDFGenerator
	xlsx    SummaryWorkbookGenerator
}

// NewExportUseCase builds the use case.
func NewExportUseCase(reports *ReportUseCase, pdf SummaryPDFGenerator, xlsx SummaryWorkbookGenerator) *ExportUseCase {
	return &ExportUseCase{reports: reports, pdf: pdf, xlsx: xlsx}
}

func normalizeOptions(opts ExportOptions) (ExportOptions, error) {
	switch opts.Currency {
	case "":
		opts.Currency = CurrencyIQD
	case CurrencyIQD, CurrencyUSD:
	default:
		return opts, domain.ErrValidation
	}
	switch opts.Language {
	case "":
		opts.Language = "en"
	case "en", "ar", "ku":
	default:
		return opts, domain.ErrValidation
	}
	return opts, nil
}

// SummaryPDF builds the current summary for the caller's scope and renders
// it as PDF.
func (uc *ExportUseCase) SummaryPDF(ctx context.Context, callerID, selectedUserID string, now time.Time, opts ExportOptions) ([]byte, error) {
	opts, err := normalizeOptions(opts)
	if err != nil {
		return nil, err
	}
	report, err := uc.reports.Summary(ctx, callerID, selectedUserID, now)
	if err != nil {
		return nil, err
	}
	out, err := uc.pdf.GenerateSummaryPDF(ctx, report, opts)
	if err != nil {
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	return out, nil
}

// SummaryWorkbook builds the current summary and renders it as XLSX.
func (uc *ExportUseCase) SummaryWorkbook(ctx context.Context, callerID, selectedUserID string, now time.Time, opts ExportOptions) ([]byte, error) {
	opts, err := normalizeOptions(opts)
	if err != nil {
		return nil, err
	}
	report, err := uc.reports.Summary(ctx, callerID, selectedUserID, now)
	if err != nil {
		return nil, err
	}
	out, err := uc.xlsx.GenerateSummaryWorkbook(ctx, report, opts)
	if err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}
	return out, nil
}
