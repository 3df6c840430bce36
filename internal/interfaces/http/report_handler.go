package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hamagardy/mandoubi-api/internal/application/usecase"
)

// ReportHandler handles the dashboard reports and their exports.
type ReportHandler struct {
	reports *usecase.ReportUseCase
	exports *usecase.ExportUseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(reports *usecase.ReportUseCase, exports *usecase.ExportUseCase) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports}
}

// referenceTime resolves the ?year= and ?month= (0-11) query into the
// aggregation reference time. Defaults to now.
func referenceTime(c *fiber.Ctx) time.Time {
	now := time.Now()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month())-1)
	if month < 0 || month > 11 {
		return now
	}
	if year == now.Year() && month == int(now.Month())-1 {
		return now
	}
	return time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
}

// Summary returns the period dashboard for the caller's scope.
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.reports.Summary(c.Context(), GetUserID(c), c.Query("userId"), referenceTime(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Monthly returns the 12-month series and forecast.
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	year := c.QueryInt("year", time.Now().Year())
	out, err := h.reports.Monthly(c.Context(), GetUserID(c), c.Query("userId"), year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// FollowUp returns the customer activity report (admin only). ?recent=true
// keeps the last 30 days.
func (h *ReportHandler) FollowUp(c *fiber.Ctx) error {
	recent := c.QueryBool("recent", false)
	out, err := h.reports.FollowUp(c.Context(), GetUserID(c), recent, time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func exportOptions(c *fiber.Ctx) usecase.ExportOptions {
	return usecase.ExportOptions{
		Currency: c.Query("currency"),
		Language: c.Query("lang"),
	}
}

// SummaryPDF downloads the summary as PDF.
func (h *ReportHandler) SummaryPDF(c *fiber.Ctx) error {
	out, err := h.exports.SummaryPDF(c.Context(), GetUserID(c), c.Query("userId"), referenceTime(c), exportOptions(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=sales-summary-%s.pdf", time.Now().Format("2006-01")))
	return c.Send(out)
}

// SummaryXLSX downloads the summary as a spreadsheet.
func (h *ReportHandler) SummaryXLSX(c *fiber.Ctx) error {
	out, err := h.exports.SummaryWorkbook(c.Context(), GetUserID(c), c.Query("userId"), referenceTime(c), exportOptions(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=sales-summary-%s.xlsx", time.Now().Format("2006-01")))
	return c.Send(out)
}
