package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindora/wellness/internal/report"
	"github.com/mindora/wellness/internal/services"
	"github.com/mindora/wellness/internal/session"
)

// ReportHandler serves the analytics dashboard and downloadable reports.
type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) Analytics(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	summary, err := h.reportService.Analytics(c.UserContext(), userID, c.Query("range"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// Summary renders the printable HTML report. Personal data is opt-in.
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	return h.render(c, services.FormatHTML, c.Query("includePersonal") == "true")
}

// SummaryCSV renders the spreadsheet-friendly summary. Personal data is opt-in.
func (h *ReportHandler) SummaryCSV(c *fiber.Ctx) error {
	return h.render(c, services.FormatCSV, c.Query("includePersonal") == "true")
}

// Workbook renders the clinical workbook. Personal data is opt-out.
func (h *ReportHandler) Workbook(c *fiber.Ctx) error {
	return h.render(c, services.FormatWorkbook, c.Query("includePersonal") != "false")
}

func (h *ReportHandler) render(c *fiber.Ctx, format string, includePersonal bool) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}
	doc, err := h.reportService.Render(c.UserContext(), userID, format, services.ReportRequest{
		Range:           c.Query("range"),
		IncludePersonal: includePersonal,
	})
	if err != nil {
		return respondError(c, err)
	}
	return sendDocument(c, doc)
}

func sendDocument(c *fiber.Ctx, doc *report.Document) error {
	c.Attachment(doc.Filename)
	c.Set(fiber.HeaderContentType, doc.ContentType)
	return c.Send(doc.Body)
}
