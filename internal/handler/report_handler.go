package handler

import (
	"bytes"
	"fmt"

	"go-pharmacy-inventory/internal/export"
	"go-pharmacy-inventory/internal/service"
	"go-pharmacy-inventory/internal/stock"
	"go-pharmacy-inventory/pkg/currency"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetReport renders one report kind.
// Query params: window (today|week|month|all, default all), format (json|csv, default json)
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	kind, err := stock.ParseReportKind(c.Params("kind"))
	if err != nil {
		return sendError(c, err)
	}
	window, err := stock.ParseWindow(c.Query("window"))
	if err != nil {
		return sendError(c, err)
	}

	report, err := h.service.Generate(kind, window)
	if err != nil {
		return sendError(c, err)
	}

	switch c.Query("format", "json") {
	case "json":
		return c.JSON(fiber.Map{
			"data": report,
			"display": fiber.Map{
				"total_valuation":     currency.FormatIDR(report.Summary.TotalValuation),
				"total_shortage_cost": currency.FormatIDR(report.Summary.TotalShortageCost),
				"incoming_amount":     currency.FormatIDR(report.Summary.Transactions.Incoming.Amount),
				"outgoing_amount":     currency.FormatIDR(report.Summary.Transactions.Outgoing.Amount),
			},
		})
	case "csv":
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, report); err != nil {
			return sendError(c, err)
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, export.Filename(kind)))
		return c.Send(buf.Bytes())
	}
	return c.Status(400).JSON(fiber.Map{"error": "format must be json or csv"})
}
