package handler

import (
	"strconv"

	"go-pharmacy-inventory/internal/service"
	"go-pharmacy-inventory/pkg/currency"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStockMovement returns stock movement data for charts
// Query params: days (default 7, max 90)
func (h *DashboardHandler) GetStockMovement(c *fiber.Ctx) error {
	days := service.DefaultMovementDays
	if daysStr := c.Query("days"); daysStr != "" {
		n, err := strconv.Atoi(daysStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "days must be a number"})
		}
		days = n
	}

	data, err := h.service.GetStockMovement(days)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(fiber.Map{
		"data": stats,
		"display": fiber.Map{
			"total_valuation":     currency.FormatIDR(stats.TotalValuation),
			"total_shortage_cost": currency.FormatIDR(stats.TotalShortageCost),
		},
	})
}
