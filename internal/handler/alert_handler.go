package handler

import (
	"go-pharmacy-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AlertHandler struct {
	service service.AlertService
}

func NewAlertHandler(s service.AlertService) *AlertHandler {
	return &AlertHandler{service: s}
}

func (h *AlertHandler) GetAlerts(c *fiber.Ctx) error {
	alerts, err := h.service.GetAlerts()
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(alerts)
}
