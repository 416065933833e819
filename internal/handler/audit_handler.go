package handler

import (
	"github.com/gofiber/fiber/v2"

	"smart-campus/internal/service/audit"
)

type AuditHandler struct {
	auditService audit.Service
}

func NewAuditHandler(auditService audit.Service) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) Recent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)

	logs, err := h.auditService.GetRecentActivities(c.Context(), limit)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"activities": logs})
}
