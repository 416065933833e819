package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"smart-campus/internal/domain"
	"smart-campus/internal/middleware"
	"smart-campus/internal/service/permissionrequest"
)

type PermissionRequestHandler struct {
	prService permissionrequest.Service
}

func NewPermissionRequestHandler(prService permissionrequest.Service) *PermissionRequestHandler {
	return &PermissionRequestHandler{prService: prService}
}

func (h *PermissionRequestHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CreatePermissionRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.prService.Submit(c.Context(), user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *PermissionRequestHandler) List(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	result, err := h.prService.List(c.Context(), user, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PermissionRequestHandler) Get(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	req, err := h.prService.GetByID(c.Context(), user, requestID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *PermissionRequestHandler) Approve(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	meta := &permissionrequest.RequestMeta{
		IPAddress: middleware.GetIPAddress(c),
		UserAgent: middleware.GetUserAgent(c),
	}

	req, result, err := h.prService.Approve(c.Context(), user, requestID, meta)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   "Permission request approved",
		"request":   req,
		"provision": result,
	})
}

func (h *PermissionRequestHandler) Reject(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	meta := &permissionrequest.RequestMeta{
		IPAddress: middleware.GetIPAddress(c),
		UserAgent: middleware.GetUserAgent(c),
	}

	req, err := h.prService.Reject(c.Context(), user, requestID, meta)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Permission request rejected",
		"request": req,
	})
}
