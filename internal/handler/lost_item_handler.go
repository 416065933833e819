package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"smart-campus/internal/domain"
	"smart-campus/internal/middleware"
	"smart-campus/internal/service/lostfound"
)

type LostItemHandler struct {
	itemService lostfound.Service
}

func NewLostItemHandler(itemService lostfound.Service) *LostItemHandler {
	return &LostItemHandler{itemService: itemService}
}

func (h *LostItemHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CreateLostItemInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	item, err := h.itemService.Report(c.Context(), user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *LostItemHandler) List(c *fiber.Ctx) error {
	var status *domain.LostItemStatus
	if s := c.Query("status"); s != "" {
		st := domain.LostItemStatus(s)
		status = &st
	}

	result, err := h.itemService.List(c.Context(), status, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *LostItemHandler) Get(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return middleware.BadRequest("Invalid item ID")
	}

	item, err := h.itemService.GetByID(c.Context(), itemID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(item)
}

func (h *LostItemHandler) Update(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return middleware.BadRequest("Invalid item ID")
	}

	var input domain.UpdateLostItemInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	item, err := h.itemService.Update(c.Context(), user, itemID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(item)
}

func (h *LostItemHandler) Delete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return middleware.BadRequest("Invalid item ID")
	}

	if err := h.itemService.Delete(c.Context(), user, itemID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
