package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"smart-campus/internal/domain"
	"smart-campus/internal/middleware"
	"smart-campus/internal/service/club"
)

type ClubHandler struct {
	clubService club.Service
}

func NewClubHandler(clubService club.Service) *ClubHandler {
	return &ClubHandler{clubService: clubService}
}

func (h *ClubHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CreateClubInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.clubService.Create(c.Context(), user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *ClubHandler) List(c *fiber.Ctx) error {
	result, err := h.clubService.List(c.Context(), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ClubHandler) Get(c *fiber.Ctx) error {
	clubID, err := uuid.Parse(c.Params("clubId"))
	if err != nil {
		return middleware.BadRequest("Invalid club ID")
	}

	found, err := h.clubService.GetByID(c.Context(), clubID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *ClubHandler) Update(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	clubID, err := uuid.Parse(c.Params("clubId"))
	if err != nil {
		return middleware.BadRequest("Invalid club ID")
	}

	var input domain.UpdateClubInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.clubService.Update(c.Context(), user, clubID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *ClubHandler) Delete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	clubID, err := uuid.Parse(c.Params("clubId"))
	if err != nil {
		return middleware.BadRequest("Invalid club ID")
	}

	if err := h.clubService.Delete(c.Context(), user, clubID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *ClubHandler) Join(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	clubID, err := uuid.Parse(c.Params("clubId"))
	if err != nil {
		return middleware.BadRequest("Invalid club ID")
	}

	if err := h.clubService.Join(c.Context(), user, clubID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Joined club"})
}

func (h *ClubHandler) Leave(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	clubID, err := uuid.Parse(c.Params("clubId"))
	if err != nil {
		return middleware.BadRequest("Invalid club ID")
	}

	if err := h.clubService.Leave(c.Context(), user, clubID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Left club"})
}
