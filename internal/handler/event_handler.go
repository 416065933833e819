package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"smart-campus/internal/domain"
	"smart-campus/internal/middleware"
	"smart-campus/internal/service/event"
)

type EventHandler struct {
	eventService event.Service
}

func NewEventHandler(eventService event.Service) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CreateEventInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.eventService.Create(c.Context(), user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *EventHandler) List(c *fiber.Ctx) error {
	result, err := h.eventService.List(c.Context(), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *EventHandler) Get(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	found, err := h.eventService.GetByID(c.Context(), eventID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *EventHandler) Update(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	var input domain.UpdateEventInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.eventService.Update(c.Context(), user, eventID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	if err := h.eventService.Delete(c.Context(), user, eventID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *EventHandler) Attend(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	if err := h.eventService.Attend(c.Context(), user, eventID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Attending event"})
}

func (h *EventHandler) Unattend(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	eventID, err := uuid.Parse(c.Params("eventId"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	if err := h.eventService.Unattend(c.Context(), user, eventID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "No longer attending event"})
}
