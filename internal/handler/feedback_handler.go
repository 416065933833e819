package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"smart-campus/internal/domain"
	"smart-campus/internal/middleware"
	"smart-campus/internal/service/feedback"
)

type FeedbackHandler struct {
	fbService feedback.Service
}

func NewFeedbackHandler(fbService feedback.Service) *FeedbackHandler {
	return &FeedbackHandler{fbService: fbService}
}

func (h *FeedbackHandler) Create(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CreateFeedbackInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	fb, err := h.fbService.Submit(c.Context(), user, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fb)
}

func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	result, err := h.fbService.List(c.Context(), getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *FeedbackHandler) Get(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	feedbackID, err := uuid.Parse(c.Params("feedbackId"))
	if err != nil {
		return middleware.BadRequest("Invalid feedback ID")
	}

	fb, err := h.fbService.GetByID(c.Context(), user, feedbackID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fb)
}

func (h *FeedbackHandler) UpdateStatus(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	feedbackID, err := uuid.Parse(c.Params("feedbackId"))
	if err != nil {
		return middleware.BadRequest("Invalid feedback ID")
	}

	var input domain.UpdateFeedbackStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	fb, err := h.fbService.UpdateStatus(c.Context(), user, feedbackID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fb)
}
