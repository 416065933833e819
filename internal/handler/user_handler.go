package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"smart-campus/internal/domain"
	"smart-campus/internal/middleware"
	"smart-campus/internal/service/user"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	profile, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.userService.ChangePassword(c.Context(), userID, input.OldPassword, input.NewPassword); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Password changed"})
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	result, err := h.userService.List(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *UserHandler) AssignRole(c *fiber.Ctx) error {
	admin := middleware.GetCurrentUser(c)
	if admin == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	var input domain.AssignRoleInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.userService.AssignRole(c.Context(), admin, userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *UserHandler) SetActive(c *fiber.Ctx) error {
	admin := middleware.GetCurrentUser(c)
	if admin == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	var input struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.userService.SetActive(c.Context(), admin, userID, input.Active); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Account status updated"})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	admin := middleware.GetCurrentUser(c)
	if admin == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.BadRequest("Invalid user ID")
	}

	if err := h.userService.Delete(c.Context(), admin, userID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Account deleted"})
}
