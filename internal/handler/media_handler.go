package handler

import (
	"github.com/gofiber/fiber/v2"

	"smart-campus/internal/middleware"
	"smart-campus/internal/service/media"
)

type MediaHandler struct {
	mediaService media.Service
}

func NewMediaHandler(mediaService media.Service) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	fileReader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer fileReader.Close()

	result, err := h.mediaService.Upload(c.Context(), userID, file.Filename, file.Size, mimeType, fileReader)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}
