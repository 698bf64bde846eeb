package handlers

import (
	"errors"
	"log"

	"shop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler handles admin image uploads. Routes must be mounted
// behind the auth + admin middleware.
type UploadHandler struct {
	service *services.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(service *services.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// RegisterRoutes registers the upload route on the given router.
func (h *UploadHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/upload-image", h.HandleUpload)
}

// HandleUpload stores the multipart "file" field and returns the URL it
// will be served from.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "File is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save file",
		})
	}
	defer file.Close()

	url, err := h.service.SaveImage(fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		if errors.Is(err, services.ErrEmptyFile) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Empty file",
			})
		}
		log.Printf("Error saving uploaded file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save file",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
