package handlers

import (
	"errors"
	"log"

	"shop/internal/models"
	"shop/internal/repositories"
	"shop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminProductHandler handles admin-only catalog mutation. Routes must be
// mounted behind the auth + admin middleware.
type AdminProductHandler struct {
	service *services.ProductService
}

// NewAdminProductHandler creates a new AdminProductHandler.
func NewAdminProductHandler(service *services.ProductService) *AdminProductHandler {
	return &AdminProductHandler{service: service}
}

// RegisterRoutes registers the admin product routes on the given router.
func (h *AdminProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleList)
	productRoutes.Post("/", h.HandleCreate)
	productRoutes.Put("/:id", h.HandleUpdate)
	productRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList returns all products, same scan the public catalog exposes.
func (h *AdminProductHandler) HandleList(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}
	return c.JSON(products)
}

// HandleCreate creates a product from the submitted draft. Limits are
// applied server-side, so out-of-range values are clamped, not rejected.
func (h *AdminProductHandler) HandleCreate(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
		})
	}
	return c.JSON(product)
}

// HandleUpdate replaces a product's fields with the submitted draft.
func (h *AdminProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id := c.Params("id")

	var draft models.Product
	if err := c.BodyParser(&draft); err != nil {
		log.Printf("Error parsing product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	updated, err := h.service.UpdateProduct(id, &draft)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error updating product %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
		})
	}
	return c.JSON(updated)
}

// HandleDelete removes a product unconditionally; cart rows referencing
// it are not checked.
func (h *AdminProductHandler) HandleDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteProduct(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error deleting product %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
		})
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
