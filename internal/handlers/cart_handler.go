package handlers

import (
	"errors"
	"log"

	"shop/internal/repositories"
	"shop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the authenticated user's cart.
type CartHandler struct {
	cartService *services.CartService
	authService *services.AuthService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService, authService *services.AuthService) *CartHandler {
	return &CartHandler{cartService: cartService, authService: authService}
}

// RegisterRoutes registers the cart routes on the given router, mounting
// the supplied middleware (auth) in front of every route.
func (h *CartHandler) RegisterRoutes(router fiber.Router, mw ...fiber.Handler) {
	cartRoutes := router.Group("/cart", mw...)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/add/:productId", h.HandleAdd)
	cartRoutes.Post("/set/:productId", h.HandleSet)
	cartRoutes.Delete("/remove/:productId", h.HandleRemove)
}

// HandleGetCart returns all of the user's cart rows.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unknown user",
		})
	}

	items, err := h.cartService.GetCart(user.ID)
	if err != nil {
		log.Printf("Error getting cart for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
		})
	}
	return c.JSON(items)
}

// HandleAdd adds a product to the cart. The quantity query parameter
// defaults to 1 when absent.
func (h *CartHandler) HandleAdd(c *fiber.Ctx) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unknown user",
		})
	}

	productID := c.Params("productId")
	quantity := c.QueryInt("quantity", 1)

	if err := h.cartService.AddToCart(user.ID, productID, quantity); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		case errors.Is(err, services.ErrOutOfStock):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Product is out of stock",
			})
		}
		log.Printf("Error adding product %s to cart: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add to cart",
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

// HandleSet replaces the quantity of an existing cart row. A missing or
// non-positive quantity deletes the row.
func (h *CartHandler) HandleSet(c *fiber.Ctx) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unknown user",
		})
	}

	productID := c.Params("productId")
	quantity := c.QueryInt("quantity", 0)

	if err := h.cartService.SetQuantity(user.ID, productID, quantity); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart item not found",
			})
		}
		log.Printf("Error setting quantity for product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart",
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

// HandleRemove deletes the cart row for a product. Idempotent.
func (h *CartHandler) HandleRemove(c *fiber.Ctx) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unknown user",
		})
	}

	productID := c.Params("productId")
	if err := h.cartService.Remove(user.ID, productID); err != nil {
		log.Printf("Error removing product %s from cart: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove from cart",
		})
	}
	return c.SendStatus(fiber.StatusOK)
}
