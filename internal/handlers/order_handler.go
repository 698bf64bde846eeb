package handlers

import (
	"errors"
	"log"

	"shop/internal/repositories"
	"shop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles checkout and order history for the authenticated
// user.
type OrderHandler struct {
	orderService *services.OrderService
	authService  *services.AuthService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService, authService *services.AuthService) *OrderHandler {
	return &OrderHandler{orderService: orderService, authService: authService}
}

// RegisterRoutes registers the order routes on the given router, mounting
// the supplied middleware (auth) in front of every route.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, mw ...fiber.Handler) {
	orderRoutes := router.Group("/orders", mw...)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/", h.HandleMyOrders)
}

// CreateOrderRequest optionally narrows checkout to a subset of cart rows.
type CreateOrderRequest struct {
	CartItemIDs []string `json:"cartItemIds"`
}

// HandleCreateOrder places an order from the user's cart, or from the
// selected subset of it. The body is optional; an empty body orders the
// whole cart.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unknown user",
		})
	}

	var req CreateOrderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			log.Printf("Error parsing order request body: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
			})
		}
	}

	order, err := h.orderService.PlaceOrder(user.ID, req.CartItemIDs)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cart is empty",
			})
		case errors.Is(err, services.ErrEmptySelection):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "No cart items selected",
			})
		case errors.Is(err, repositories.ErrInsufficientStock):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		case errors.Is(err, repositories.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error placing order for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not place order",
		})
	}

	return c.JSON(order)
}

// HandleMyOrders returns all orders owned by the user.
func (h *OrderHandler) HandleMyOrders(c *fiber.Ctx) error {
	user, err := currentUser(c, h.authService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unknown user",
		})
	}

	orders, err := h.orderService.MyOrders(user.ID)
	if err != nil {
		log.Printf("Error getting orders for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
		})
	}
	return c.JSON(orders)
}
