package handlers

import (
	"shop/internal/models"
	"shop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// currentUser resolves the authenticated username placed in the request
// context by the auth middleware to the stored user record. A token for a
// user that no longer exists counts as unauthenticated.
func currentUser(c *fiber.Ctx, authService *services.AuthService) (*models.User, error) {
	username, _ := c.Locals("username").(string)
	if username == "" {
		return nil, fiber.ErrUnauthorized
	}
	user, err := authService.GetUserByUsername(username)
	if err != nil {
		return nil, fiber.ErrUnauthorized
	}
	return user, nil
}
