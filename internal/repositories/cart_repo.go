package repositories

import "shop/internal/models"

// CartItemRepository defines the interface for cart row data access.
// A user holds at most one row per product; the (user, product) pair is
// unique in every implementation.
type CartItemRepository interface {
	GetByUser(userID string) ([]models.CartItem, error)
	GetByUserAndProduct(userID, productID string) (*models.CartItem, error)
	Create(item *models.CartItem) error
	Update(item *models.CartItem) error
	Delete(id string) error
	DeleteByIDs(ids []string) error
}
