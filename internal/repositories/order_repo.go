package repositories

import "shop/internal/models"

// OrderRepository defines the interface for order data access. Orders are
// immutable snapshots: there is no update or delete.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByUser(userID string) ([]models.Order, error)
}
