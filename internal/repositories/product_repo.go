package repositories

import "shop/internal/models"

// ProductRepository defines the interface for product data access.
//
// DecrementStock is the atomic building block of checkout: it subtracts
// qty from the product's stock only if the result stays non-negative,
// returning ErrInsufficientStock otherwise. Products with null stock are
// never decremented. IncrementStock is the compensating operation used to
// roll back already-applied decrements when a later line fails.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	DecrementStock(id string, qty int) error
	IncrementStock(id string, qty int) error
}
