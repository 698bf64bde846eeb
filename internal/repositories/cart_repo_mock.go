package repositories

import (
	"fmt"
	"sync"

	"shop/internal/models"

	"github.com/google/uuid"
)

// MockCartItemRepository is an in-memory implementation of CartItemRepository.
type MockCartItemRepository struct {
	items map[string]models.CartItem // keyed by row ID
	mu    sync.RWMutex
}

// NewMockCartItemRepository creates a new instance of MockCartItemRepository.
func NewMockCartItemRepository() *MockCartItemRepository {
	return &MockCartItemRepository{items: make(map[string]models.CartItem)}
}

// GetByUser returns all cart rows for a user.
func (r *MockCartItemRepository) GetByUser(userID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []models.CartItem
	for _, item := range r.items {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

// GetByUserAndProduct returns the row for a user+product pair, if any.
func (r *MockCartItemRepository) GetByUserAndProduct(userID, productID string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.UserID == userID && item.ProductID == productID {
			found := item
			return &found, nil
		}
	}
	return nil, fmt.Errorf("cart item for product %s: %w", productID, ErrNotFound)
}

// Create adds a new cart row, enforcing the user+product uniqueness
// invariant the database index provides in the GORM implementation.
func (r *MockCartItemRepository) Create(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			return fmt.Errorf("cart item for user %s product %s already exists", item.UserID, item.ProductID)
		}
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.ID] = *item
	return nil
}

// Update modifies an existing cart row.
func (r *MockCartItemRepository) Update(item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("cart item %s: %w", item.ID, ErrNotFound)
	}
	r.items[item.ID] = *item
	return nil
}

// Delete removes a cart row by ID; absent rows are a no-op.
func (r *MockCartItemRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

// DeleteByIDs removes the given cart rows.
func (r *MockCartItemRepository) DeleteByIDs(ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		delete(r.items, id)
	}
	return nil
}
