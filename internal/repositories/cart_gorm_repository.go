package repositories

import (
	"errors"
	"fmt"

	"shop/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartItemRepository is a GORM implementation of CartItemRepository.
type GORMCartItemRepository struct {
	db *gorm.DB
}

// NewGORMCartItemRepository creates a new instance of GORMCartItemRepository.
func NewGORMCartItemRepository(db *gorm.DB) *GORMCartItemRepository {
	return &GORMCartItemRepository{db: db}
}

// GetByUser retrieves all cart rows belonging to a user.
func (r *GORMCartItemRepository) GetByUser(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Find(&items, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return items, nil
}

// GetByUserAndProduct retrieves the single cart row for a user+product pair.
func (r *GORMCartItemRepository) GetByUserAndProduct(userID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.First(&item, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item for product %s: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart item for user %s product %s: %w", userID, productID, err)
	}
	return &item, nil
}

// Create inserts a new cart row.
func (r *GORMCartItemRepository) Create(item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// Update saves an existing cart row.
func (r *GORMCartItemRepository) Update(item *models.CartItem) error {
	res := r.db.Save(item)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %s: %w", item.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a cart row by its ID. Deleting an absent row is not an
// error; the remove endpoint is idempotent.
func (r *GORMCartItemRepository) Delete(id string) error {
	if err := r.db.Delete(&models.CartItem{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete cart item %s: %w", id, err)
	}
	return nil
}

// DeleteByIDs removes the given cart rows. Used by checkout to clear
// exactly the ordered rows.
func (r *GORMCartItemRepository) DeleteByIDs(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.Delete(&models.CartItem{}, "id IN ?", ids).Error; err != nil {
		return fmt.Errorf("failed to delete cart items: %w", err)
	}
	return nil
}
