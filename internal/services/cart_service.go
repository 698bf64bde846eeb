package services

import (
	"errors"
	"fmt"

	"shop/internal/models"
	"shop/internal/repositories"
)

// CartService handles per-user cart mutation. Stock limits are enforced
// eagerly on every write so a cart never stores more than is currently
// available, but that is advisory only: checkout re-validates against
// live stock.
type CartService struct {
	cartRepo    repositories.CartItemRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartItemRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// GetCart returns all cart rows for the user.
func (s *CartService) GetCart(userID string) ([]models.CartItem, error) {
	return s.cartRepo.GetByUser(userID)
}

// AddToCart adds the requested quantity of a product to the user's cart,
// upserting the single row for that user+product pair. Non-positive
// requests are coerced to 1. The new quantity is clamped to the product's
// stock ceiling; if the ceiling is zero the add is rejected outright.
func (s *CartService) AddToCart(userID, productID string, quantity int) error {
	requested := quantity
	if requested <= 0 {
		requested = 1
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}

	ceiling, finite := product.StockCeiling()
	if finite && ceiling <= 0 {
		return fmt.Errorf("%w: %s", ErrOutOfStock, product.Name)
	}

	item, err := s.cartRepo.GetByUserAndProduct(userID, productID)
	switch {
	case err == nil:
		newQty := item.Quantity + requested
		if finite && newQty > ceiling {
			newQty = ceiling
		}
		item.Quantity = newQty
		return s.cartRepo.Update(item)
	case errors.Is(err, repositories.ErrNotFound):
		newQty := requested
		if finite && newQty > ceiling {
			newQty = ceiling
		}
		createErr := s.cartRepo.Create(&models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  newQty,
		})
		if createErr == nil {
			return nil
		}
		// A concurrent add may have inserted the row between the lookup
		// and the create, tripping the unique index. Fold this add into
		// the winner's row instead of surfacing the violation.
		item, err = s.cartRepo.GetByUserAndProduct(userID, productID)
		if err != nil {
			return createErr
		}
		newQty = item.Quantity + requested
		if finite && newQty > ceiling {
			newQty = ceiling
		}
		item.Quantity = newQty
		return s.cartRepo.Update(item)
	default:
		return err
	}
}

// SetQuantity replaces the quantity of an existing cart row. A
// non-positive quantity deletes the row instead of storing zero; so does
// a stock ceiling that has since dropped to zero. Otherwise the quantity
// is clamped to the ceiling and the row updated.
func (s *CartService) SetQuantity(userID, productID string, quantity int) error {
	item, err := s.cartRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return err
	}

	if quantity <= 0 {
		return s.cartRepo.Delete(item.ID)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}

	ceiling, finite := product.StockCeiling()
	if finite && ceiling <= 0 {
		return s.cartRepo.Delete(item.ID)
	}

	newQty := quantity
	if finite && newQty > ceiling {
		newQty = ceiling
	}
	item.Quantity = newQty
	return s.cartRepo.Update(item)
}

// Remove deletes the user's cart row for a product. Removing an absent
// row succeeds; the operation is idempotent.
func (s *CartService) Remove(userID, productID string) error {
	item, err := s.cartRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.cartRepo.Delete(item.ID)
}
