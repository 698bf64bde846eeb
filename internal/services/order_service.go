package services

import (
	"fmt"
	"log"

	"shop/internal/models"
	"shop/internal/repositories"

	"github.com/shopspring/decimal"
)

// OrderEventPublisher publishes order lifecycle events to a message
// broker. Publishing is best effort: a failure is logged, never surfaced
// to the buyer.
type OrderEventPublisher interface {
	PublishOrderCreated(event map[string]interface{}) error
}

// OrderService implements checkout: it reads the cart, validates stock,
// decrements it, snapshots an order and clears the ordered rows.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	cartRepo    repositories.CartItemRepository
	productRepo repositories.ProductRepository
	publisher   OrderEventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil, in
// which case no events are emitted.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	cartRepo repositories.CartItemRepository,
	productRepo repositories.ProductRepository,
	publisher OrderEventPublisher,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// PlaceOrder turns the user's cart (or the subset named by cartItemIDs)
// into an order.
//
// The read-only validation pass fails fast with the offending product's
// name before anything is written. The commit pass then applies one
// conditional decrement per line: each decrement succeeds only if the
// resulting stock stays non-negative, and if any line fails every
// already-applied decrement is compensated, so two concurrent checkouts
// racing for the same stock can never both drive it past zero. Products
// with null stock are unlimited and never decremented.
func (s *OrderService) PlaceOrder(userID string, cartItemIDs []string) (*models.Order, error) {
	items, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	selected := items
	if len(cartItemIDs) > 0 {
		idSet := make(map[string]struct{}, len(cartItemIDs))
		for _, id := range cartItemIDs {
			idSet[id] = struct{}{}
		}
		selected = make([]models.CartItem, 0, len(items))
		for _, item := range items {
			if _, ok := idSet[item.ID]; ok {
				selected = append(selected, item)
			}
		}
	}
	if len(selected) == 0 {
		return nil, ErrEmptySelection
	}

	// Validation pass: no mutation until every line has been checked.
	products := make(map[string]*models.Product, len(selected))
	for _, item := range selected {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		products[item.ProductID] = product

		if item.Quantity <= 0 || product.Stock == nil {
			continue
		}
		if *product.Stock < item.Quantity {
			return nil, fmt.Errorf("not enough stock for product %q: %w",
				product.Name, repositories.ErrInsufficientStock)
		}
	}

	// Commit pass: conditional decrements with compensation on failure.
	type applied struct {
		productID string
		qty       int
	}
	var decremented []applied
	rollback := func() {
		for _, a := range decremented {
			if err := s.productRepo.IncrementStock(a.productID, a.qty); err != nil {
				log.Printf("Failed to roll back stock for product %s: %v", a.productID, err)
			}
		}
	}

	for _, item := range selected {
		product := products[item.ProductID]
		if item.Quantity <= 0 || product.Stock == nil {
			continue
		}
		if err := s.productRepo.DecrementStock(item.ProductID, item.Quantity); err != nil {
			rollback()
			return nil, fmt.Errorf("not enough stock for product %q: %w",
				product.Name, repositories.ErrInsufficientStock)
		}
		decremented = append(decremented, applied{productID: item.ProductID, qty: item.Quantity})
	}

	total := decimal.Zero
	for _, item := range selected {
		line := products[item.ProductID].Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}

	order := &models.Order{
		UserID:     userID,
		Status:     models.OrderStatusNew,
		TotalPrice: total,
	}
	if err := s.orderRepo.Create(order); err != nil {
		rollback()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	selectedIDs := make([]string, 0, len(selected))
	for _, item := range selected {
		selectedIDs = append(selectedIDs, item.ID)
	}
	if err := s.cartRepo.DeleteByIDs(selectedIDs); err != nil {
		return nil, fmt.Errorf("failed to clear ordered cart rows: %w", err)
	}

	if s.publisher != nil {
		event := map[string]interface{}{
			"orderId": order.ID,
			"userId":  order.UserID,
			"status":  order.Status,
			"total":   order.TotalPrice.String(),
		}
		if err := s.publisher.PublishOrderCreated(event); err != nil {
			log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
		}
	}

	return order, nil
}

// MyOrders returns all orders owned by the user.
func (s *OrderService) MyOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}
