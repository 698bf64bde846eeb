package models

import "time"

// CartItem is a single (user, product, quantity) row. At most one row
// exists per user+product pair; quantity is positive once persisted.
// References are kept as plain foreign-key ids and resolved on demand
// through the owning repositories.
//
// Cart rows are disposable and carry no soft delete: a delete must free
// the (user_id, product_id) slot immediately, or the unique index would
// block re-adding a product after it was removed or checked out.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"-" gorm:"type:varchar(36);uniqueIndex:idx_cart_user_product;not null"`
	ProductID string    `json:"productId" gorm:"type:varchar(36);uniqueIndex:idx_cart_user_product;not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
