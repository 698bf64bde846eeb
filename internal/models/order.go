package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusNew is the status every order is created with. No further
// transitions are defined; treat the field as an extensible enum.
const OrderStatusNew = "NEW"

// Order is a frozen snapshot taken at checkout. TotalPrice is the sum of
// line totals at the moment of creation and is never recomputed.
type Order struct {
	ID         string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string          `json:"userId" gorm:"type:varchar(36);index;not null"`
	Status     string          `json:"status" gorm:"type:varchar(32);not null"`
	TotalPrice decimal.Decimal `json:"totalPrice" gorm:"type:decimal(15,2)"`
	CreatedAt  time.Time       `json:"createdAt"`
}
