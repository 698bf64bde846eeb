package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalog entry. Stock is nullable: nil (or a
// negative value arriving from outside the admin API) means the product
// is available in unlimited quantity.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"name" gorm:"type:varchar(255)"`
	Description string          `json:"description" gorm:"type:varchar(2000)"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(15,2)"`
	ImageURL    string          `json:"imageUrl" gorm:"type:varchar(512)"`
	Stock       *int            `json:"stock"`
	gorm.Model  `json:"-"`
}

// StockCeiling returns the maximum quantity of this product a cart may
// hold, and whether that ceiling is finite. nil or negative stock means
// no ceiling applies.
func (p *Product) StockCeiling() (int, bool) {
	if p.Stock == nil || *p.Stock < 0 {
		return 0, false
	}
	return *p.Stock, true
}
