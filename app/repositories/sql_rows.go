package repositories

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRow is the gorm model for the customers table.
type CustomerRow struct {
	ID         uint            `gorm:"primaryKey"`
	Name       string          `gorm:"size:100;uniqueIndex;not null"`
	Password   string          `gorm:"size:255;not null"`
	TotalSpent decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (CustomerRow) TableName() string { return "customers" }

// ProductRow is the gorm model for the products table.
type ProductRow struct {
	ID        uint            `gorm:"primaryKey"`
	Name      string          `gorm:"size:100;uniqueIndex;not null"`
	PriceSEK  decimal.Decimal `gorm:"column:price_sek;type:decimal(12,2);not null"`
	PriceEUR  decimal.Decimal `gorm:"column:price_eur;type:decimal(12,2);not null"`
	PriceCHF  decimal.Decimal `gorm:"column:price_chf;type:decimal(12,2);not null"`
	Quantity  int             `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProductRow) TableName() string { return "products" }

// CartItemRow is the gorm model for the cart_items table.
type CartItemRow struct {
	ID           uint            `gorm:"primaryKey"`
	CustomerName string          `gorm:"size:100;not null;uniqueIndex:idx_cart_customer_product"`
	ProductName  string          `gorm:"size:100;not null;uniqueIndex:idx_cart_customer_product"`
	Quantity     int             `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (CartItemRow) TableName() string { return "cart_items" }
