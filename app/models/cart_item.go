package models

import (
	"github.com/shopspring/decimal"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/collection"
)

// CartItem is one persisted cart row. (CustomerName, ProductName) is its key.
type CartItem struct {
	CustomerName string          `json:"customer_name"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

// Total is Price × Quantity in the base currency.
func (c CartItem) Total() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// CartTotal sums the row totals of items.
func CartTotal(items []CartItem) decimal.Decimal {
	return collection.Reduce(items, decimal.Zero, func(sum decimal.Decimal, it CartItem) decimal.Decimal {
		return sum.Add(it.Total())
	})
}
