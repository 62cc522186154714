// Package repositories holds the persistence boundary of the store: one
// interface per logical collection and one implementation per backend
// (MongoDB, SQL through gorm, in-memory, and the legacy cart snapshot files).
package repositories

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
)

var (
	// ErrNotFound is returned when no record matches the key.
	ErrNotFound = errors.New("repositories: not found")
	// ErrDuplicate is returned when inserting a key that already exists.
	ErrDuplicate = errors.New("repositories: duplicate key")
)

// Collection names shared by every backend.
const (
	CustomersCollection = "Customers"
	ProductsCollection  = "Products"
	CartItemsCollection = "CartItems"
)

// ProductRepository is the catalogue store keyed by product name.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByName(ctx context.Context, name string) (models.Product, error)
	Insert(ctx context.Context, p models.Product) error
	Update(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, name string) error
}

// CustomerRepository is the customer store keyed by name.
type CustomerRepository interface {
	FindAll(ctx context.Context) ([]models.Customer, error)
	FindByName(ctx context.Context, name string) (models.Customer, error)
	Insert(ctx context.Context, c models.Customer) error
	// AddSpend increments the stored spend of the customer whose name equals
	// name exactly and returns the new total.
	AddSpend(ctx context.Context, name string, amount decimal.Decimal) (decimal.Decimal, error)
}

// CartRepository is the cart-row store keyed by (customer, product).
type CartRepository interface {
	FindByCustomer(ctx context.Context, customer string) ([]models.CartItem, error)
	Insert(ctx context.Context, item models.CartItem) error
	// Update writes item.Quantity to the row keyed by item's customer and
	// product names.
	Update(ctx context.Context, item models.CartItem) error
	DeleteAllForCustomer(ctx context.Context, customer string) (int64, error)
}

// Store bundles the three collections. It is built once at startup and
// passed to every component that needs data access.
type Store struct {
	Products  ProductRepository
	Customers CustomerRepository
	Carts     CartRepository

	// Ping checks backend reachability; nil for backends without one.
	Ping func(ctx context.Context) error
}
