// Package services holds the store's use cases: accounts, catalogue
// management, cart consolidation and checkout. Services depend only on the
// repository interfaces and are constructed once by the kernel.
package services

import "errors"

var (
	ErrEmptySelection     = errors.New("nothing to save: the selection is empty")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrCustomerExists     = errors.New("a customer with that name already exists")
	ErrInvalidCredentials = errors.New("invalid name or password")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrCartNotCleared     = errors.New("payment recorded but the cart could not be cleared")
	ErrSessionClosed      = errors.New("shopping session is closed")
	ErrProductExists      = errors.New("a product with that name already exists")
	ErrProductNotFound    = errors.New("product not found")
)
