package repositories

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/collection"
)

// NewMemoryStore returns a Store kept in process memory. It backs the
// "memory" driver and the service tests.
func NewMemoryStore(match models.NameMatch) *Store {
	return &Store{
		Products:  NewMemoryProducts(match),
		Customers: NewMemoryCustomers(match),
		Carts:     NewMemoryCarts(),
	}
}

// MemoryProducts implements ProductRepository.
type MemoryProducts struct {
	mu    sync.RWMutex
	match models.NameMatch
	items []models.Product
}

func NewMemoryProducts(match models.NameMatch) *MemoryProducts {
	return &MemoryProducts{match: match}
}

func (r *MemoryProducts) FindAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Product(nil), r.items...), nil
}

func (r *MemoryProducts) FindByName(_ context.Context, name string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(name); i >= 0 {
		return r.items[i], nil
	}
	return models.Product{}, ErrNotFound
}

func (r *MemoryProducts) Insert(_ context.Context, p models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index(p.Name) >= 0 {
		return ErrDuplicate
	}
	r.items = append(r.items, p.Priced())
	return nil
}

func (r *MemoryProducts) Update(_ context.Context, p models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(p.Name)
	if i < 0 {
		return ErrNotFound
	}
	p.Name = r.items[i].Name
	r.items[i] = p.Priced()
	return nil
}

func (r *MemoryProducts) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(name)
	if i < 0 {
		return ErrNotFound
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

func (r *MemoryProducts) index(name string) int {
	return collection.IndexOf(r.items, func(p models.Product) bool { return r.match.Equal(p.Name, name) })
}

// MemoryCustomers implements CustomerRepository.
type MemoryCustomers struct {
	mu    sync.RWMutex
	match models.NameMatch
	items []models.Customer
}

func NewMemoryCustomers(match models.NameMatch) *MemoryCustomers {
	return &MemoryCustomers{match: match}
}

func (r *MemoryCustomers) FindAll(_ context.Context) ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Customer(nil), r.items...), nil
}

func (r *MemoryCustomers) FindByName(_ context.Context, name string) (models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := collection.First(r.items, func(c models.Customer) bool { return r.match.Equal(c.Name, name) })
	if !ok {
		return models.Customer{}, ErrNotFound
	}
	return c, nil
}

func (r *MemoryCustomers) Insert(_ context.Context, c models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if r.match.Equal(existing.Name, c.Name) {
			return ErrDuplicate
		}
	}
	r.items = append(r.items, c)
	return nil
}

func (r *MemoryCustomers) AddSpend(_ context.Context, name string, amount decimal.Decimal) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].Name == name {
			r.items[i].TotalSpent = r.items[i].TotalSpent.Add(amount)
			return r.items[i].TotalSpent, nil
		}
	}
	return decimal.Zero, ErrNotFound
}

// MemoryCarts implements CartRepository.
type MemoryCarts struct {
	mu    sync.RWMutex
	items []models.CartItem
}

func NewMemoryCarts() *MemoryCarts { return &MemoryCarts{} }

func (r *MemoryCarts) FindByCustomer(_ context.Context, customer string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return collection.Filter(r.items, func(it models.CartItem) bool { return it.CustomerName == customer }), nil
}

func (r *MemoryCarts) Insert(_ context.Context, item models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.CustomerName == item.CustomerName && it.ProductName == item.ProductName {
			return ErrDuplicate
		}
	}
	r.items = append(r.items, item)
	return nil
}

func (r *MemoryCarts) Update(_ context.Context, item models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].CustomerName == item.CustomerName && r.items[i].ProductName == item.ProductName {
			r.items[i].Quantity = item.Quantity
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryCarts) DeleteAllForCustomer(_ context.Context, customer string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0]
	var deleted int64
	for _, it := range r.items {
		if it.CustomerName == customer {
			deleted++
			continue
		}
		kept = append(kept, it)
	}
	r.items = kept
	return deleted, nil
}
