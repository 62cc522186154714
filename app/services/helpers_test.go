package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/repositories"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func product(name, price string) models.Product {
	return models.Product{Name: name, PriceSEK: dec(price), Quantity: 100}.Priced()
}

func newStore() *repositories.Store {
	return repositories.NewMemoryStore(models.MatchInsensitive)
}

// mockCarts is a CartRepository driven by testify expectations.
type mockCarts struct {
	mock.Mock
}

func (m *mockCarts) FindByCustomer(ctx context.Context, customer string) ([]models.CartItem, error) {
	args := m.Called(ctx, customer)
	rows, _ := args.Get(0).([]models.CartItem)
	return rows, args.Error(1)
}

func (m *mockCarts) Insert(ctx context.Context, item models.CartItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockCarts) Update(ctx context.Context, item models.CartItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockCarts) DeleteAllForCustomer(ctx context.Context, customer string) (int64, error) {
	args := m.Called(ctx, customer)
	return args.Get(0).(int64), args.Error(1)
}
