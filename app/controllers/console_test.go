package controllers

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/repositories"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/services"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/event"
)

type fixture struct {
	store *repositories.Store
	svc   Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repositories.NewMemoryStore(models.MatchInsensitive)
	bus := event.NewBus()
	f := &fixture{
		store: store,
		svc: Services{
			Accounts: services.NewAccountService(store.Customers, services.PlainVerifier{}),
			Catalog:  services.NewCatalogService(store.Products),
			Carts:    services.NewCartService(store.Carts, models.MatchInsensitive, bus),
			Checkout: services.NewCheckout(store.Customers, store.Carts),
			Bus:      bus,
		},
	}

	ctx := context.Background()
	_, err := f.svc.Catalog.Add(ctx, models.Product{Name: "Apple", PriceSEK: decimal.RequireFromString("12.50"), Quantity: 10})
	require.NoError(t, err)
	_, err = f.svc.Catalog.Add(ctx, models.Product{Name: "Milk", PriceSEK: decimal.RequireFromString("15.90"), Quantity: 10})
	require.NoError(t, err)
	return f
}

// run feeds lines to a fresh console and returns everything it printed.
func (f *fixture) run(t *testing.T, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, NewConsole(f.svc, in, &out).Run(context.Background()))
	return out.String()
}

func TestConsole_RegisterSaveViewAndPay(t *testing.T) {
	f := newFixture(t)

	out := f.run(t,
		"1", "Sara", "123", // register
		"1", "1 2", "save", // shop: two apples, save
		"3", "1", // view cart, pay
		"2", // account
		"4", // log out
		"4", // exit
	)

	assert.Contains(t, out, "Welcome, Sara! You are now logged in.")
	assert.Contains(t, out, "1. Apple - 12.50 SEK / 1.16 EUR / 1.25 CHF (10 in stock)")
	assert.Contains(t, out, "Apple added to the cart.")
	assert.Contains(t, out, "Apple added to the saved cart.")
	assert.Contains(t, out, "Cart saved for later.")
	assert.Contains(t, out, "Apple x 2 - 25.00 SEK")
	assert.Contains(t, out, "Total: 25.00 SEK / 2.33 EUR / 2.50 CHF")
	assert.Contains(t, out, "Payment of 25.00 SEK successful!")
	assert.Contains(t, out, "Total Spent: 25.00 SEK")
	assert.Contains(t, out, "Membership Status: Regular Member!")
	assert.Contains(t, out, "You have been logged out.")
	assert.Contains(t, out, "Exiting the application...")

	rows, err := f.store.Carts.FindByCustomer(context.Background(), "Sara")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestConsole_PayFromShopping(t *testing.T) {
	f := newFixture(t)

	out := f.run(t,
		"1", "Jimmy", "456",
		"1", "2", "2", "pay", "n", // decline first
		"pay", "y",
		"4", "4",
	)

	assert.Contains(t, out, "Milk quantity increased in the cart.")
	assert.Contains(t, out, "Milk x2 - 31.80 SEK")
	assert.Contains(t, out, "Payment canceled.")
	assert.Contains(t, out, "Total spent for Jimmy is now 31.80 SEK (Regular Member!).")

	c, err := f.store.Customers.FindByName(context.Background(), "Jimmy")
	require.NoError(t, err)
	assert.Equal(t, "31.80", c.TotalSpent.StringFixed(2))
}

func TestConsole_PayForUnknownCustomerReportsOnlyTheError(t *testing.T) {
	f := newFixture(t)
	other := repositories.NewMemoryStore(models.MatchInsensitive)
	f.svc.Checkout = services.NewCheckout(other.Customers, f.store.Carts)

	out := f.run(t, "1", "Sara", "123", "1", "1", "pay", "y", "back", "4", "4")

	assert.Contains(t, out, "Apple x1 - 12.50 SEK")
	assert.Contains(t, out, "Error: customer not found.")
	assert.NotContains(t, out, "nothing to pay")
	assert.NotContains(t, out, "Payment of")
}

func TestConsole_BackDiscardsTheSelection(t *testing.T) {
	f := newFixture(t)

	out := f.run(t,
		"1", "Sara", "123",
		"1", "1 3", "back", // leave without saving
		"1", "pay", "back",
		"4", "4",
	)

	assert.Contains(t, out, "Apple added to the cart.")
	assert.NotContains(t, out, "Apple x3")
	assert.Contains(t, out, "Your cart is empty, nothing to pay.")

	c, err := f.store.Customers.FindByName(context.Background(), "Sara")
	require.NoError(t, err)
	assert.True(t, c.TotalSpent.IsZero())
}

func TestConsole_SaveEmptySelection(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "1", "Alessia", "789", "1", "save", "back", "3", "4", "4")

	assert.Contains(t, out, "Cart is empty, nothing to save.")
	assert.Contains(t, out, "Your cart is empty.")
}

func TestConsole_InvalidShopInput(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, "1", "Sara", "123", "1", "9", "1 0", "banana", "back", "4", "4")

	assert.Equal(t, 2, strings.Count(out, "Invalid input. Please try again."))
	assert.Contains(t, out, "Error: quantity must be at least 1.")
}

func TestConsole_LoginFlows(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Accounts.Register(context.Background(), "Sara", "123")
	require.NoError(t, err)

	out := f.run(t,
		"2", "Sara", "wrong", "y", " Sara ", " 123 ",
		"4",
		"2", "Nobody", "x", "n",
		"1", "Sara", "abc", // duplicate registration
		"4",
	)

	assert.Contains(t, out, "Password incorrect.")
	assert.Contains(t, out, "Welcome back, Sara!")
	assert.Contains(t, out, `Customer "Nobody" does not exist.`)
	assert.Contains(t, out, "Username already exists.")
}

func TestConsole_Inventory(t *testing.T) {
	f := newFixture(t)

	out := f.run(t,
		"3",
		"2", "Bread", "24", "30", // add
		"2", "Bread", "24", "30", // duplicate
		"2", "Cake", "abc", "1", // bad price
		"3", "Bread", "26.50", "12", // update
		"4", "Milk", "y", // delete
		"1", // list
		"5",
		"4",
	)

	assert.Contains(t, out, "Bread added at 24.00 SEK / 2.23 EUR / 2.40 CHF.")
	assert.Contains(t, out, "Error: a product with that name already exists.")
	assert.Contains(t, out, "Bread updated: 26.50 SEK, 12 in stock.")
	assert.Contains(t, out, "Milk deleted.")
	assert.Contains(t, out, "2. Bread - 26.50 SEK")
	assert.NotContains(t, out, ". Milk - ")

	_, err := f.store.Products.FindByName(context.Background(), "Cake")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestConsole_EndOfInputExits(t *testing.T) {
	f := newFixture(t)
	var out bytes.Buffer
	err := NewConsole(f.svc, strings.NewReader("1\nSara\n"), &out).Run(context.Background())
	assert.NoError(t, err)
}

func TestPickProduct(t *testing.T) {
	ps := []models.Product{{Name: "Apple"}, {Name: "Milk"}}

	p, qty, ok := pickProduct(ps, "2")
	assert.True(t, ok)
	assert.Equal(t, "Milk", p.Name)
	assert.Equal(t, 1, qty)

	p, qty, ok = pickProduct(ps, "1 3")
	assert.True(t, ok)
	assert.Equal(t, "Apple", p.Name)
	assert.Equal(t, 3, qty)

	for _, in := range []string{"", "0", "3", "x", "1 x", "1 2 3"} {
		_, _, ok := pickProduct(ps, in)
		assert.False(t, ok, in)
	}
}
