package seeders

import (
	"context"
	"errors"
	"runtime"

	"github.com/shopspring/decimal"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/repositories"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/workerpool"
)

func init() {
	Register("customers", SeedCustomers)
	Register("products", SeedProducts)
}

// Hasher turns a demo password into its stored form. The CLI sets it from
// the configured credential scheme.
var Hasher = func(password string) (string, error) { return password, nil }

var demoCustomers = []struct{ name, password string }{
	{"Sara", "123"},
	{"Jimmy", "456"},
	{"Alessia", "789"},
}

var demoProducts = []struct {
	name     string
	price    string
	quantity int
}{
	{"Apple", "12.99", 100},
	{"Banana", "8.50", 120},
	{"Milk", "15.90", 40},
	{"Bread", "24.00", 30},
	{"Cheese", "59.90", 20},
	{"Coffee", "64.50", 25},
}

func SeedCustomers(ctx context.Context, store *repositories.Store) error {
	// Hashing dominates under bcrypt, so it runs on a pool; inserts stay in order.
	stored := make([]string, len(demoCustomers))
	pool := workerpool.New(runtime.NumCPU())
	for i, c := range demoCustomers {
		i, password := i, c.password
		if err := pool.Submit(func() error {
			h, err := Hasher(password)
			stored[i] = h
			return err
		}); err != nil {
			return err
		}
	}
	if err := pool.Wait(); err != nil {
		return err
	}

	for i, c := range demoCustomers {
		err := store.Customers.Insert(ctx, models.Customer{Name: c.name, Password: stored[i], TotalSpent: decimal.Zero})
		if err != nil && !errors.Is(err, repositories.ErrDuplicate) {
			return err
		}
	}
	return nil
}

func SeedProducts(ctx context.Context, store *repositories.Store) error {
	for _, p := range demoProducts {
		err := store.Products.Insert(ctx, models.Product{
			Name:     p.name,
			PriceSEK: decimal.RequireFromString(p.price),
			Quantity: p.quantity,
		})
		if err != nil && !errors.Is(err, repositories.ErrDuplicate) {
			return err
		}
	}
	return nil
}
