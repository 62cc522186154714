// Package seeders fills a fresh store with demo data. Seeders go through the
// repository interfaces, so they work on every store driver.
//
//	func init() {
//	    seeders.Register("products", SeedProducts)
//	}
//
// Run via CLI: store seed
package seeders

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/repositories"
)

// SeederFunc inserts demo rows. It should skip rows that already exist.
type SeederFunc func(ctx context.Context, store *repositories.Store) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder. Call it from init().
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// RunAll executes every registered seeder in registration order and stops
// on the first error.
func RunAll(ctx context.Context, store *repositories.Store, out io.Writer) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	if len(current) == 0 {
		fmt.Fprintln(out, "  (no seeders registered)")
		return nil
	}

	for _, e := range current {
		fmt.Fprintf(out, "  • Running seeder: %s … ", e.name)
		if err := e.fn(ctx, store); err != nil {
			fmt.Fprintln(out, "FAILED")
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
		fmt.Fprintln(out, "done")
	}
	return nil
}
