package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/logger"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/metrics"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/storage"
)

// SnapshotDir is the directory holding one snapshot per customer.
const SnapshotDir = "carts"

// SnapshotPath returns the object path of customer's snapshot.
func SnapshotPath(customer string) string {
	return SnapshotDir + "/" + url.PathEscape(customer) + ".csv"
}

// FileCarts implements CartRepository over snapshot files on a disk. Every
// operation is a read/modify/write of the whole file under one mutex.
type FileCarts struct {
	mu   sync.Mutex
	disk storage.Disk
}

func NewFileCarts(disk storage.Disk) *FileCarts {
	return &FileCarts{disk: disk}
}

func (r *FileCarts) load(ctx context.Context, customer string) ([]models.CartItem, error) {
	data, err := r.disk.Get(ctx, SnapshotPath(customer))
	if errors.Is(err, storage.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	items, skipped := DecodeSnapshot(customer, data)
	if skipped > 0 {
		logger.Warn("cart snapshot has malformed lines", "customer", customer, "skipped", skipped)
	}
	return items, nil
}

func (r *FileCarts) save(ctx context.Context, customer string, items []models.CartItem) error {
	if len(items) == 0 {
		return r.disk.Delete(ctx, SnapshotPath(customer))
	}
	data, err := EncodeSnapshot(items)
	if err != nil {
		return err
	}
	return r.disk.Put(ctx, SnapshotPath(customer), data)
}

func (r *FileCarts) FindByCustomer(ctx context.Context, customer string) (_ []models.CartItem, err error) {
	defer metrics.ObserveStoreOp(CartItemsCollection, "find_by_customer", time.Now(), &err)

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx, customer)
	if err != nil {
		return nil, fmt.Errorf("FileCarts.FindByCustomer: %w", err)
	}
	return items, nil
}

func (r *FileCarts) Insert(ctx context.Context, item models.CartItem) (err error) {
	defer metrics.ObserveStoreOp(CartItemsCollection, "insert", time.Now(), &err)

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx, item.CustomerName)
	if err != nil {
		return fmt.Errorf("FileCarts.Insert: %w", err)
	}
	for _, it := range items {
		if it.ProductName == item.ProductName {
			err = ErrDuplicate
			return fmt.Errorf("FileCarts.Insert: %w", err)
		}
	}

	if err = r.save(ctx, item.CustomerName, append(items, item)); err != nil {
		return fmt.Errorf("FileCarts.Insert: %w", err)
	}
	return nil
}

func (r *FileCarts) Update(ctx context.Context, item models.CartItem) (err error) {
	defer metrics.ObserveStoreOp(CartItemsCollection, "update", time.Now(), &err)

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx, item.CustomerName)
	if err != nil {
		return fmt.Errorf("FileCarts.Update: %w", err)
	}

	found := false
	for i := range items {
		if items[i].ProductName == item.ProductName {
			items[i].Quantity = item.Quantity
			found = true
			break
		}
	}
	if !found {
		err = ErrNotFound
		return fmt.Errorf("FileCarts.Update: %w", err)
	}

	if err = r.save(ctx, item.CustomerName, items); err != nil {
		return fmt.Errorf("FileCarts.Update: %w", err)
	}
	return nil
}

func (r *FileCarts) DeleteAllForCustomer(ctx context.Context, customer string) (_ int64, err error) {
	defer metrics.ObserveStoreOp(CartItemsCollection, "delete_all", time.Now(), &err)

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx, customer)
	if err != nil {
		return 0, fmt.Errorf("FileCarts.DeleteAllForCustomer: %w", err)
	}
	if err = r.disk.Delete(ctx, SnapshotPath(customer)); err != nil {
		return 0, fmt.Errorf("FileCarts.DeleteAllForCustomer: %w", err)
	}
	return int64(len(items)), nil
}
