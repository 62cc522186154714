// Package storage is the blob layer under the cart snapshot files.
//
// Two drivers are available:
//   - "local": a directory on the local filesystem (default)
//   - "s3":    S3-compatible object storage (AWS S3, MinIO, R2)
//
//	disk, _ := storage.Open(ctx, storage.Config{Driver: "local", Root: "storage"})
//	_ = disk.Put(ctx, "carts/Sara.csv", data)
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotExist is returned by Get when path holds no object.
var ErrNotExist = errors.New("storage: object does not exist")

// Disk is the driver interface.
type Disk interface {
	// Put writes content to path, replacing what was there.
	Put(ctx context.Context, path string, content []byte) error

	// Get returns the content at path or an error wrapping ErrNotExist.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether an object exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes path. A missing object is not an error.
	Delete(ctx context.Context, path string) error

	// Files lists object paths directly inside directory.
	Files(ctx context.Context, directory string) ([]string, error)
}

// Config selects and configures a driver.
type Config struct {
	Driver string // "local" or "s3"

	Root string // local

	Bucket   string // s3
	Region   string
	Key      string
	Secret   string
	Endpoint string
}

// Open builds the disk named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Disk, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalDisk(cfg.Root)
	case "s3":
		return NewS3Disk(ctx, cfg)
	default:
		return nil, fmt.Errorf("storage: unknown disk %q (supported: local, s3)", cfg.Driver)
	}
}
