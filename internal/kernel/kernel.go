// Package kernel builds the store's runtime once at startup: the backend
// selected by STORE_DRIVER, the optional catalog cache and snapshot disk,
// the event bus, and the services the console and CLI drive.
//
// This package is INTERNAL. Commands call Boot and hand the result to the
// console controller:
//
//	k, err := kernel.Boot(ctx)
//	if err != nil { return err }
//	defer k.Close(ctx)
package kernel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/repositories"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/services"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/config"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/cache"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/database"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/event"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/logger"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/metrics"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/storage"
)

const (
	cachePrefix    = "grocerystore:"
	logsCollection = "logs"
)

// Kernel is the wired application.
type Kernel struct {
	Store    *repositories.Store
	Match    models.NameMatch
	Bus      *event.Bus
	Verifier services.CredentialVerifier

	// Backends; nil when not in use.
	Mongo *database.Mongo
	SQL   *gorm.DB
	Cache *cache.Cache
	Disk  storage.Disk

	Accounts *services.AccountService
	Catalog  *services.CatalogService
	Carts    *services.CartService
	Checkout *services.Checkout

	closers []func(context.Context) error
}

// New wires the services over an already built store.
func New(store *repositories.Store, match models.NameMatch, verifier services.CredentialVerifier) *Kernel {
	k := &Kernel{Store: store, Match: match, Bus: event.NewBus()}
	k.wire(verifier)
	return k
}

func (k *Kernel) wire(verifier services.CredentialVerifier) {
	k.Verifier = verifier
	k.Accounts = services.NewAccountService(k.Store.Customers, verifier)
	k.Catalog = services.NewCatalogService(k.Store.Products)
	k.Carts = services.NewCartService(k.Store.Carts, k.Match, k.Bus)
	k.Checkout = services.NewCheckout(k.Store.Customers, k.Store.Carts)
}

// Boot loads configuration and connects every configured backend. Failing to
// reach the store is fatal; an unreachable cache only disables caching.
func Boot(ctx context.Context) (*Kernel, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("kernel: config: %w", err)
	}

	k := &Kernel{
		Match: models.ParseNameMatch(config.NameMatch()),
		Bus:   event.NewBus(),
	}

	if err := k.openStore(ctx); err != nil {
		_ = k.Close(ctx)
		return nil, err
	}

	disk, err := storage.Open(ctx, storage.Config{
		Driver:   config.StorageDefault(),
		Root:     config.StorageLocalRoot(),
		Bucket:   config.StorageS3Bucket(),
		Region:   config.StorageS3Region(),
		Key:      config.StorageS3Key(),
		Secret:   config.StorageS3Secret(),
		Endpoint: config.StorageS3Endpoint(),
	})
	if err != nil {
		_ = k.Close(ctx)
		return nil, fmt.Errorf("kernel: storage: %w", err)
	}
	k.Disk = disk
	if config.CartStore() == "file" {
		k.Store.Carts = repositories.NewFileCarts(disk)
	}

	if addr := config.RedisAddr(); addr != "" {
		c, err := cache.Connect(ctx, addr, config.RedisPassword(), cachePrefix)
		if err != nil {
			logger.Warn("catalog cache disabled", "addr", addr, "err", err)
		} else {
			k.Cache = c
			k.Store.Products = repositories.NewCachedProducts(k.Store.Products, c, config.CatalogCacheTTL())
			k.closers = append(k.closers, func(context.Context) error { return c.Close() })
		}
	}

	k.wire(services.NewVerifier(config.PasswordScheme()))

	logger.Debug("kernel booted",
		"driver", config.StoreDriver(),
		"name_match", string(k.Match),
		"cart_store", config.CartStore(),
		"cache", k.Cache != nil,
	)
	return k, nil
}

func (k *Kernel) openStore(ctx context.Context) error {
	switch config.StoreDriver() {
	case "memory":
		k.Store = repositories.NewMemoryStore(k.Match)

	case "sql":
		db, err := database.OpenSQL(config.DatabaseDriver(), config.DatabaseDSN())
		if err != nil {
			return fmt.Errorf("kernel: %w", err)
		}
		k.SQL = db
		k.Store = repositories.NewSQLStore(db, k.Match)
		k.Store.Ping = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
		k.closers = append(k.closers, func(context.Context) error { return database.CloseSQL(db) })

	default:
		m, err := database.ConnectMongo(ctx, config.MongoURI(), config.MongoDatabase())
		if err != nil {
			return fmt.Errorf("kernel: %w", err)
		}
		k.Mongo = m
		k.Store = repositories.NewMongoStore(m.DB, k.Match)
		k.Store.Ping = m.Ping
		k.closers = append(k.closers, m.Close)

		if err := repositories.EnsureIndexes(ctx, m.DB, k.Match); err != nil {
			logger.Warn("mongo indexes not ensured", "err", err)
		}

		if config.LogMongo() {
			h := logger.NewMongoHandler(m.DB, logsCollection, slog.LevelInfo)
			logger.Use(logger.NewMultiHandler(logger.Handler(), h))
			k.closers = append(k.closers, func(context.Context) error { h.Close(); return nil })
		}
	}
	return nil
}

// Ping reports store health.
func (k *Kernel) Ping(ctx context.Context) error {
	if k.Store == nil || k.Store.Ping == nil {
		return nil
	}
	return k.Store.Ping(ctx)
}

// MetricsServer serves /metrics and /healthz on addr.
func (k *Kernel) MetricsServer(addr string) *http.Server {
	return &http.Server{
		Addr: addr,
		Handler: metrics.Router(func(r *http.Request) error {
			return k.Ping(r.Context())
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Close releases backends in reverse order of opening.
func (k *Kernel) Close(ctx context.Context) error {
	k.Bus.Flush()

	var errs []error
	for i := len(k.closers) - 1; i >= 0; i-- {
		if err := k.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	k.closers = nil
	return errors.Join(errs...)
}
