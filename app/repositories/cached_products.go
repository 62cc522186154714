package repositories

import (
	"context"
	"time"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/cache"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/logger"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/metrics"
)

const catalogCacheKey = "catalog:all"

// CachedProducts serves FindAll from Redis and drops the cached list on
// every successful write. Single-product reads go to the backing store.
type CachedProducts struct {
	ProductRepository
	cache *cache.Cache
	ttl   time.Duration
}

// NewCachedProducts wraps next. A nil cache makes it a pass-through.
func NewCachedProducts(next ProductRepository, c *cache.Cache, ttl time.Duration) *CachedProducts {
	return &CachedProducts{ProductRepository: next, cache: c, ttl: ttl}
}

func (r *CachedProducts) FindAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if r.cache.Get(ctx, catalogCacheKey, &products) {
		metrics.CacheHits.Inc()
		return products, nil
	}
	metrics.CacheMisses.Inc()

	products, err := r.ProductRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, catalogCacheKey, products, r.ttl); err != nil {
		logger.Warn("catalog cache set failed", "err", err)
	}
	return products, nil
}

func (r *CachedProducts) Insert(ctx context.Context, p models.Product) error {
	if err := r.ProductRepository.Insert(ctx, p); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedProducts) Update(ctx context.Context, p models.Product) error {
	if err := r.ProductRepository.Update(ctx, p); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedProducts) Delete(ctx context.Context, name string) error {
	if err := r.ProductRepository.Delete(ctx, name); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedProducts) invalidate(ctx context.Context) {
	if err := r.cache.Forget(ctx, catalogCacheKey); err != nil {
		logger.Warn("catalog cache invalidate failed", "err", err)
	}
}
