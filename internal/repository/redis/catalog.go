package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
	"github.com/VivekRai08/Jain-Foam-website/internal/repository"
)

const (
	keyPattern        = "catalog:*"
	keyProducts       = "catalog:products"
	keyProductPrefix  = "catalog:product:"
	keyCategories     = "catalog:categories"
	keyCategoryPrefix = "catalog:category:"
)

var cacheRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_cache_requests_total",
		Help: "Catalog cache lookups by key kind and result",
	},
	[]string{"kind", "result"},
)

// CatalogCache is a read-through cache in front of the product and category
// repositories. Redis failures are logged and the wrapped repository is used.
type CatalogCache struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	client     *redis.Client
	ttl        time.Duration
	logger     *slog.Logger
}

// NewCatalogCache wraps products and categories with a Redis cache.
func NewCatalogCache(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	client *redis.Client,
	ttl time.Duration,
	logger *slog.Logger,
) *CatalogCache {
	return &CatalogCache{
		products:   products,
		categories: categories,
		client:     client,
		ttl:        ttl,
		logger:     logger,
	}
}

// ListProducts returns the cached product list or loads it.
func (c *CatalogCache) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return readThrough(ctx, c, "products", keyProducts, func() ([]domain.Product, error) {
		return c.products.ListProducts(ctx)
	})
}

// GetProductByID returns the cached product or loads it. Misses are not cached.
func (c *CatalogCache) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	return readThrough(ctx, c, "product", keyProductPrefix+id, func() (*domain.Product, error) {
		return c.products.GetProductByID(ctx, id)
	})
}

// CreateProduct writes through and drops the cached list.
func (c *CatalogCache) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	p, err := c.products.CreateProduct(ctx, input)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, keyProducts)
	return p, nil
}

// ListCategories returns the cached category list or loads it.
func (c *CatalogCache) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return readThrough(ctx, c, "categories", keyCategories, func() ([]domain.Category, error) {
		return c.categories.ListCategories(ctx)
	})
}

// GetCategoryBySlug returns the cached category or loads it.
func (c *CatalogCache) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return readThrough(ctx, c, "category", keyCategoryPrefix+slug, func() (*domain.Category, error) {
		return c.categories.GetCategoryBySlug(ctx, slug)
	})
}

// CreateCategory writes through and drops the cached list.
func (c *CatalogCache) CreateCategory(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
	cat, err := c.categories.CreateCategory(ctx, input)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, keyCategories, keyCategoryPrefix+cat.Slug)
	return cat, nil
}

// Purge drops every catalog key. Call it at startup so entries written by a
// previous process are not served over a freshly loaded store.
func (c *CatalogCache) Purge(ctx context.Context) error {
	var removed int
	iter := c.client.Scan(ctx, 0, keyPattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "catalog cache purged", slog.Int("keys", removed))
	return nil
}

func (c *CatalogCache) invalidate(ctx context.Context, keys ...string) {
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.WarnContext(ctx, "catalog cache invalidation failed",
			slog.Any("keys", keys),
			slog.String("error", err.Error()),
		)
	}
}

func readThrough[T any](ctx context.Context, c *CatalogCache, kind, key string, load func() (T, error)) (T, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		if jsonErr := json.Unmarshal(data, &v); jsonErr == nil {
			cacheRequests.WithLabelValues(kind, "hit").Inc()
			return v, nil
		}
		c.logger.WarnContext(ctx, "discarding unreadable cache entry", slog.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		cacheRequests.WithLabelValues(kind, "error").Inc()
		c.logger.WarnContext(ctx, "catalog cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	cacheRequests.WithLabelValues(kind, "miss").Inc()

	v, err := load()
	if err != nil {
		return v, err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return v, nil
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "catalog cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return v, nil
}
