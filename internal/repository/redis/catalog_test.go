package redis

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
	"github.com/VivekRai08/Jain-Foam-website/internal/repository"
	"github.com/VivekRai08/Jain-Foam-website/internal/repository/memory"
	apperrors "github.com/VivekRai08/Jain-Foam-website/pkg/errors"
)

var (
	_ repository.ProductRepository  = (*CatalogCache)(nil)
	_ repository.CategoryRepository = (*CatalogCache)(nil)
)

// countingStore counts reads that reach the wrapped store.
type countingStore struct {
	*memory.Store
	productLists  int
	productGets   int
	categoryLists int
}

func (s *countingStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.productLists++
	return s.Store.ListProducts(ctx)
}

func (s *countingStore) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	s.productGets++
	return s.Store.GetProductByID(ctx, id)
}

func (s *countingStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	s.categoryLists++
	return s.Store.ListCategories(ctx)
}

func setupCache(t *testing.T) (*CatalogCache, *countingStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := &countingStore{Store: memory.NewStore()}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCatalogCache(store, store, client, time.Minute, logger), store, mr
}

func TestListProducts_SecondReadServedFromCache(t *testing.T) {
	ctx := context.Background()
	cache, store, mr := setupCache(t)
	_, err := store.CreateProduct(ctx, domain.ProductInput{Name: "Coir Mattress", Category: "Mattresses"})
	require.NoError(t, err)

	first, err := cache.ListProducts(ctx)
	require.NoError(t, err)
	second, err := cache.ListProducts(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.productLists)
	assert.True(t, mr.Exists(keyProducts))
	assert.Equal(t, time.Minute, mr.TTL(keyProducts))
}

func TestCreateProduct_InvalidatesList(t *testing.T) {
	ctx := context.Background()
	cache, store, mr := setupCache(t)

	_, err := cache.ListProducts(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists(keyProducts))

	_, err = cache.CreateProduct(ctx, domain.ProductInput{Name: "Door Mat"})
	require.NoError(t, err)
	assert.False(t, mr.Exists(keyProducts))

	list, err := cache.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 2, store.productLists)
}

func TestGetProductByID_MissNotCached(t *testing.T) {
	ctx := context.Background()
	cache, store, mr := setupCache(t)

	_, err := cache.GetProductByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.False(t, mr.Exists(keyProductPrefix+"missing"))

	p, err := store.CreateProduct(ctx, domain.ProductInput{Name: "PVC Flooring"})
	require.NoError(t, err)

	_, err = cache.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	got, err := cache.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "PVC Flooring", got.Name)
	assert.Equal(t, 2, store.productGets)
}

func TestCategories_CacheAndDuplicate(t *testing.T) {
	ctx := context.Background()
	cache, store, _ := setupCache(t)

	_, err := cache.CreateCategory(ctx, domain.CategoryInput{Name: "Blinds", Slug: "blinds", Description: "d", Icon: "Minimize2"})
	require.NoError(t, err)

	_, err = cache.ListCategories(ctx)
	require.NoError(t, err)
	list, err := cache.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, store.categoryLists)

	got, err := cache.GetCategoryBySlug(ctx, "blinds")
	require.NoError(t, err)
	assert.Equal(t, "Blinds", got.Name)

	_, err = cache.CreateCategory(ctx, domain.CategoryInput{Name: "Blinds", Slug: "blinds", Description: "d", Icon: "Minimize2"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestRedisDown_FallsThrough(t *testing.T) {
	ctx := context.Background()
	cache, store, mr := setupCache(t)
	_, err := store.CreateProduct(ctx, domain.ProductInput{Name: "Vinyl Flooring"})
	require.NoError(t, err)

	mr.Close()

	list, err := cache.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCorruptEntry_Reloaded(t *testing.T) {
	ctx := context.Background()
	cache, store, mr := setupCache(t)
	require.NoError(t, mr.Set(keyProducts, "{not json"))

	list, err := cache.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 1, store.productLists)
}

func TestPurge_DropsOnlyCatalogKeys(t *testing.T) {
	ctx := context.Background()
	cache, _, mr := setupCache(t)

	require.NoError(t, mr.Set(keyProducts, `[]`))
	require.NoError(t, mr.Set(keyProductPrefix+"p1", `{"id":"p1"}`))
	require.NoError(t, mr.Set(keyCategories, `[]`))
	require.NoError(t, mr.Set("session:abc", "keep"))

	require.NoError(t, cache.Purge(ctx))

	assert.False(t, mr.Exists(keyProducts))
	assert.False(t, mr.Exists(keyProductPrefix+"p1"))
	assert.False(t, mr.Exists(keyCategories))
	assert.True(t, mr.Exists("session:abc"))
}
