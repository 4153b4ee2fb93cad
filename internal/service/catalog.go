package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
	"github.com/VivekRai08/Jain-Foam-website/internal/repository"
	"github.com/VivekRai08/Jain-Foam-website/pkg/slug"
	"github.com/VivekRai08/Jain-Foam-website/pkg/validator"
)

// CatalogService serves products and categories.
type CatalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	logger     *slog.Logger
}

// NewCatalogService creates a catalog service.
func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
		logger:     logger,
	}
}

// ListProducts returns every product.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetProduct returns one product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// CreateProduct validates and stores a product.
func (s *CatalogService) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}

	product, err := s.products.CreateProduct(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.DebugContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("category", product.Category),
	)
	return product, nil
}

// ListCategories returns every category.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetCategoryBySlug returns one category by slug.
func (s *CatalogService) GetCategoryBySlug(ctx context.Context, categorySlug string) (*domain.Category, error) {
	category, err := s.categories.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

// CreateCategory validates and stores a category, deriving the slug from the
// name when it is empty.
func (s *CatalogService) CreateCategory(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
	if err := validator.Validate(input); err != nil {
		return nil, err
	}
	if input.Slug == "" {
		input.Slug = slug.Generate(input.Name)
	}

	category, err := s.categories.CreateCategory(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.logger.DebugContext(ctx, "category created",
		slog.String("category_id", category.ID),
		slog.String("slug", category.Slug),
	)
	return category, nil
}
