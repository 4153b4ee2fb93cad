package repository

import (
	"context"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
)

// ProductRepository defines product persistence operations.
type ProductRepository interface {
	// ListProducts returns every product in insertion order.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// GetProductByID returns apperrors.ErrNotFound when id is unknown.
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)

	// CreateProduct stores input under a freshly generated id.
	CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error)
}

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	// ListCategories returns every category in insertion order.
	ListCategories(ctx context.Context) ([]domain.Category, error)

	// GetCategoryBySlug returns apperrors.ErrNotFound when slug is unknown.
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)

	// CreateCategory stores input under a freshly generated id. A slug that
	// is already taken yields apperrors.ErrInvalidInput.
	CreateCategory(ctx context.Context, input domain.CategoryInput) (*domain.Category, error)
}

// InquiryRepository defines contact inquiry persistence operations.
type InquiryRepository interface {
	// CreateContactInquiry stores input with a fresh id and creation time.
	CreateContactInquiry(ctx context.Context, input domain.ContactInquiryInput) (*domain.ContactInquiry, error)

	// GetContactInquiry returns apperrors.ErrNotFound when id is unknown.
	GetContactInquiry(ctx context.Context, id string) (*domain.ContactInquiry, error)

	// CountContactInquiries returns the number of stored inquiries.
	CountContactInquiries(ctx context.Context) (int, error)
}

// Store is the full data store used by the API.
type Store interface {
	ProductRepository
	CategoryRepository
	InquiryRepository
	Ping(ctx context.Context) error
}
