package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
	apperrors "github.com/VivekRai08/Jain-Foam-website/pkg/errors"
)

// Store keeps the catalog and inquiries in process memory. Each Store is
// independent; state is lost on restart. Safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	products     map[string]domain.Product
	productOrder []string

	categories    map[string]domain.Category
	categoryOrder []string
	slugs         map[string]string

	inquiries map[string]domain.ContactInquiry

	now func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		products:   make(map[string]domain.Product),
		categories: make(map[string]domain.Category),
		slugs:      make(map[string]string),
		inquiries:  make(map[string]domain.ContactInquiry),
		now:        time.Now,
	}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// ListProducts returns all products in insertion order.
func (s *Store) ListProducts(context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		out = append(out, s.products[id])
	}
	return out, nil
}

// GetProductByID returns the product with id.
func (s *Store) GetProductByID(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	return &p, nil
}

// CreateProduct stores a new product.
func (s *Store) CreateProduct(_ context.Context, input domain.ProductInput) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := domain.Product{
		ID:          s.newID(func(id string) bool { _, ok := s.products[id]; return ok }),
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	s.products[p.ID] = p
	s.productOrder = append(s.productOrder, p.ID)
	return &p, nil
}

// ListCategories returns all categories in insertion order.
func (s *Store) ListCategories(context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Category, 0, len(s.categoryOrder))
	for _, id := range s.categoryOrder {
		out = append(out, s.categories[id])
	}
	return out, nil
}

// GetCategoryBySlug returns the category with slug.
func (s *Store) GetCategoryBySlug(_ context.Context, slug string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.slugs[slug]
	if !ok {
		return nil, apperrors.NotFound("category", slug)
	}
	c := s.categories[id]
	return &c, nil
}

// CreateCategory stores a new category. The slug must be unused.
func (s *Store) CreateCategory(_ context.Context, input domain.CategoryInput) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.slugs[input.Slug]; taken {
		return nil, apperrors.InvalidInput(fmt.Sprintf("category slug %q already exists", input.Slug))
	}

	c := domain.Category{
		ID:          s.newID(func(id string) bool { _, ok := s.categories[id]; return ok }),
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Icon:        input.Icon,
	}
	s.categories[c.ID] = c
	s.categoryOrder = append(s.categoryOrder, c.ID)
	s.slugs[c.Slug] = c.ID
	return &c, nil
}

// CreateContactInquiry stores a new inquiry stamped with the current time.
func (s *Store) CreateContactInquiry(_ context.Context, input domain.ContactInquiryInput) (*domain.ContactInquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inq := domain.ContactInquiry{
		ID:        s.newID(func(id string) bool { _, ok := s.inquiries[id]; return ok }),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Service:   input.Service,
		Message:   input.Message,
		CreatedAt: s.now().UTC(),
	}
	s.inquiries[inq.ID] = inq
	return &inq, nil
}

// GetContactInquiry returns the inquiry with id.
func (s *Store) GetContactInquiry(_ context.Context, id string) (*domain.ContactInquiry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inq, ok := s.inquiries[id]
	if !ok {
		return nil, apperrors.NotFound("inquiry", id)
	}
	return &inq, nil
}

// CountContactInquiries returns the number of stored inquiries.
func (s *Store) CountContactInquiries(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.inquiries), nil
}

// newID returns a UUID not yet used in the collection checked by exists.
// Callers hold the write lock.
func (s *Store) newID(exists func(string) bool) string {
	for {
		id := uuid.New().String()
		if !exists(id) {
			return id
		}
	}
}
