package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
	"github.com/VivekRai08/Jain-Foam-website/pkg/database"
	apperrors "github.com/VivekRai08/Jain-Foam-website/pkg/errors"
)

// Pool is what the store needs from *pgxpool.Pool.
type Pool interface {
	database.DBTX
	database.Pinger
}

// Store implements repository.Store on PostgreSQL.
type Store struct {
	pool Pool
	now  func() time.Time
}

// NewStore creates a PostgreSQL-backed store. Run migrations.FS first.
func NewStore(pool Pool) *Store {
	return &Store{pool: pool, now: time.Now}
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

const productColumns = `id, name, category, description, image_url`

// ListProducts returns all products in insertion order.
func (s *Store) ListProducts(ctx context.Context) (products []domain.Product, err error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY position`
	ctx, end := database.TraceQuery(ctx, "ListProducts", query)
	defer func() { end(err) }()

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products = make([]domain.Product, 0)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// GetProductByID returns the product with id.
func (s *Store) GetProductByID(ctx context.Context, id string) (_ *domain.Product, err error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	ctx, end := database.TraceQuery(ctx, "GetProductByID", query)
	defer func() { end(err) }()

	var p domain.Product
	err = s.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return &p, nil
}

// CreateProduct inserts a new product.
func (s *Store) CreateProduct(ctx context.Context, input domain.ProductInput) (_ *domain.Product, err error) {
	query := `INSERT INTO products (id, name, category, description, image_url) VALUES ($1, $2, $3, $4, $5)`
	ctx, end := database.TraceQuery(ctx, "CreateProduct", query)
	defer func() { end(err) }()

	p := domain.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Category:    input.Category,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if _, err = s.pool.Exec(ctx, query, p.ID, p.Name, p.Category, p.Description, p.ImageURL); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &p, nil
}

const categoryColumns = `id, name, slug, description, icon`

// ListCategories returns all categories in insertion order.
func (s *Store) ListCategories(ctx context.Context) (categories []domain.Category, err error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY position`
	ctx, end := database.TraceQuery(ctx, "ListCategories", query)
	defer func() { end(err) }()

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories = make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Icon); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// GetCategoryBySlug returns the category with slug.
func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (_ *domain.Category, err error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1`
	ctx, end := database.TraceQuery(ctx, "GetCategoryBySlug", query)
	defer func() { end(err) }()

	var c domain.Category
	err = s.pool.QueryRow(ctx, query, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Icon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("category", slug)
		}
		return nil, fmt.Errorf("get category %s: %w", slug, err)
	}
	return &c, nil
}

// CreateCategory inserts a new category. A taken slug is rejected.
func (s *Store) CreateCategory(ctx context.Context, input domain.CategoryInput) (_ *domain.Category, err error) {
	query := `INSERT INTO categories (id, name, slug, description, icon) VALUES ($1, $2, $3, $4, $5)`
	ctx, end := database.TraceQuery(ctx, "CreateCategory", query)
	defer func() { end(err) }()

	c := domain.Category{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Icon:        input.Icon,
	}
	if _, err = s.pool.Exec(ctx, query, c.ID, c.Name, c.Slug, c.Description, c.Icon); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("category slug %q already exists", c.Slug))
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return &c, nil
}

const inquiryColumns = `id, name, email, phone, service, message, created_at`

// CreateContactInquiry inserts a new inquiry.
func (s *Store) CreateContactInquiry(ctx context.Context, input domain.ContactInquiryInput) (_ *domain.ContactInquiry, err error) {
	query := `INSERT INTO contact_inquiries (` + inquiryColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	ctx, end := database.TraceQuery(ctx, "CreateContactInquiry", query)
	defer func() { end(err) }()

	inq := domain.ContactInquiry{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Service:   input.Service,
		Message:   input.Message,
		CreatedAt: s.now().UTC(),
	}
	_, err = s.pool.Exec(ctx, query, inq.ID, inq.Name, inq.Email, inq.Phone, inq.Service, inq.Message, inq.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert contact inquiry: %w", err)
	}
	return &inq, nil
}

// GetContactInquiry returns the inquiry with id.
func (s *Store) GetContactInquiry(ctx context.Context, id string) (_ *domain.ContactInquiry, err error) {
	query := `SELECT ` + inquiryColumns + ` FROM contact_inquiries WHERE id = $1`
	ctx, end := database.TraceQuery(ctx, "GetContactInquiry", query)
	defer func() { end(err) }()

	var inq domain.ContactInquiry
	err = s.pool.QueryRow(ctx, query, id).Scan(
		&inq.ID, &inq.Name, &inq.Email, &inq.Phone, &inq.Service, &inq.Message, &inq.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("inquiry", id)
		}
		return nil, fmt.Errorf("get contact inquiry %s: %w", id, err)
	}
	return &inq, nil
}

// CountContactInquiries returns the number of stored inquiries.
func (s *Store) CountContactInquiries(ctx context.Context) (n int, err error) {
	query := `SELECT COUNT(*) FROM contact_inquiries`
	ctx, end := database.TraceQuery(ctx, "CountContactInquiries", query)
	defer func() { end(err) }()

	if err = s.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contact inquiries: %w", err)
	}
	return n, nil
}
