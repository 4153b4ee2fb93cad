package domain

// Product is a catalog item shown on the site.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// ProductInput holds the fields for creating a product.
type ProductInput struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description" validate:"required"`
	ImageURL    string `json:"imageUrl" validate:"required"`
}

// CategoryAll is the pseudo-category that matches every product.
const CategoryAll = "All"
