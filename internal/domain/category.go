package domain

// Category groups products on the site.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CategoryInput holds the fields for creating a category. An empty Slug is
// derived from Name.
type CategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon" validate:"required"`
}
