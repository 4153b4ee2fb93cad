// Package seed holds the site's starting catalog.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/VivekRai08/Jain-Foam-website/internal/domain"
)

const imageDir = "/generated_images/"

// Catalog is the subset of the catalog service used for seeding.
type Catalog interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateCategory(ctx context.Context, input domain.CategoryInput) (*domain.Category, error)
	CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error)
}

// Categories returns the eight starting categories.
func Categories() []domain.CategoryInput {
	return []domain.CategoryInput{
		{Name: "Mattresses", Slug: "mattresses", Description: "Premium memory foam, coir, and orthopedic mattresses", Icon: "Bed"},
		{Name: "Curtains", Slug: "curtains", Description: "Beautiful curtains with custom stitching available", Icon: "Blinds"},
		{Name: "Sofas", Slug: "sofas", Description: "Sofa making and repairing services", Icon: "Armchair"},
		{Name: "Wallpapers", Slug: "wallpapers", Description: "Imported wallpapers and 3D designs", Icon: "Wallpaper"},
		{Name: "Flooring", Slug: "flooring", Description: "PVC and vinyl flooring solutions", Icon: "Grid"},
		{Name: "Carpets", Slug: "carpets", Description: "Designer rugs and carpets", Icon: "Layout"},
		{Name: "Blinds", Slug: "blinds", Description: "Window blinds for light control", Icon: "Minimize2"},
		{Name: "Artificial Grass", Slug: "artificial-grass", Description: "Lively artificial grass for outdoor spaces", Icon: "Trees"},
	}
}

// Products returns the fifteen starting products.
func Products() []domain.ProductInput {
	p := func(name, category, description, image string) domain.ProductInput {
		return domain.ProductInput{Name: name, Category: category, Description: description, ImageURL: imageDir + image}
	}
	return []domain.ProductInput{
		p("Memory Foam Mattress", "Mattresses", "Premium memory foam mattress with orthopedic support for perfect sleep comfort", "memoryfoam.png"),
		p("Coir Mattress", "Mattresses", "Natural coir mattress for firm support and durability and comfort", "choir.png"),
		p("Designer Curtains", "Curtains", "Elegant designer curtains with custom stitching in various fabrics", "designercurtain.png"),
		p("Blackout Curtains", "Curtains", "Light-blocking curtains for complete privacy", "blackoutcurtain.png"),
		p("L-Shape Sofa", "Sofas", "Modern L-shaped sofa with premium upholstery", "Lshapesofa.png"),
		p("3-Seater Sofa", "Sofas", "Comfortable 3-seater sofa for living rooms", "3sofa.png"),
		p("3D Wallpaper", "Wallpapers", "Stunning 3D wallpaper designs for modern interiors", "3dwallpaper.png"),
		p("Imported Wallpaper", "Wallpapers", "Premium imported wallpaper with unique patterns", "importedwallpaper.png"),
		p("PVC Flooring", "Flooring", "Durable PVC flooring in wood texture patterns", "PVCfloor.png"),
		p("Vinyl Flooring", "Flooring", "Water-resistant vinyl flooring for modern homes", "vinylfloor.png"),
		p("Designer Carpet", "Carpets", "Elegant designer carpet for living spaces", "designercarpet.png"),
		p("Door Mat", "Carpets", "Functional and stylish door mats", "doormat.png"),
		p("Roller Blinds", "Blinds", "Easy-to-use roller blinds for windows", "rollerblind.png"),
		p("Vertical Blinds", "Blinds", "Vertical blinds for large windows and doors", "blackoutcurtain.png"),
		p("Balcony Grass", "Artificial Grass", "UV-resistant artificial grass for balconies", "balconygrass.png"),
	}
}

// Load creates whatever part of the starting catalog is missing. Categories
// are matched by slug and products by name, so an interrupted seed resumes
// and a complete catalog is left untouched.
func Load(ctx context.Context, catalog Catalog, logger *slog.Logger) error {
	existingCategories, err := catalog.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("check existing categories: %w", err)
	}
	existingProducts, err := catalog.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("check existing products: %w", err)
	}

	slugs := make(map[string]struct{}, len(existingCategories))
	for _, c := range existingCategories {
		slugs[c.Slug] = struct{}{}
	}
	names := make(map[string]struct{}, len(existingProducts))
	for _, p := range existingProducts {
		names[p.Name] = struct{}{}
	}

	var createdCategories, createdProducts int
	for _, c := range Categories() {
		if _, ok := slugs[c.Slug]; ok {
			continue
		}
		if _, err := catalog.CreateCategory(ctx, c); err != nil {
			return fmt.Errorf("seed category %s: %w", c.Slug, err)
		}
		createdCategories++
	}
	for _, p := range Products() {
		if _, ok := names[p.Name]; ok {
			continue
		}
		if _, err := catalog.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
		createdProducts++
	}

	if createdCategories == 0 && createdProducts == 0 {
		logger.InfoContext(ctx, "catalog already present, skipping seed",
			slog.Int("categories", len(existingCategories)),
			slog.Int("products", len(existingProducts)),
		)
		return nil
	}
	logger.InfoContext(ctx, "catalog seeded",
		slog.Int("categories", createdCategories),
		slog.Int("products", createdProducts),
	)
	return nil
}
