package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/mytheresa/go-inventory/models"
	"github.com/mytheresa/go-inventory/pkg/logger"
	"github.com/shopspring/decimal"
)

// seedStore is the part of the entity store the seeder writes through.
type seedStore interface {
	ListCategories(ctx context.Context, filters models.CategoryFilters) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	CreateProduct(ctx context.Context, categoryID uuid.UUID, product *models.Product) error
}

type seedProduct struct {
	name   string
	price  string
	stock  int
	active bool
}

var seedData = []struct {
	category string
	products []seedProduct
}{
	{"Beverages", []seedProduct{
		{"Cola", "10.00", 5, true},
		{"Water", "2.50", 0, true},
	}},
	{"Bakery", []seedProduct{
		{"Bread", "4.20", 12, true},
		{"Croissant", "6.80", 3, false},
	}},
}

// Seed loads the demo categories and products into an empty store. A store that already
// has categories is left alone. It returns the number of products created.
func Seed(ctx context.Context, store seedStore, log logger.Logger) (int, error) {
	existing, err := store.ListCategories(ctx, models.CategoryFilters{})
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		log.Infof("Skipping seed, %d categories already registered", len(existing))
		return 0, nil
	}

	created := 0
	for _, c := range seedData {
		category := &models.Category{Name: c.category}
		if err := store.CreateCategory(ctx, category); err != nil {
			return created, err
		}
		for _, p := range c.products {
			product := &models.Product{
				Name:   p.name,
				Price:  decimal.RequireFromString(p.price),
				Stock:  p.stock,
				Active: p.active,
			}
			if err := store.CreateProduct(ctx, category.ID, product); err != nil {
				return created, err
			}
			created++
		}
		log.Debugf("Seeded category %s with %d products", c.category, len(c.products))
	}

	log.Infof("Seeded %d categories and %d products", len(seedData), created)
	return created, nil
}
