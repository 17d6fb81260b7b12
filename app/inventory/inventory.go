// Package inventory holds the contracts shared by the menu operations: the entity store
// they read and write, and the operation type the menu dispatches to.
package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/mytheresa/go-inventory/app/console"
	"github.com/mytheresa/go-inventory/models"
	"github.com/shopspring/decimal"
)

// Store is implemented by models.Store (gorm) and memory.Store.
//
// UpdateCategory and UpdateProduct re-read the record in their own transaction before
// applying fn; an error returned by fn aborts without writing.
type Store interface {
	ListCategories(ctx context.Context, filters models.CategoryFilters) ([]models.Category, error)
	FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, id uuid.UUID, fn func(*models.Category) error) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) (int64, error)

	ListProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error)
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, categoryID uuid.UUID, product *models.Product) error
	UpdateProduct(ctx context.Context, id uuid.UUID, fn func(*models.Product) error) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	RepriceActive(ctx context.Context, pct decimal.Decimal) (int64, error)
}

// Operation is one menu action.
type Operation interface {
	Title() string
	Execute(ctx context.Context, store Store, ui console.UI) error
}
