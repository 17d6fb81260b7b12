package models

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// ListProducts returns products ordered by name with their category loaded.
func (r *ProductsRepository) ListProducts(ctx context.Context, filters ProductFilters) ([]Product, error) {
	var products []Product

	query := r.db.WithContext(ctx).Model(&Product{}).Preload("Category")

	// Filter
	if filters.NameContains != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likePattern(filters.NameContains))
	}
	if filters.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if filters.OutOfStockOnly {
		query = query.Where("stock <= ?", 0)
	}

	if err := query.Order("name").Order("created_at").Find(&products).Error; err != nil {
		return nil, wrapDB(err)
	}
	return products, nil
}

func (r *ProductsRepository) FindProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		First(&product, "id = ?", id).Error; err != nil {
		return nil, wrapDB(notFound(err, ErrProductNotFound))
	}
	return &product, nil
}

// CreateProduct inserts product into the category identified by categoryID. The category
// is checked in the same transaction as the insert.
func (r *ProductsRepository) CreateProduct(ctx context.Context, categoryID uuid.UUID, product *Product) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category Category
		if err := tx.First(&category, "id = ?", categoryID).Error; err != nil {
			return notFound(err, ErrCategoryNotFound)
		}

		product.CategoryID = category.ID
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return err
		}
		product.Category = category
		return nil
	})
	return wrapDB(err)
}

// UpdateProduct re-reads the product inside a fresh transaction, lets fn change it and
// saves the result. There is no version check: the last writer wins.
func (r *ProductsRepository) UpdateProduct(ctx context.Context, id uuid.UUID, fn func(*Product) error) (*Product, error) {
	var product Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
			return notFound(err, ErrProductNotFound)
		}
		if err := fn(&product); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&product).Error
	})
	if err != nil {
		return nil, wrapDB(err)
	}
	return &product, nil
}

func (r *ProductsRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Product{}, "id = ?", id)
	if res.Error != nil {
		return wrapDB(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// RepriceActive multiplies the price of every active product by (1 + pct/100) in a single
// statement and returns the number of rows touched.
func (r *ProductsRepository) RepriceActive(ctx context.Context, pct decimal.Decimal) (int64, error) {
	factor := PriceFactor(pct)

	// factor is formatted by decimal and has at most four decimals; inlined as a literal.
	res := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("active = ?", true).
		Update("price", gorm.Expr("ROUND(price * "+factor.StringFixed(6)+", 2)"))
	if res.Error != nil {
		return 0, wrapDB(res.Error)
	}
	return res.RowsAffected, nil
}

// PriceFactor turns a percentage into the multiplier applied by RepriceActive. The
// percentage is rounded to two decimals, so the factor has at most four.
func PriceFactor(pct decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(pct.Round(2).Div(decimal.NewFromInt(100)))
}
