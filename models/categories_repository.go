package models

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

// ListCategories returns categories ordered by name, each with its products loaded.
func (r *CategoriesRepository) ListCategories(ctx context.Context, filters CategoryFilters) ([]Category, error) {
	var categories []Category

	query := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("name").Order("created_at") })

	if filters.NameContains != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likePattern(filters.NameContains))
	}

	if err := query.Order("name").Order("created_at").Find(&categories).Error; err != nil {
		return nil, wrapDB(err)
	}
	return categories, nil
}

func (r *CategoriesRepository) FindCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		First(&category, "id = ?", id).Error; err != nil {
		return nil, wrapDB(notFound(err, ErrCategoryNotFound))
	}
	return &category, nil
}

func (r *CategoriesRepository) CreateCategory(ctx context.Context, category *Category) error {
	return wrapDB(r.db.WithContext(ctx).Create(category).Error)
}

// UpdateCategory re-reads the category inside a fresh transaction, lets fn change it and
// saves the result. An error from fn rolls back without writing.
func (r *CategoriesRepository) UpdateCategory(ctx context.Context, id uuid.UUID, fn func(*Category) error) (*Category, error) {
	var category Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			return notFound(err, ErrCategoryNotFound)
		}
		if err := fn(&category); err != nil {
			return err
		}
		return tx.Save(&category).Error
	})
	if err != nil {
		return nil, wrapDB(err)
	}
	return &category, nil
}

// DeleteCategory removes the category and all of its products in one transaction and
// reports how many products went with it.
func (r *CategoriesRepository) DeleteCategory(ctx context.Context, id uuid.UUID) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			return notFound(err, ErrCategoryNotFound)
		}

		res := tx.Where("category_id = ?", id).Delete(&Product{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected

		return tx.Delete(&category).Error
	})
	if err != nil {
		return 0, wrapDB(err)
	}
	return removed, nil
}
