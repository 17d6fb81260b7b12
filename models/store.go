package models

import "gorm.io/gorm"

// Store is the gorm-backed entity store: categories and products behind one handle.
type Store struct {
	*CategoriesRepository
	*ProductsRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		CategoriesRepository: NewCategoriesRepository(db),
		ProductsRepository:   NewProductsRepository(db),
	}
}

// AllModels lists the entities in migration order.
func AllModels() []any {
	return []any{&Category{}, &Product{}}
}
