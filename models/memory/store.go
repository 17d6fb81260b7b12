// Package memory provides an in-memory implementation of the entity store used for tests
// and ephemeral sessions (DB_DRIVER=memory).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mytheresa/go-inventory/models"
	"github.com/shopspring/decimal"
)

// Store keeps categories and products in maps. Records handed out are copies.
type Store struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]models.Category
	products   map[uuid.UUID]models.Product
	seq        map[uuid.UUID]int // insertion order, the natural order for ties
	next       int
	now        func() time.Time
}

func NewStore() *Store {
	return &Store{
		categories: make(map[uuid.UUID]models.Category),
		products:   make(map[uuid.UUID]models.Product),
		seq:        make(map[uuid.UUID]int),
		now:        time.Now,
	}
}

// WithClock replaces the time source. Tests use it to observe UpdatedAt changes.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) ListCategories(ctx context.Context, filters models.CategoryFilters) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Category
	for _, c := range s.categories {
		if !contains(c.Name, filters.NameContains) {
			continue
		}
		c.Products = s.productsOf(c.ID)
		out = append(out, c)
	}
	s.sortCategories(out)
	return out, nil
}

func (s *Store) FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, models.ErrCategoryNotFound
	}
	c.Products = s.productsOf(id)
	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	now := s.now()
	category.CreatedAt, category.UpdatedAt = now, now

	stored := *category
	stored.Products = nil
	s.categories[stored.ID] = stored
	s.track(stored.ID)
	return nil
}

func (s *Store) UpdateCategory(ctx context.Context, id uuid.UUID, fn func(*models.Category) error) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, models.ErrCategoryNotFound
	}
	created := c.CreatedAt
	if err := fn(&c); err != nil {
		return nil, err
	}
	c.ID, c.CreatedAt, c.UpdatedAt = id, created, s.now()
	c.Products = nil
	s.categories[id] = c
	return &c, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return 0, models.ErrCategoryNotFound
	}

	var removed int64
	for pid, p := range s.products {
		if p.CategoryID == id {
			delete(s.products, pid)
			delete(s.seq, pid)
			removed++
		}
	}
	delete(s.categories, id)
	delete(s.seq, id)
	return removed, nil
}

func (s *Store) ListProducts(ctx context.Context, filters models.ProductFilters) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Product
	for _, p := range s.products {
		if !contains(p.Name, filters.NameContains) {
			continue
		}
		if filters.ActiveOnly && !p.Active {
			continue
		}
		if filters.OutOfStockOnly && p.Stock > 0 {
			continue
		}
		out = append(out, s.withCategory(p))
	}
	s.sortProducts(out)
	return out, nil
}

func (s *Store) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	p = s.withCategory(p)
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, categoryID uuid.UUID, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[categoryID]
	if !ok {
		return models.ErrCategoryNotFound
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := s.now()
	product.CreatedAt, product.UpdatedAt = now, now
	product.CategoryID = categoryID

	stored := *product
	stored.Category = models.Category{}
	s.products[stored.ID] = stored
	s.track(stored.ID)

	product.Category = category
	return nil
}

func (s *Store) UpdateProduct(ctx context.Context, id uuid.UUID, fn func(*models.Product) error) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	p = s.withCategory(p)
	created, categoryID := p.CreatedAt, p.CategoryID
	if err := fn(&p); err != nil {
		return nil, err
	}
	p.ID, p.CreatedAt, p.CategoryID, p.UpdatedAt = id, created, categoryID, s.now()

	stored := p
	stored.Category = models.Category{}
	s.products[id] = stored
	return &p, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return models.ErrProductNotFound
	}
	delete(s.products, id)
	delete(s.seq, id)
	return nil
}

func (s *Store) RepriceActive(ctx context.Context, pct decimal.Decimal) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	factor := models.PriceFactor(pct)
	now := s.now()

	var touched int64
	for id, p := range s.products {
		if !p.Active {
			continue
		}
		p.Price = p.Price.Mul(factor).Round(2)
		p.UpdatedAt = now
		s.products[id] = p
		touched++
	}
	return touched, nil
}

func (s *Store) track(id uuid.UUID) {
	s.next++
	s.seq[id] = s.next
}

func (s *Store) productsOf(categoryID uuid.UUID) []models.Product {
	var out []models.Product
	for _, p := range s.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	s.sortProducts(out)
	return out
}

func (s *Store) withCategory(p models.Product) models.Product {
	c := s.categories[p.CategoryID]
	c.Products = nil
	p.Category = c
	return p
}

func (s *Store) sortCategories(cs []models.Category) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Name != cs[j].Name {
			return cs[i].Name < cs[j].Name
		}
		return s.seq[cs[i].ID] < s.seq[cs[j].ID]
	})
}

func (s *Store) sortProducts(ps []models.Product) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Name != ps[j].Name {
			return ps[i].Name < ps[j].Name
		}
		return s.seq[ps[i].ID] < s.seq[ps[j].ID]
	})
}

func contains(name, part string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(part))
}
