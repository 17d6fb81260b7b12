package models_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mytheresa/go-inventory/config"
	"github.com/mytheresa/go-inventory/database"
	"github.com/mytheresa/go-inventory/models"
	"github.com/mytheresa/go-inventory/models/memory"
	"github.com/mytheresa/go-inventory/pkg/e"
	"github.com/mytheresa/go-inventory/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entityStore is satisfied by both the gorm store and the memory store; every test runs
// against each of them.
type entityStore interface {
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

// --- Helpers ---

var stores = []struct {
	name string
	open func(t *testing.T) entityStore
}{
	{
		name: "gorm/sqlite",
		open: func(t *testing.T) entityStore {
			t.Helper()
			db, err := database.Open(&config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"}, logger.Nop{})
			require.NoError(t, err)
			t.Cleanup(func() { _ = database.Close(db) })
			require.NoError(t, database.AutoMigrate(db, logger.Nop{}))
			return models.NewStore(db)
		},
	},
	{
		name: "memory",
		open: func(t *testing.T) entityStore { return memory.NewStore() },
	},
}

type fixture struct {
	beverages, bakery models.Category
	ids               map[string]uuid.UUID
}

// seed stores Beverages (Cola 10.00 x5, Water 2.50 x0) and Bakery (Bread 4.20 x12,
// Croissant 6.80 x3 inactive, 100% Rye 5.00 x-2).
func seed(t *testing.T, s entityStore) fixture {
	t.Helper()
	ctx := context.Background()

	fx := fixture{
		beverages: models.Category{Name: "Beverages"},
		bakery:    models.Category{Name: "Bakery"},
		ids:       map[string]uuid.UUID{},
	}
	require.NoError(t, s.CreateCategory(ctx, &fx.beverages))
	require.NoError(t, s.CreateCategory(ctx, &fx.bakery))

	for _, p := range []struct {
		category uuid.UUID
		name     string
		price    string
		stock    int
		active   bool
	}{
		{fx.beverages.ID, "Cola", "10.00", 5, true},
		{fx.beverages.ID, "Water", "2.50", 0, true},
		{fx.bakery.ID, "Bread", "4.20", 12, true},
		{fx.bakery.ID, "Croissant", "6.80", 3, false},
		{fx.bakery.ID, "100% Rye", "5.00", -2, true},
	} {
		product := &models.Product{Name: p.name, Price: decimal.RequireFromString(p.price), Stock: p.stock, Active: p.active}
		require.NoError(t, s.CreateProduct(ctx, p.category, product))
		fx.ids[p.name] = product.ID
	}
	return fx
}

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func forEachStore(t *testing.T, fn func(t *testing.T, s entityStore, fx fixture)) {
	for _, st := range stores {
		t.Run(st.name, func(t *testing.T) {
			s := st.open(t)
			fn(t, s, seed(t, s))
		})
	}
}

// --- Tests ---

func TestListProducts(t *testing.T) {
	testCases := []struct {
		name     string
		filters  models.ProductFilters
		expected []string
	}{
		{name: "All by name", expected: []string{"100% Rye", "Bread", "Cola", "Croissant", "Water"}},
		{name: "Case insensitive part", filters: models.ProductFilters{NameContains: "CR"}, expected: []string{"Croissant"}},
		{name: "Percent sign is literal", filters: models.ProductFilters{NameContains: "0%"}, expected: []string{"100% Rye"}},
		{name: "Active only", filters: models.ProductFilters{ActiveOnly: true}, expected: []string{"100% Rye", "Bread", "Cola", "Water"}},
		{name: "Out of stock", filters: models.ProductFilters{ActiveOnly: true, OutOfStockOnly: true}, expected: []string{"100% Rye", "Water"}},
		{name: "No match", filters: models.ProductFilters{NameContains: "tea"}, expected: []string{}},
	}

	forEachStore(t, func(t *testing.T, s entityStore, fx fixture) {
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				found, err := s.ListProducts(context.Background(), tc.filters)

				require.NoError(t, err)
				assert.Equal(t, tc.expected, names(found))
				for _, p := range found {
					assert.NotEmpty(t, p.Category.Name, "category is loaded")
				}
			})
		}
	})
}

func TestListCategories(t *testing.T) {
	forEachStore(t, func(t *testing.T, s entityStore, fx fixture) {
		ctx := context.Background()

		all, err := s.ListCategories(ctx, models.CategoryFilters{})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Bakery", all[0].Name)
		assert.Equal(t, []string{"100% Rye", "Bread", "Croissant"}, names(all[0].Products))
		assert.Equal(t, "Beverages", all[1].Name)

		some, err := s.ListCategories(ctx, models.CategoryFilters{NameContains: "bev"})
		require.NoError(t, err)
		require.Len(t, some, 1)
		assert.Equal(t, fx.beverages.ID, some[0].ID)
	})
}

func TestNotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, s entityStore, fx fixture) {
		ctx := context.Background()
		missing := uuid.New()

		_, err := s.FindProduct(ctx, missing)
		assert.ErrorIs(t, err, models.ErrProductNotFound)
		assert.ErrorIs(t, err, e.ErrNotFound)

		_, err = s.FindCategory(ctx, missing)
		assert.ErrorIs(t, err, models.ErrCategoryNotFound)

		_, err = s.UpdateProduct(ctx, missing, func(*models.Product) error { return nil })
		assert.ErrorIs(t, err, models.ErrProductNotFound)

		_, err = s.DeleteCategory(ctx, missing)
		assert.ErrorIs(t, err, models.ErrCategoryNotFound)

		assert.ErrorIs(t, s.DeleteProduct(ctx, missing), models.ErrProductNotFound)
		assert.ErrorIs(t, s.CreateProduct(ctx, missing, &models.Product{Name: "Orphan"}), models.ErrCategoryNotFound)
	})
}

func TestUpdateProduct(t *testing.T) {
	forEachStore(t, func(t *testing.T, s entityStore, fx fixture) {
		ctx := context.Background()
		id := fx.ids["Cola"]
		before, err := s.FindProduct(ctx, id)
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)

		updated, err := s.UpdateProduct(ctx, id, func(p *models.Product) error {
			assert.Equal(t, 5, p.Stock, "fn sees the stored state")
			p.Stock -= 3
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, updated.Stock)

		after, err := s.FindProduct(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 2, after.Stock)
		assert.Equal(t, fx.beverages.ID, after.CategoryID)
		assert.True(t, after.CreatedAt.Equal(before.CreatedAt))
		assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
	})
}

func TestUpdateProductRejectedByCallback(t *testing.T) {
	forEachStore(t, func(t *testing.T, s entityStore, fx fixture) {
		ctx := context.Background()
		id := fx.ids["Cola"]
		stop := e.Cancelled("Sale interrupted")

		_, err := s.UpdateProduct(ctx, id, func(p *models.Product) error {
			p.Stock = -100
			return stop
		})

		assert.True(t, errors.Is(err, e.ErrCancelled))
		assert.Equal(t, "Sale interrupted", err.Error())
		after, err := s.FindProduct(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 5, after.Stock)
	})
}

func TestUpdateCategory(t *testing.T) {
	forEachStore(t, func(t *testing.T, s entityStore, fx fixture) {
		ctx := context.Background()

		renamed, err := s.UpdateCategory(ctx, fx.bakery.ID, func(c *models.Category) error {
			c.Name = "Bread & Cakes"
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "Bread & Cakes", renamed.Name)

		found, err := s.FindCategory(ctx, fx.bakery.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bread & Cakes", found.Name)
		assert.Len(t, found.Products, 3, "products stay with the renamed category")
	})
}

func TestDeleteCategoryCascades(t *testing.T) {
	forEachStore(t, func(t *testing.T, s entityStore, fx fixture) {
		ctx := context.Background()

		removed, err := s.DeleteCategory(ctx, fx.beverages.ID)

		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)
		_, err = s.FindProduct(ctx, fx.ids["Cola"])
		assert.ErrorIs(t, err, models.ErrProductNotFound)

		left, err := s.ListProducts(ctx, models.ProductFilters{})
		require.NoError(t, err)
		assert.Equal(t, []string{"100% Rye", "Bread", "Croissant"}, names(left))
	})
}

func TestDeleteProductKeepsCategory(t *testing.T) {
	forEachStore(t, func(t *testing.T, s entityStore, fx fixture) {
		ctx := context.Background()

		require.NoError(t, s.DeleteProduct(ctx, fx.ids["Water"]))

		category, err := s.FindCategory(ctx, fx.beverages.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Cola"}, names(category.Products))
	})
}

func TestRepriceActive(t *testing.T) {
	forEachStore(t, func(t *testing.T, s entityStore, fx fixture) {
		ctx := context.Background()

		touched, err := s.RepriceActive(ctx, decimal.NewFromInt(10))

		require.NoError(t, err)
		assert.Equal(t, int64(4), touched)
		for name, price := range map[string]string{
			"Cola":      "11.00",
			"Water":     "2.75",
			"Bread":     "4.62",
			"100% Rye":  "5.50",
			"Croissant": "6.80",
		} {
			p, err := s.FindProduct(ctx, fx.ids[name])
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(price).Equal(p.Price), "%s: expected %s, got %s", name, price, p.Price)
		}
	})
}

func TestRepriceActiveZeroPercentKeepsPrices(t *testing.T) {
	forEachStore(t, func(t *testing.T, s entityStore, fx fixture) {
		ctx := context.Background()

		_, err := s.RepriceActive(ctx, decimal.Zero)

		require.NoError(t, err)
		p, err := s.FindProduct(ctx, fx.ids["Bread"])
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("4.20").Equal(p.Price))
	})
}

func TestRepriceActiveRoundsPercentageToCents(t *testing.T) {
	forEachStore(t, func(t *testing.T, s entityStore, fx fixture) {
		ctx := context.Background()

		// 0.116% is applied as 0.12%: 4.20 * 1.0012 = 4.20504.
		_, err := s.RepriceActive(ctx, decimal.RequireFromString("0.116"))

		require.NoError(t, err)
		p, err := s.FindProduct(ctx, fx.ids["Bread"])
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("4.21").Equal(p.Price), "got %s", p.Price)
	})
}

func TestPriceFactor(t *testing.T) {
	testCases := []struct {
		pct      string
		expected string
	}{
		{"0", "1"},
		{"10", "1.1"},
		{"12.5", "1.125"},
		{"100", "2"},
		{"12.345", "1.1235"},
		{"0.116", "1.0012"},
		{"0.001", "1"},
	}

	for _, tc := range testCases {
		t.Run(tc.pct, func(t *testing.T) {
			got := models.PriceFactor(decimal.RequireFromString(tc.pct))
			assert.True(t, decimal.RequireFromString(tc.expected).Equal(got), "got %s", got)
		})
	}
}
