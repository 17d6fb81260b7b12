package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/mytheresa/go-inventory/app/categories"
	"github.com/mytheresa/go-inventory/app/console"
	"github.com/mytheresa/go-inventory/app/inventory"
	"github.com/mytheresa/go-inventory/models"
	"github.com/mytheresa/go-inventory/pkg/e"
	"github.com/shopspring/decimal"
)

// Every mutation below reads the product once to build its questions and writes through
// UpdateProduct, which reads it again in the writing transaction.

type Add struct{}

func (Add) Title() string { return "Add a new product" }

func (Add) Execute(ctx context.Context, store inventory.Store, ui console.UI) error {
	categoryID, err := categories.Select(ctx, store, ui, categories.Options{
		Title:       "Select a category",
		CancelLabel: "Cancel the addition",
		Prompt:      "Which category will the product be added to?",
	})
	if err != nil {
		return err
	}

	name, err := ui.AskText("Product name", "")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return e.Invalid("Product name cannot be empty")
	}

	stock, err := ui.AskInt("Initial stock", 0)
	if err != nil {
		return err
	}
	if stock < 0 {
		return e.Invalid("Initial stock cannot be negative")
	}
	if stock > maxStock {
		return errStockLimit
	}

	price, err := ui.AskDecimal("Initial price", decimal.Zero)
	if err != nil {
		return err
	}
	if price.IsNegative() {
		return e.Invalid("Price cannot be negative")
	}

	ok, err := ui.AskConfirm(fmt.Sprintf("Register product '%s'?", name), true)
	if err != nil {
		return err
	}
	if !ok {
		return e.Cancelled("Registration cancelled")
	}

	product := &models.Product{Name: name, Stock: stock, Price: price.Round(2), Active: true}
	if err := store.CreateProduct(ctx, categoryID, product); err != nil {
		return err
	}
	ui.Message("Product '%s' registered in '%s'", product.Name, product.Category.Name)
	return nil
}

// Alter edits the name and the price, offering the current values as defaults.
type Alter struct{}

func (Alter) Title() string { return "Alter a product" }

func (Alter) Execute(ctx context.Context, store inventory.Store, ui console.UI) error {
	id, err := Select(ctx, store, ui, Options{
		Title:       "Choose a product to alter",
		CancelLabel: "Stop the change",
		Prompt:      "Which product will be altered?",
		ActiveOnly:  true,
	})
	if err != nil {
		return err
	}

	current, err := store.FindProduct(ctx, id)
	if err != nil {
		return err
	}

	name, err := ui.AskText("Name", current.Name)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return e.Invalid("Product name cannot be empty")
	}

	price, err := ui.AskDecimal("Price", current.Price)
	if err != nil {
		return err
	}
	price = price.Round(2)
	if !price.IsPositive() {
		return e.Invalid("Price cannot be zero or negative")
	}

	if name == current.Name && price.Equal(current.Price) {
		return e.Cancelled("Nothing to change")
	}

	ok, err := ui.AskConfirm(fmt.Sprintf("Save '%s' at %s?", name, console.Money(price)), true)
	if err != nil {
		return err
	}
	if !ok {
		return e.Cancelled("Change interrupted")
	}

	if _, err := store.UpdateProduct(ctx, id, func(p *models.Product) error {
		p.Name = name
		p.Price = price
		return nil
	}); err != nil {
		return err
	}
	ui.Message("Product '%s' saved", name)
	return nil
}

type Remove struct{}

func (Remove) Title() string { return "Remove a product" }

func (Remove) Execute(ctx context.Context, store inventory.Store, ui console.UI) error {
	id, err := Select(ctx, store, ui, Options{
		Title:       "Choose a product to remove",
		CancelLabel: "Stop the removal",
		Prompt:      "Which product will be removed?",
	})
	if err != nil {
		return err
	}

	product, err := store.FindProduct(ctx, id)
	if err != nil {
		return err
	}

	ok, err := ui.AskConfirm(fmt.Sprintf("Remove product '%s'?", product.Name), false)
	if err != nil {
		return err
	}
	if !ok {
		return e.Cancelled("Removal interrupted")
	}

	if err := store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	ui.Message("Done!")
	return nil
}

// Stock stays within ±maxStock units.
const maxStock = 1_000_000_000

var errStockLimit = e.Invalid("Stock must stay between -%d and %d units", maxStock, maxStock)

// Restock adds purchased units to the stock.
type Restock struct{}

func (Restock) Title() string { return "Buy (restock) a product" }

func (Restock) Execute(ctx context.Context, store inventory.Store, ui console.UI) error {
	id, err := Select(ctx, store, ui, Options{
		Title:       "Choose a product to buy",
		CancelLabel: "Stop the purchase",
		Prompt:      "Which product?",
		ActiveOnly:  true,
	})
	if err != nil {
		return err
	}

	product, err := store.FindProduct(ctx, id)
	if err != nil {
		return err
	}

	add, err := ui.AskInt(fmt.Sprintf("Add how many units to the %d in stock?", product.Stock), 0)
	if err != nil {
		return err
	}
	if add < 0 {
		return e.Cancelled("Purchase cancelled")
	}
	if add > maxStock || product.Stock > maxStock-add {
		return errStockLimit
	}

	updated, err := store.UpdateProduct(ctx, id, func(p *models.Product) error {
		if p.Stock > maxStock-add {
			return errStockLimit
		}
		p.Stock += add
		return nil
	})
	if err != nil {
		return err
	}
	ui.Message("%s now has %d units", updated.Name, updated.Stock)
	return nil
}

// Sell removes sold units from the stock. Going below zero needs the operator's consent.
type Sell struct{}

func (Sell) Title() string { return "Sell a product" }

func (Sell) Execute(ctx context.Context, store inventory.Store, ui console.UI) error {
	id, err := Select(ctx, store, ui, Options{
		Title:       "Choose a product to sell",
		CancelLabel: "Stop the sale",
		Prompt:      "Which product?",
		ActiveOnly:  true,
	})
	if err != nil {
		return err
	}

	product, err := store.FindProduct(ctx, id)
	if err != nil {
		return err
	}

	sell, err := ui.AskInt(fmt.Sprintf("Sell how many of the %d units in stock?", product.Stock), 0)
	if err != nil {
		return err
	}
	if sell < 0 {
		return e.Cancelled("Sale interrupted")
	}
	if sell > maxStock || product.Stock < sell-maxStock {
		return errStockLimit
	}

	allowNegative := false
	if next := product.Stock - sell; next < 0 {
		ok, err := ui.AskConfirm(fmt.Sprintf("Product will have a negative stock of %d units. Confirm?", -next), false)
		if err != nil {
			return err
		}
		if !ok {
			return e.Cancelled("Sale interrupted")
		}
		allowNegative = true
	}

	updated, err := store.UpdateProduct(ctx, id, func(p *models.Product) error {
		if p.Stock < sell-maxStock {
			return errStockLimit
		}
		if p.Stock-sell < 0 && !allowNegative {
			return e.Cancelled("Stock changed meanwhile, sale interrupted")
		}
		p.Stock -= sell
		return nil
	})
	if err != nil {
		return err
	}
	ui.Message("%s now has %d units", updated.Name, updated.Stock)
	return nil
}

type ToggleActive struct{}

func (ToggleActive) Title() string { return "Change the state of a product" }

func (ToggleActive) Execute(ctx context.Context, store inventory.Store, ui console.UI) error {
	id, err := Select(ctx, store, ui, Options{
		Title:       "Choose a product to change",
		CancelLabel: "Stop the change",
		Prompt:      "Which product?",
	})
	if err != nil {
		return err
	}

	product, err := store.FindProduct(ctx, id)
	if err != nil {
		return err
	}

	target := !product.Active
	ok, err := ui.AskConfirm(fmt.Sprintf("Change product '%s' from %s to %s?",
		product.Name, stateName(product.Active), stateName(target)), false)
	if err != nil {
		return err
	}
	if !ok {
		return e.ErrCancelled
	}

	if _, err := store.UpdateProduct(ctx, id, func(p *models.Product) error {
		p.Active = target
		return nil
	}); err != nil {
		return err
	}
	ui.Message("Product '%s' is now %s", product.Name, stateName(target))
	return nil
}

func stateName(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

// Reprice sets a new price for one product. No confirmation is asked.
type Reprice struct{}

func (Reprice) Title() string { return "Change the price of a product" }

func (Reprice) Execute(ctx context.Context, store inventory.Store, ui console.UI) error {
	id, err := Select(ctx, store, ui, Options{
		Title:       "Choose a product to correct the price",
		CancelLabel: "Stop the change",
		Prompt:      "Which product?",
		ActiveOnly:  true,
	})
	if err != nil {
		return err
	}

	product, err := store.FindProduct(ctx, id)
	if err != nil {
		return err
	}

	price, err := ui.AskDecimal(fmt.Sprintf("New price of '%s'", product.Name), product.Price)
	if err != nil {
		return err
	}
	price = price.Round(2)
	if !price.IsPositive() {
		return e.Invalid("Price cannot be zero or negative")
	}

	updated, err := store.UpdateProduct(ctx, id, func(p *models.Product) error {
		p.Price = price
		return nil
	})
	if err != nil {
		return err
	}
	ui.Message("%s now costs %s", updated.Name, console.Money(updated.Price))
	return nil
}

var (
	minPercentage = decimal.Zero
	maxPercentage = decimal.NewFromInt(100)
)

// RepriceAll raises the price of every active product by a percentage in one bulk
// statement. Products are not re-read one by one.
type RepriceAll struct{}

func (RepriceAll) Title() string { return "Adjust all prices by a percentage" }

func (RepriceAll) Execute(ctx context.Context, store inventory.Store, ui console.UI) error {
	pct, err := ui.AskDecimal("Adjustment percentage (0.00 to 100.00%)", decimal.Zero)
	if err != nil {
		return err
	}
	pct = pct.Round(2)
	if pct.LessThan(minPercentage) || pct.GreaterThan(maxPercentage) {
		return e.Invalid("Invalid percentage %s%%", pct.String())
	}

	ok, err := ui.AskConfirm(fmt.Sprintf("Adjust the price of every active product by %s%%?", pct.StringFixed(2)), false)
	if err != nil {
		return err
	}
	if !ok {
		return e.Cancelled("Adjustment cancelled")
	}

	n, err := store.RepriceActive(ctx, pct)
	if err != nil {
		return err
	}
	ui.Message("Prices of %d products adjusted by %s%%!", n, pct.StringFixed(2))
	return nil
}
