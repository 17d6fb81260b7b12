package categories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mytheresa/go-inventory/app/console"
	"github.com/mytheresa/go-inventory/app/inventory"
	"github.com/mytheresa/go-inventory/app/selection"
	"github.com/mytheresa/go-inventory/models"
	"github.com/mytheresa/go-inventory/pkg/e"
)

// Options customise the wording of one category selection.
type Options struct {
	Title       string
	CancelLabel string
	Prompt      string
}

var columns = []console.Column{
	{Header: "Name"},
	{Header: "Created"},
	{Header: "Updated"},
	{Header: "# products", Align: console.AlignRight},
}

func cells(c models.Category) []string {
	return []string{c.Name, console.Date(c.CreatedAt), console.Stamp(c.UpdatedAt), console.Count(len(c.Products))}
}

func table(title string, categories []models.Category) console.Table {
	tbl := console.Table{Title: title, Columns: columns}
	for _, c := range categories {
		tbl.AddRow(cells(c)...)
	}
	return tbl
}

// Select asks for a partial name, lists the matching categories by name and returns the
// one the operator picked.
func Select(ctx context.Context, store inventory.Store, ui console.UI, opts Options) (uuid.UUID, error) {
	partial, err := ui.AskText("Enter part of the category name (enter for all)", "")
	if err != nil {
		return uuid.Nil, err
	}

	found, err := store.ListCategories(ctx, models.CategoryFilters{NameContains: partial})
	if err != nil {
		return uuid.Nil, err
	}

	list := selection.List{
		Title:       opts.Title,
		CancelLabel: opts.CancelLabel,
		Prompt:      opts.Prompt,
		Columns:     columns,
	}
	if partial != "" {
		list.Caption = fmt.Sprintf("Only categories containing '%s'", partial)
	}
	for _, c := range found {
		list.Items = append(list.Items, selection.Item{ID: c.ID, Cells: cells(c)})
	}

	return selection.Choose(ui, list)
}

type List struct{}

func (List) Title() string { return "List registered categories" }

func (List) Execute(ctx context.Context, store inventory.Store, ui console.UI) error {
	found, err := store.ListCategories(ctx, models.CategoryFilters{})
	if err != nil {
		return err
	}
	ui.Table(table("Registered categories", found))
	return nil
}

type Add struct{}

func (Add) Title() string { return "Add a new category" }

// Execute warns about categories whose name contains the new one before asking for
// confirmation. Similar names do not block the insert.
func (Add) Execute(ctx context.Context, store inventory.Store, ui console.UI) error {
	name, err := ui.AskText("Name of the new category", "")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return e.Invalid("Category name cannot be empty")
	}

	similar, err := store.ListCategories(ctx, models.CategoryFilters{NameContains: name})
	if err != nil {
		return err
	}
	if len(similar) > 0 {
		ui.Table(table("Similar categories already registered", similar))
	}

	ok, err := ui.AskConfirm(fmt.Sprintf("Register category '%s'?", name), len(similar) == 0)
	if err != nil {
		return err
	}
	if !ok {
		return e.Cancelled("Registration cancelled")
	}

	if err := store.CreateCategory(ctx, &models.Category{Name: name}); err != nil {
		return err
	}
	ui.Message("Category '%s' registered", name)
	return nil
}

type Alter struct{}

func (Alter) Title() string { return "Rename a category" }

func (Alter) Execute(ctx context.Context, store inventory.Store, ui console.UI) error {
	id, err := Select(ctx, store, ui, Options{
		Title:       "Select the category to rename",
		CancelLabel: "Stop the change",
		Prompt:      "Which category will be renamed?",
	})
	if err != nil {
		return err
	}

	current, err := store.FindCategory(ctx, id)
	if err != nil {
		return err
	}

	name, err := ui.AskText("New name", current.Name)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return e.Invalid("Category name cannot be empty")
	}
	if name == current.Name {
		return e.Cancelled("Nothing to change")
	}

	ok, err := ui.AskConfirm(fmt.Sprintf("Rename category '%s' to '%s'?", current.Name, name), true)
	if err != nil {
		return err
	}
	if !ok {
		return e.Cancelled("Change interrupted")
	}

	if _, err := store.UpdateCategory(ctx, id, func(c *models.Category) error {
		c.Name = name
		return nil
	}); err != nil {
		return err
	}
	ui.Message("Category renamed to '%s'", name)
	return nil
}

type Remove struct{}

func (Remove) Title() string { return "Remove a category and its products" }

// Execute deletes the chosen category together with every product it owns.
func (Remove) Execute(ctx context.Context, store inventory.Store, ui console.UI) error {
	id, err := Select(ctx, store, ui, Options{
		Title:       "Select the category to remove",
		CancelLabel: "Stop the removal",
		Prompt:      "Which category will be removed?",
	})
	if err != nil {
		return err
	}

	category, err := store.FindCategory(ctx, id)
	if err != nil {
		return err
	}

	question := fmt.Sprintf("Remove category '%s'", category.Name)
	if n := len(category.Products); n > 0 {
		ui.Table(productTable(category.Products))
		question += fmt.Sprintf(" and all %d related products?", n)
	} else {
		question += "?"
	}

	ok, err := ui.AskConfirm(question, false)
	if err != nil {
		return err
	}
	if !ok {
		return e.Cancelled("Removal interrupted")
	}

	removed, err := store.DeleteCategory(ctx, id)
	if err != nil {
		return err
	}
	ui.Message("Done! Category '%s' removed with %d products", category.Name, removed)
	return nil
}

func productTable(products []models.Product) console.Table {
	tbl := console.Table{
		Title: "Products that will be removed with the category",
		Columns: []console.Column{
			{Header: "Name"},
			{Header: "Price", Align: console.AlignRight},
			{Header: "Stock", Align: console.AlignRight},
			{Header: "Created"},
			{Header: "Updated"},
		},
	}
	for _, p := range products {
		tbl.AddRow(p.Name, console.Money(p.Price), console.Count(p.Stock), console.Date(p.CreatedAt), console.Stamp(p.UpdatedAt))
	}
	return tbl
}
