package products

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mytheresa/go-inventory/app/console"
	"github.com/mytheresa/go-inventory/app/inventory"
	"github.com/mytheresa/go-inventory/app/selection"
	"github.com/mytheresa/go-inventory/models"
)

const negativeStockCaption = "(*) Products with negative stock"

// Options customise the wording of one product selection.
type Options struct {
	Title       string
	CancelLabel string
	Prompt      string
	ActiveOnly  bool
}

func displayName(p models.Product) string {
	if p.Stock < 0 {
		return p.Name + " (*)"
	}
	return p.Name
}

// columns lists the product columns; the active flag is dropped when only active
// products can appear.
func columns(withActive bool) []console.Column {
	cols := []console.Column{{Header: "Name"}}
	if withActive {
		cols = append(cols, console.Column{Header: "Active?", Align: console.AlignCenter})
	}
	return append(cols,
		console.Column{Header: "Price", Align: console.AlignRight},
		console.Column{Header: "Stock", Align: console.AlignRight},
		console.Column{Header: "Created"},
		console.Column{Header: "Updated"},
		console.Column{Header: "Category"},
	)
}

func cells(p models.Product, withActive bool) []string {
	row := []string{displayName(p)}
	if withActive {
		row = append(row, console.YesNo(p.Active))
	}
	return append(row,
		console.Money(p.Price),
		console.Count(p.Stock),
		console.Date(p.CreatedAt),
		console.Stamp(p.UpdatedAt),
		p.Category.Name,
	)
}

// Select asks for a partial name, lists matching products by name and returns the one
// the operator picked.
func Select(ctx context.Context, store inventory.Store, ui console.UI, opts Options) (uuid.UUID, error) {
	partial, err := ui.AskText("Enter part of the product name (enter for all)", "")
	if err != nil {
		return uuid.Nil, err
	}

	found, err := store.ListProducts(ctx, models.ProductFilters{
		NameContains: partial,
		ActiveOnly:   opts.ActiveOnly,
	})
	if err != nil {
		return uuid.Nil, err
	}

	var contains, active string
	if partial != "" {
		contains = fmt.Sprintf("Only products containing '%s'", partial)
	}
	if opts.ActiveOnly {
		active = "Only active products"
	}

	list := selection.List{
		Title:       opts.Title,
		Caption:     selection.Caption(contains, active),
		CancelLabel: opts.CancelLabel,
		Prompt:      opts.Prompt,
		Columns:     columns(!opts.ActiveOnly),
	}
	for _, p := range found {
		list.Items = append(list.Items, selection.Item{ID: p.ID, Cells: cells(p, !opts.ActiveOnly)})
	}

	return selection.Choose(ui, list)
}

type List struct{}

func (List) Title() string { return "List registered products" }

func (List) Execute(ctx context.Context, store inventory.Store, ui console.UI) error {
	found, err := store.ListProducts(ctx, models.ProductFilters{})
	if err != nil {
		return err
	}

	tbl := console.Table{Title: "Registered products", Caption: negativeStockCaption, Columns: columns(true)}
	for _, p := range found {
		tbl.AddRow(cells(p, true)...)
	}
	ui.Table(tbl)
	return nil
}

type ListOutOfStock struct{}

func (ListOutOfStock) Title() string { return "List products without stock" }

func (ListOutOfStock) Execute(ctx context.Context, store inventory.Store, ui console.UI) error {
	found, err := store.ListProducts(ctx, models.ProductFilters{ActiveOnly: true, OutOfStockOnly: true})
	if err != nil {
		return err
	}

	tbl := console.Table{Title: "Active products without stock", Caption: negativeStockCaption, Columns: columns(false)}
	for _, p := range found {
		tbl.AddRow(cells(p, false)...)
	}
	ui.Table(tbl)
	return nil
}
