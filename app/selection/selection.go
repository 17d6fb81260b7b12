// Package selection lets the operator pick one record from a numbered list.
//
// Ordinals are assigned 1..N in the order the items are given and are only meaningful
// for the interaction that produced them. Ordinal 0 is always the cancel row.
package selection

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mytheresa/go-inventory/app/console"
	"github.com/mytheresa/go-inventory/pkg/e"
)

type Item struct {
	ID    uuid.UUID
	Cells []string
}

type List struct {
	Title       string
	Caption     string
	CancelLabel string
	Prompt      string
	Columns     []console.Column
	Items       []Item
}

// Choose renders the list with an ordinal column and a trailing cancel row, reads one
// ordinal and resolves it to the item's ID.
func Choose(ui console.UI, l List) (uuid.UUID, error) {
	tbl := console.Table{
		Title:   l.Title,
		Caption: l.Caption,
		Columns: append([]console.Column{{Header: "Id", Align: console.AlignRight}}, l.Columns...),
	}

	ids := make([]uuid.UUID, len(l.Items))
	for i, item := range l.Items {
		ids[i] = item.ID
		tbl.AddRow(append([]string{strconv.Itoa(i + 1)}, item.Cells...)...)
	}
	tbl.AddRow("0", l.CancelLabel)
	ui.Table(tbl)

	choice, err := ui.AskInt(l.Prompt, 0)
	if err != nil {
		return uuid.Nil, err
	}
	return Resolve(choice, ids)
}

// Resolve maps an ordinal onto ids. 0 cancels; anything outside 1..len(ids) is an
// invalid selection.
func Resolve(choice int, ids []uuid.UUID) (uuid.UUID, error) {
	if choice == 0 {
		return uuid.Nil, e.ErrCancelled
	}
	if choice < 0 || choice > len(ids) {
		return uuid.Nil, e.InvalidSelection(choice)
	}
	return ids[choice-1], nil
}

// Caption joins the non-empty parts with ". ".
func Caption(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ". ")
}
