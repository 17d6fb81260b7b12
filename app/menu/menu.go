// Package menu dispatches numbered menu choices to inventory operations and reports
// their outcome to the operator.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mytheresa/go-inventory/app/categories"
	"github.com/mytheresa/go-inventory/app/console"
	"github.com/mytheresa/go-inventory/app/inventory"
	"github.com/mytheresa/go-inventory/app/products"
	"github.com/mytheresa/go-inventory/pkg/e"
	"github.com/mytheresa/go-inventory/pkg/logger"
)

// Command is a registered operation under a stable id such as "products.sell".
type Command struct {
	ID        string
	Operation inventory.Operation
}

// Registry keeps commands in registration order, which is the order of the menu.
type Registry struct {
	commands []Command
	index    map[string]int
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

func (r *Registry) Register(id string, op inventory.Operation) error {
	if id == "" || op == nil {
		return fmt.Errorf("menu: command %q needs an id and an operation", id)
	}
	if _, ok := r.index[id]; ok {
		return fmt.Errorf("menu: command %q already registered", id)
	}
	r.index[id] = len(r.commands)
	r.commands = append(r.commands, Command{ID: id, Operation: op})
	return nil
}

func (r *Registry) Lookup(id string) (inventory.Operation, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.commands[i].Operation, true
}

func (r *Registry) Commands() []Command {
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Default registers every inventory operation.
func Default() *Registry {
	r := NewRegistry()
	for _, c := range []Command{
		{"products.list", products.List{}},
		{"products.out_of_stock", products.ListOutOfStock{}},
		{"categories.list", categories.List{}},
		{"categories.add", categories.Add{}},
		{"products.add", products.Add{}},
		{"products.alter", products.Alter{}},
		{"products.sell", products.Sell{}},
		{"products.restock", products.Restock{}},
		{"products.reprice", products.Reprice{}},
		{"products.reprice_all", products.RepriceAll{}},
		{"products.toggle_active", products.ToggleActive{}},
		{"products.remove", products.Remove{}},
		{"categories.alter", categories.Alter{}},
		{"categories.remove", categories.Remove{}},
	} {
		if err := r.Register(c.ID, c.Operation); err != nil {
			panic(err)
		}
	}
	return r
}

type Menu struct {
	registry *Registry
	log      logger.Logger
}

func New(registry *Registry, log logger.Logger) *Menu {
	return &Menu{registry: registry, log: log}
}

// Run shows the menu until the operator picks 0 or the input ends. Failed operations are
// reported and the loop goes on.
func (m *Menu) Run(ctx context.Context, store inventory.Store, ui console.UI) error {
	commands := m.registry.Commands()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ui.Rule("Choose an option")
		for i, c := range commands {
			ui.Message("%2d: %s", i+1, c.Operation.Title())
		}
		ui.Message("%2d: %s", 0, "Exit")

		choice, err := ui.AskInt("Option", 0)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if choice == 0 {
			return nil
		}
		if choice < 0 || choice > len(commands) {
			ui.Error("%s", e.InvalidSelection(choice))
			continue
		}

		cmd := commands[choice-1]
		ui.Rule(cmd.Operation.Title())
		err = cmd.Operation.Execute(ctx, store, ui)
		if errors.Is(err, io.EOF) {
			return nil
		}
		m.report(ui, cmd.ID, err)
	}
}

func (m *Menu) report(ui console.UI, id string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, e.ErrCancelled):
		if err != e.ErrCancelled {
			ui.Message("%s", err)
		}
	case errors.Is(err, e.ErrInvalidSelection),
		errors.Is(err, e.ErrValidation),
		errors.Is(err, e.ErrNotFound):
		ui.Error("%s", err)
	default:
		m.log.Errorf(err, "command %s failed", id)
		ui.Error("Operation failed: %s", err)
	}
}
