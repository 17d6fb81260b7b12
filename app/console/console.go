// Package console renders tables and reads typed answers from the operator.
package console

import (
	"github.com/shopspring/decimal"
)

type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

type Column struct {
	Header string
	Align  Align
}

// Table is a titled grid of already formatted cells.
type Table struct {
	Title   string
	Caption string
	Columns []Column
	Rows    [][]string
}

func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

type Display interface {
	Table(t Table)
	Message(format string, args ...any)
	Error(format string, args ...any)
	Rule(title string)
}

// Prompt asks one question at a time. An empty answer takes the default.
type Prompt interface {
	AskText(label, def string) (string, error)
	AskInt(label string, def int) (int, error)
	AskDecimal(label string, def decimal.Decimal) (decimal.Decimal, error)
	AskConfirm(label string, def bool) (bool, error)
}

type UI interface {
	Display
	Prompt
}
