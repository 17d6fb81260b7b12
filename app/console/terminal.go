package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

const ruleWidth = 100

// Terminal implements UI over a line-oriented reader and a writer.
type Terminal struct {
	in    *bufio.Reader
	out   io.Writer
	Color bool
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (t *Terminal) Table(tbl Table) {
	if tbl.Title != "" {
		fmt.Fprintln(t.out, tbl.Title)
	}

	headers := make([]string, len(tbl.Columns))
	aligns := make([]int, len(tbl.Columns))
	for i, c := range tbl.Columns {
		headers[i] = c.Header
		switch c.Align {
		case AlignRight:
			aligns[i] = tablewriter.ALIGN_RIGHT
		case AlignCenter:
			aligns[i] = tablewriter.ALIGN_CENTER
		default:
			aligns[i] = tablewriter.ALIGN_LEFT
		}
	}

	tw := tablewriter.NewWriter(t.out)
	tw.SetHeader(headers)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetColumnAlignment(aligns)
	for _, row := range tbl.Rows {
		tw.Append(pad(row, len(headers)))
	}
	tw.Render()

	// tablewriter wraps captions to the table width; printed as is instead.
	if tbl.Caption != "" {
		fmt.Fprintln(t.out, tbl.Caption)
	}
}

func (t *Terminal) Message(format string, args ...any) {
	fmt.Fprintf(t.out, format+"\n", args...)
}

func (t *Terminal) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if t.Color {
		msg = "\x1b[1;31m" + msg + "\x1b[0m"
	}
	fmt.Fprintln(t.out, msg)
}

func (t *Terminal) Rule(title string) {
	side := (ruleWidth - utf8.RuneCountInString(title) - 2) / 2
	if side < 3 {
		side = 3
	}
	bar := strings.Repeat("─", side)
	fmt.Fprintf(t.out, "%s %s %s\n", bar, title, bar)
}

func (t *Terminal) AskText(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(t.out, "%s (%s): ", label, def)
	} else {
		fmt.Fprintf(t.out, "%s: ", label)
	}

	line, err := t.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

func (t *Terminal) AskInt(label string, def int) (int, error) {
	for {
		fmt.Fprintf(t.out, "%s (%d): ", label, def)
		line, err := t.readLine()
		if err != nil {
			return 0, err
		}
		if line == "" {
			return def, nil
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		t.Error("Please enter a valid integer number")
	}
}

func (t *Terminal) AskDecimal(label string, def decimal.Decimal) (decimal.Decimal, error) {
	for {
		fmt.Fprintf(t.out, "%s (%s): ", label, def.StringFixed(2))
		line, err := t.readLine()
		if err != nil {
			return decimal.Zero, err
		}
		if line == "" {
			return def, nil
		}
		d, err := decimal.NewFromString(strings.ReplaceAll(line, ",", "."))
		if err == nil {
			return d, nil
		}
		t.Error("Please enter a valid number")
	}
}

func (t *Terminal) AskConfirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(t.out, "%s [%s]: ", label, hint)
		line, err := t.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes", "s", "sim":
			return true, nil
		case "n", "no", "nao", "não":
			return false, nil
		}
		t.Error("Please enter y or n")
	}
}

// pad fills short rows so every row has one cell per column.
func pad(row []string, n int) []string {
	if len(row) >= n {
		return row
	}
	out := make([]string, n)
	copy(out, row)
	return out
}

// readLine returns the next trimmed line. A final line without newline is still returned;
// io.EOF is reported only when nothing was read.
func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
