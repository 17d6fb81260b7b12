package console

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTerminal(lines ...string) (*Terminal, *bytes.Buffer) {
	var out bytes.Buffer
	return NewTerminal(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out), &out
}

func TestAskInt(t *testing.T) {
	testCases := []struct {
		name     string
		input    []string
		def      int
		expected int
		checkOut func(t *testing.T, out string)
	}{
		{name: "Empty answer takes default", input: []string{""}, def: 3, expected: 3},
		{name: "Negative number", input: []string{"-4"}, expected: -4},
		{
			name:     "Garbage re-prompts",
			input:    []string{"abc", "7"},
			expected: 7,
			checkOut: func(t *testing.T, out string) {
				assert.Contains(t, out, "Please enter a valid integer number")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			term, out := newTerminal(tc.input...)

			// Act
			n, err := term.AskInt("How many?", tc.def)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tc.expected, n)
			if tc.checkOut != nil {
				tc.checkOut(t, out.String())
			}
		})
	}
}

func TestAskDecimal(t *testing.T) {
	term, out := newTerminal("", "x", "12,5")

	d, err := term.AskDecimal("Price", decimal.RequireFromString("9.9"))
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("9.9")))
	assert.Contains(t, out.String(), "Price (9.90): ")

	d, err = term.AskDecimal("Price", decimal.Zero)
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("12.5")))
	assert.Contains(t, out.String(), "Please enter a valid number")
}

func TestAskConfirm(t *testing.T) {
	term, _ := newTerminal("", "yes", "N", "maybe", "s")

	answers := []bool{}
	for _, def := range []bool{true, false, true, false} {
		ok, err := term.AskConfirm("Sure?", def)
		require.NoError(t, err)
		answers = append(answers, ok)
	}

	assert.Equal(t, []bool{true, true, false, true}, answers)
}

func TestAskTextAndEOF(t *testing.T) {
	term := NewTerminal(strings.NewReader("Cola"), io.Discard)

	name, err := term.AskText("Name", "")
	require.NoError(t, err)
	assert.Equal(t, "Cola", name)

	_, err = term.AskText("Name", "")
	assert.ErrorIs(t, err, io.EOF)
}

func TestTableRendersTitleCaptionAndShortRows(t *testing.T) {
	term, out := newTerminal()

	tbl := Table{
		Title:   "Products",
		Caption: "Only active products",
		Columns: []Column{{Header: "Id", Align: AlignRight}, {Header: "Name"}, {Header: "Price", Align: AlignRight}},
	}
	tbl.AddRow("1", "Cola", Money(decimal.RequireFromString("10")))
	tbl.AddRow("0", "Cancel")

	term.Table(tbl)

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "Products\n"))
	assert.Contains(t, s, "Cola")
	assert.Contains(t, s, "$ 10.00")
	assert.Contains(t, s, "Cancel")
	assert.Contains(t, s, "Only active products")
}

func TestRuleWidthCountsCharacters(t *testing.T) {
	plain, plainOut := newTerminal()
	accented, accentedOut := newTerminal()

	plain.Rule("Preco")
	accented.Rule("Preço")

	assert.Equal(t,
		utf8.RuneCountInString(plainOut.String()),
		utf8.RuneCountInString(accentedOut.String()))
}

func TestFormatters(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-09", Date(ts))
	assert.Equal(t, "2024-03-09 14:05", Stamp(ts))
	assert.Equal(t, "   5", Count(5))
	assert.Equal(t, "Y", YesNo(true))
	assert.Equal(t, "$ -1.50", Money(decimal.RequireFromString("-1.5")))
}
