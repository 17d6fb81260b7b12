package console

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func Money(d decimal.Decimal) string {
	return "$ " + d.StringFixed(2)
}

func Date(t time.Time) string {
	return t.Format("2006-01-02")
}

func Stamp(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

func Count(n int) string {
	return fmt.Sprintf("%4d", n)
}

func YesNo(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}
