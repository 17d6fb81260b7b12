package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jimlawless/whereami"
	"github.com/mytheresa/go-inventory/pkg/e"
	"gorm.io/gorm"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = fmt.Errorf("product %w", e.ErrNotFound)
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = fmt.Errorf("category %w", e.ErrNotFound)
)

// wrapDB annotates storage failures with the caller location. Domain errors pass through
// untouched so their messages reach the operator as written.
func wrapDB(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, e.ErrNotFound) || errors.Is(err, e.ErrCancelled) || errors.Is(err, e.ErrValidation) {
		return err
	}
	return e.Wrap(whereami.WhereAmI(2), err)
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// likePattern builds a case-insensitive "contains" pattern for LOWER(col) LIKE ? ESCAPE '\'.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}
