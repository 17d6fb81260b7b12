package e

import (
	"errors"
	"fmt"
)

var (
	// Operator aborted: ordinal 0, a negative quantity or a declined confirmation.
	ErrCancelled = errors.New("operation cancelled")

	ErrInvalidSelection = errors.New("invalid selection")
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")

	ErrIncorrectEnvVariable = errors.New("incorrect environment variable")
)

// Wrap prefixes err with msg, keeping it matchable with errors.Is.
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// userError carries the message shown to the operator while still matching a sentinel.
type userError struct {
	kind error
	msg  string
}

func (u *userError) Error() string {
	return u.msg
}

func (u *userError) Is(target error) bool {
	return target == u.kind
}

// Cancelled reports an operator abort. The message is shown as is.
func Cancelled(msg string) error {
	return &userError{kind: ErrCancelled, msg: msg}
}

// Invalid reports a rejected input; nothing was written.
func Invalid(format string, args ...any) error {
	return &userError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

// InvalidSelection reports an ordinal outside the offered options.
func InvalidSelection(choice int) error {
	return &userError{kind: ErrInvalidSelection, msg: fmt.Sprintf("%d is not a valid option", choice)}
}
