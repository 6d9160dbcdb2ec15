package calc

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKey means a territory or vehicle category is not in the rate tables.
	ErrUnknownKey = errors.New("unknown key")

	// ErrOutOfRange means a numeric input is outside its legal domain.
	ErrOutOfRange = errors.New("input out of range")

	// ErrNoBand means no transport band covers the given horsepower. It is
	// reported wrapped in ErrOutOfRange.
	ErrNoBand = errors.New("no matching band")
)

// InputError describes a rejected input. Hint is a short prompt a caller can
// show the user as-is.
type InputError struct {
	Kind   error // ErrUnknownKey or ErrOutOfRange
	Field  string
	Value  string
	Reason string
	Hint   string
	cause  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s %q: %s", e.Kind, e.Field, e.Value, e.Reason)
}

// Unwrap exposes both the taxonomy sentinel and the underlying cause.
func (e *InputError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Kind, e.cause}
	}
	return []error{e.Kind}
}

func unknownKey(field, value string, cause error, hint string) *InputError {
	return &InputError{
		Kind:   ErrUnknownKey,
		Field:  field,
		Value:  value,
		Reason: "not present in rate tables",
		Hint:   hint,
		cause:  cause,
	}
}

func outOfRange(field string, value int, reason, hint string) *InputError {
	return &InputError{
		Kind:   ErrOutOfRange,
		Field:  field,
		Value:  fmt.Sprintf("%d", value),
		Reason: reason,
		Hint:   hint,
	}
}
