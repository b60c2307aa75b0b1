package content

import (
	"errors"
	"fmt"
)

// UnknownTypeError reports a content type outside the registered set.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("content: QR type %q not supported", e.Name)
}

// ValidationError reports one rejected input. Field is the field name, or a
// dotted path such as "style.fill" for options outside the content fields.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("content: invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsUnknownType reports whether err is, or wraps, an UnknownTypeError.
func IsUnknownType(err error) bool {
	var target *UnknownTypeError
	return errors.As(err, &target)
}
