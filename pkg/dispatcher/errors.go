package dispatcher

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-qrform/pkg/content"
)

// EncodingError wraps a failure of the encoder collaborator.
type EncodingError struct {
	Type  content.TypeID
	Cause error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("dispatcher: encode %s: %v", e.Type, e.Cause)
}

func (e *EncodingError) Unwrap() error { return e.Cause }

// ErrMalformedRequest marks input that could not be decoded at all.
var ErrMalformedRequest = errors.New("dispatcher: malformed request")

// Kind classifies build errors for exit codes, HTTP statuses and metrics.
type Kind int

const (
	KindNone Kind = iota
	KindValidation
	KindUnknownType
	KindEncoding
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "ok"
	case KindValidation:
		return "validation"
	case KindUnknownType:
		return "unknown_type"
	case KindEncoding:
		return "encoding"
	default:
		return "internal"
	}
}

// ExitCode maps k to a process exit status.
func (k Kind) ExitCode() int {
	switch k {
	case KindNone:
		return 0
	case KindValidation:
		return 2
	case KindUnknownType:
		return 3
	case KindEncoding:
		return 4
	default:
		return 1
	}
}

// ErrorKind classifies err. Encoding failures win over anything they wrap.
func ErrorKind(err error) Kind {
	if err == nil {
		return KindNone
	}
	var encErr *EncodingError
	if errors.As(err, &encErr) {
		return KindEncoding
	}
	if content.IsUnknownType(err) {
		return KindUnknownType
	}
	if content.IsValidation(err) {
		return KindValidation
	}
	return KindInternal
}
