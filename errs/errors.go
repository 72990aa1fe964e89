// Package errs defines the error values shared by the docbuf packages.
//
// Three classes exist:
//   - input/format errors for malformed or truncated encoded bytes, returned to the caller;
//   - typed-access mismatches, returned as *TypeMismatchError;
//   - fatal conditions (allocation failure, size ceilings), raised as a panic carrying
//     *FatalError and never returned alongside partially written data.
package errs

import (
	"errors"
	"fmt"

	"github.com/arloliu/docbuf/format"
)

// Input/format errors.
var (
	ErrInvalidFieldName    = errors.New("invalid field name: no terminator within bound")
	ErrInsufficientBytes   = errors.New("insufficient bytes to calculate element size")
	ErrInvalidRegex        = errors.New("invalid regex string")
	ErrInvalidRegexOptions = errors.New("invalid regex options string")
	ErrUnknownType         = errors.New("unknown element type")
	ErrInvalidLength       = errors.New("invalid length prefix")
	ErrInvalidDocument     = errors.New("invalid document")
	ErrStaleView           = errors.New("element view used after its buffer was reallocated")
)

// Access errors.
var (
	ErrTypeMismatch        = errors.New("typed access mismatch")
	ErrDecoupleUnsupported = fmt.Errorf("decouple of inline buffer: %w", errors.ErrUnsupported)
	ErrInvalidOption       = errors.New("invalid option")
)

// Fatal conditions.
var (
	ErrBufferTooLarge  = errors.New("buffer growth past size ceiling")
	ErrOutOfMemory     = errors.New("out of memory")
	ErrAlignedTooLarge = errors.New("aligned buffer request past size domain")
)

// Block codec errors.
var (
	ErrInvalidBlockHeader     = errors.New("invalid compressed block header")
	ErrUnsupportedCompression = errors.New("unsupported compression type")
	ErrBlockSizeMismatch      = errors.New("decompressed size does not match block header")
)

// TypeMismatchError reports a tag-specific accessor called on an element with another tag.
type TypeMismatchError struct {
	Expected  format.Type
	Actual    format.Type
	FieldName string
}

func (e *TypeMismatchError) Error() string {
	if e.Actual == format.TypeEOO {
		return fmt.Sprintf("field not found, expected type %s", e.Expected)
	}

	return fmt.Sprintf("wrong type for field (%s) %s != %s", e.FieldName, e.Actual, e.Expected)
}

// Is makes errors.Is(err, ErrTypeMismatch) hold for every mismatch.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// FatalError is the panic value for unrecoverable conditions.
type FatalError struct {
	Err error
	Msg string
}

// Fatalf builds a FatalError around one of the fatal sentinels.
func Fatalf(err error, format string, args ...any) *FatalError {
	return &FatalError{Err: err, Msg: fmt.Sprintf(format, args...)}
}

func (e *FatalError) Error() string {
	if e.Msg == "" {
		return e.Err.Error()
	}

	return e.Err.Error() + ": " + e.Msg
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err carries a fatal condition.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
