// Package element reads single encoded fields without copying them.
//
// An encoded element is a type tag byte, a NUL terminated field name and a value whose
// layout depends on the tag:
//
//	element := tag:uint8 [ name:cstring value ]   ; tag == EOO has no name and no value
//
// Element is a read-only view over such bytes. It never copies or pins memory: the
// bytes belong to whoever produced them, usually a buffer.Buffer. The field name length
// and the total encoded size are computed on first use and cached in the view.
//
// # Accessor Families
//
//   - Typed accessors (Int32, StringValue, Binary, ...) require the exact tag and return
//     a *errs.TypeMismatchError otherwise.
//   - Raw accessors (RawInt32, RawDouble, ...) skip the tag check and panic on short data.
//   - Coercions (NumberInt64, SafeNumberInt64, StringSafe, Truthy, ...) are total and
//     return a zero value for tags they do not understand.
//
// # Ordering
//
// Compare implements the well-ordered comparison used for sort keys: canonical type rank
// first (all numeric tags share one rank), then field name, then a type specific value
// comparison.
//
// # Lifetime
//
// A view over a buffer's bytes is invalid once the buffer grows or is reset. Views made
// with FromSource remember the buffer generation they were created at and report
// errs.ErrStaleView from Check after the buffer reallocated.
package element

import (
	"bytes"

	"github.com/arloliu/docbuf/errs"
	"github.com/arloliu/docbuf/format"
)

// Source is a byte region that can tell when its backing memory was replaced.
// *buffer.Buffer and *buffer.Aligned implement it.
type Source interface {
	Bytes() []byte
	Generation() uint64
}

// Element is a view of one encoded field.
//
// The zero value is the terminal EOO element. Methods have pointer receivers because
// they fill the size caches; keep an Element in a variable when calling them.
type Element struct {
	data []byte

	// Cached sizes; zero means not computed yet. A non-EOO element always has
	// nameSize >= 1 and totalSize >= 2.
	nameSize  int
	totalSize int

	src Source
	gen uint64
}

// New returns a view of the element starting at data[0].
//
// Nothing is validated up front. Scans never read past the end of data.
func New(data []byte) Element {
	e := Element{data: data}
	if e.Type() == format.TypeEOO {
		e.totalSize = 1
	}

	return e
}

// NewBounded returns a view of the element at data[0] whose encoding must fit in maxLen
// bytes. The field name is scanned eagerly and errs.ErrInvalidFieldName is returned if
// its terminator is not found within the bound.
func NewBounded(data []byte, maxLen int) (Element, error) {
	if maxLen > len(data) {
		maxLen = len(data)
	}
	if maxLen < 1 {
		return Element{}, errs.ErrInsufficientBytes
	}

	e := New(data)
	if e.EOO() {
		return e, nil
	}

	i := bytes.IndexByte(data[1:maxLen], 0)
	if i < 0 {
		return Element{}, errs.ErrInvalidFieldName
	}
	e.nameSize = i + 1

	return e, nil
}

// FromSource returns a view of the element at off inside src and binds it to the current
// generation of src.
func FromSource(src Source, off int) Element {
	e := New(src.Bytes()[off:])
	e.src = src
	e.gen = src.Generation()

	return e
}

// Stale reports whether the source the view was created from has since reallocated.
// Views not created with FromSource are never stale.
func (e *Element) Stale() bool {
	return e.src != nil && e.src.Generation() != e.gen
}

// Check returns errs.ErrStaleView if the view is stale.
func (e *Element) Check() error {
	if e.Stale() {
		return errs.ErrStaleView
	}

	return nil
}

// Type returns the tag.
func (e *Element) Type() format.Type {
	if len(e.data) == 0 {
		return format.TypeEOO
	}

	return format.Type(e.data[0])
}

// EOO reports whether this is the terminal element.
func (e *Element) EOO() bool { return e.Type() == format.TypeEOO }

// OK reports whether the element exists, i.e. is not EOO.
func (e *Element) OK() bool { return !e.EOO() }

// FieldNameSize returns the length of the field name including its terminator, or 0
// for EOO. If the data holds no terminator the name is taken to run to the end of data.
func (e *Element) FieldNameSize() int {
	if e.nameSize > 0 {
		return e.nameSize
	}
	if e.EOO() {
		return 0
	}

	i := bytes.IndexByte(e.data[1:], 0)
	if i < 0 {
		i = len(e.data) - 1
	}
	e.nameSize = i + 1

	return e.nameSize
}

// FieldNameBytes returns the field name without its terminator. It aliases the element data.
func (e *Element) FieldNameBytes() []byte {
	n := e.FieldNameSize()
	if n == 0 {
		return nil
	}

	return e.data[1:n]
}

// FieldName returns the field name, or "" for EOO.
func (e *Element) FieldName() string {
	return string(e.FieldNameBytes())
}

func (e *Element) valueOffset() int {
	return 1 + e.FieldNameSize()
}

// Value returns the encoded value bytes. When the size of the element cannot be
// determined the remainder of the data is returned.
func (e *Element) Value() []byte {
	off := e.valueOffset()
	if off > len(e.data) {
		return nil
	}
	if n, err := e.Size(); err == nil && n <= len(e.data) {
		return e.data[off:n:n]
	}

	return e.data[off:]
}

// ValueSize returns the length of the value bytes.
func (e *Element) ValueSize() (int, error) {
	n, err := e.Size()
	if err != nil {
		return 0, err
	}

	return n - e.valueOffset(), nil
}

// Raw returns the whole encoded element.
func (e *Element) Raw() ([]byte, error) {
	n, err := e.Size()
	if err != nil {
		return nil, err
	}
	if n > len(e.data) {
		return nil, errs.ErrInsufficientBytes
	}

	return e.data[:n:n], nil
}

// IsNumber reports whether the tag is Int32, Int64 or Double.
func (e *Element) IsNumber() bool { return e.Type().IsNumber() }

// IsNull reports whether the tag is Null.
func (e *Element) IsNull() bool { return e.Type() == format.TypeNull }

// IsBoolean reports whether the tag is Boolean.
func (e *Element) IsBoolean() bool { return e.Type() == format.TypeBoolean }

// IsDocument reports whether the value is itself a document: an embedded document or an array.
func (e *Element) IsDocument() bool {
	t := e.Type()
	return t == format.TypeEmbeddedDocument || t == format.TypeArray
}

// MayEncapsulate reports whether the value can contain other elements.
func (e *Element) MayEncapsulate() bool {
	return e.IsDocument() || e.Type() == format.TypeCodeWithScope
}

// IsSimpleType reports whether the value is a number, string, boolean, date or object ID.
func (e *Element) IsSimpleType() bool {
	switch e.Type() {
	case format.TypeInt32, format.TypeInt64, format.TypeDouble, format.TypeString,
		format.TypeBoolean, format.TypeDateTime, format.TypeObjectID:
		return true
	default:
		return false
	}
}
