package element

import (
	"bytes"
	"encoding/hex"
	"time"

	"github.com/arloliu/docbuf/endian"
	"github.com/arloliu/docbuf/errs"
	"github.com/arloliu/docbuf/format"
)

// ObjectID is a 12 byte object identifier.
type ObjectID [format.ObjectIDSize]byte

// String returns the identifier as 24 hex digits.
func (id ObjectID) String() string {
	return hex.EncodeToString(id[:])
}

// chk returns a *errs.TypeMismatchError unless the tag is t.
func (e *Element) chk(t format.Type) error {
	if actual := e.Type(); actual != t {
		return &errs.TypeMismatchError{Expected: t, Actual: actual, FieldName: e.FieldName()}
	}

	return nil
}

// valueN returns the first n value bytes.
func (e *Element) valueN(n int) ([]byte, error) {
	off := e.valueOffset()
	if n < 0 || off+n > len(e.data) {
		return nil, errs.ErrInsufficientBytes
	}

	return e.data[off : off+n : off+n], nil
}

func (e *Element) fixed(t format.Type, n int) ([]byte, error) {
	if err := e.chk(t); err != nil {
		return nil, err
	}

	return e.valueN(n)
}

// lengthPrefixed returns the bytes following the value's int32 length prefix, n of them.
func (e *Element) lengthPrefixed(extra int) (int, []byte, error) {
	head, err := e.valueN(format.LengthPrefixSize)
	if err != nil {
		return 0, nil, err
	}
	n := int(endian.ReadLE[int32](head))
	if n < 0 {
		return 0, nil, errs.ErrInvalidLength
	}
	full, err := e.valueN(format.LengthPrefixSize + n + extra)
	if err != nil {
		return 0, nil, err
	}

	return n, full[format.LengthPrefixSize:], nil
}

// stringLike returns the content of a String, JavaScript or Symbol value.
func (e *Element) stringLike(t format.Type) (string, error) {
	if err := e.chk(t); err != nil {
		return "", err
	}
	n, body, err := e.lengthPrefixed(0)
	if err != nil {
		return "", err
	}
	if n < minStringLength {
		return "", errs.ErrInvalidLength
	}

	return string(body[:n-1]), nil
}

// Int32 returns the value of an Int32 element.
func (e *Element) Int32() (int32, error) {
	v, err := e.fixed(format.TypeInt32, 4)
	if err != nil {
		return 0, err
	}

	return endian.ReadLE[int32](v), nil
}

// Int64 returns the value of an Int64 element.
func (e *Element) Int64() (int64, error) {
	v, err := e.fixed(format.TypeInt64, 8)
	if err != nil {
		return 0, err
	}

	return endian.ReadLE[int64](v), nil
}

// Double returns the value of a Double element.
func (e *Element) Double() (float64, error) {
	v, err := e.fixed(format.TypeDouble, 8)
	if err != nil {
		return 0, err
	}

	return endian.ReadLE[float64](v), nil
}

// Boolean returns the value of a Boolean element. Any non-zero byte is true.
func (e *Element) Boolean() (bool, error) {
	v, err := e.fixed(format.TypeBoolean, 1)
	if err != nil {
		return false, err
	}

	return v[0] != 0, nil
}

// DateTime returns the milliseconds since the Unix epoch of a DateTime element.
func (e *Element) DateTime() (int64, error) {
	v, err := e.fixed(format.TypeDateTime, 8)
	if err != nil {
		return 0, err
	}

	return endian.ReadLE[int64](v), nil
}

// Time returns a DateTime element as a UTC time.
func (e *Element) Time() (time.Time, error) {
	ms, err := e.DateTime()
	if err != nil {
		return time.Time{}, err
	}

	return time.UnixMilli(ms).UTC(), nil
}

// Timestamp returns the seconds and increment of a Timestamp element. The increment is
// stored in the low four bytes and the seconds in the high four.
func (e *Element) Timestamp() (t, i uint32, err error) {
	v, err := e.fixed(format.TypeTimestamp, 8)
	if err != nil {
		return 0, 0, err
	}

	return endian.ReadLE[uint32](v[4:]), endian.ReadLE[uint32](v), nil
}

// TimestampValue returns a Timestamp element as one unsigned 64-bit value.
func (e *Element) TimestampValue() (uint64, error) {
	v, err := e.fixed(format.TypeTimestamp, 8)
	if err != nil {
		return 0, err
	}

	return endian.ReadLE[uint64](v), nil
}

// ObjectID returns the value of an ObjectID element.
func (e *Element) ObjectID() (ObjectID, error) {
	var id ObjectID
	v, err := e.fixed(format.TypeObjectID, format.ObjectIDSize)
	if err != nil {
		return id, err
	}
	copy(id[:], v)

	return id, nil
}

// StringValue returns the content of a String element without its terminator.
func (e *Element) StringValue() (string, error) { return e.stringLike(format.TypeString) }

// Symbol returns the content of a Symbol element.
func (e *Element) Symbol() (string, error) { return e.stringLike(format.TypeSymbol) }

// JavaScript returns the code of a JavaScript element.
func (e *Element) JavaScript() (string, error) { return e.stringLike(format.TypeJavaScript) }

// Binary returns the subtype and payload of a Binary element. The payload aliases the
// element data. Subtype BinaryOld is returned as stored; see BinaryClean.
func (e *Element) Binary() (format.BinarySubtype, []byte, error) {
	if err := e.chk(format.TypeBinary); err != nil {
		return 0, nil, err
	}
	n, body, err := e.lengthPrefixed(1)
	if err != nil {
		return 0, nil, err
	}

	return format.BinarySubtype(body[0]), body[1 : 1+n], nil
}

// BinaryClean is Binary with the legacy BinaryOld layout unwrapped: that subtype repeats
// the payload length in an inner int32, which is skipped.
func (e *Element) BinaryClean() (format.BinarySubtype, []byte, error) {
	st, data, err := e.Binary()
	if err != nil || st != format.BinaryOld {
		return st, data, err
	}
	if len(data) < format.LengthPrefixSize {
		return 0, nil, errs.ErrInvalidLength
	}

	return st, data[format.LengthPrefixSize:], nil
}

// Regex returns the pattern and options of a Regex element.
func (e *Element) Regex() (pattern, options string, err error) {
	if err := e.chk(format.TypeRegex); err != nil {
		return "", "", err
	}
	n, err := e.ValueSize()
	if err != nil {
		return "", "", err
	}
	v, _ := e.valueN(n)
	p := bytes.IndexByte(v, 0)

	return string(v[:p]), string(v[p+1 : n-1]), nil
}

// DBPointer returns the namespace and object ID of a DBPointer element.
func (e *Element) DBPointer() (string, ObjectID, error) {
	var id ObjectID
	if err := e.chk(format.TypeDBPointer); err != nil {
		return "", id, err
	}
	n, body, err := e.lengthPrefixed(format.ObjectIDSize)
	if err != nil {
		return "", id, err
	}
	if n < minStringLength {
		return "", id, errs.ErrInvalidLength
	}
	copy(id[:], body[n:])

	return string(body[:n-1]), id, nil
}

// document returns the raw bytes of an embedded document or array value, length prefix
// and terminator included.
func (e *Element) document(t format.Type) ([]byte, error) {
	if err := e.chk(t); err != nil {
		return nil, err
	}
	head, err := e.valueN(format.LengthPrefixSize)
	if err != nil {
		return nil, err
	}
	n := int(endian.ReadLE[int32](head))
	if n < minDocumentLength {
		return nil, errs.ErrInvalidLength
	}

	return e.valueN(n)
}

// Document returns the raw bytes of an EmbeddedDocument element.
func (e *Element) Document() ([]byte, error) { return e.document(format.TypeEmbeddedDocument) }

// ArrayDocument returns the raw bytes of an Array element.
func (e *Element) ArrayDocument() ([]byte, error) { return e.document(format.TypeArray) }

// codeWithScope splits a CodeWithScope value into the code bytes (terminator included)
// and everything after the code up to the end of the value.
func (e *Element) codeWithScope() (code, rest []byte, err error) {
	if err := e.chk(format.TypeCodeWithScope); err != nil {
		return nil, nil, err
	}
	head, err := e.valueN(2 * format.LengthPrefixSize)
	if err != nil {
		return nil, nil, err
	}
	total := int(endian.ReadLE[int32](head))
	codeLen := int(endian.ReadLE[int32](head[format.LengthPrefixSize:]))
	if total < minCodeWithScopeLength || codeLen < minStringLength ||
		codeLen > total-2*format.LengthPrefixSize {
		return nil, nil, errs.ErrInvalidLength
	}
	v, err := e.valueN(total)
	if err != nil {
		return nil, nil, err
	}
	start := 2 * format.LengthPrefixSize

	return v[start : start+codeLen], v[start:], nil
}

// CodeWithScope returns the code and the raw scope document of a CodeWithScope element.
// The scope starts right after the code's declared length.
func (e *Element) CodeWithScope() (string, []byte, error) {
	code, rest, err := e.codeWithScope()
	if err != nil {
		return "", nil, err
	}

	return string(code[:len(code)-1]), rest[len(code):], nil
}

// CodeWithScopeScopeUnsafe returns the scope bytes of a CodeWithScope element located
// the legacy way: right after the first NUL in the code. Code containing a NUL byte
// makes this point inside the code. Ordering of CodeWithScope values is defined in
// terms of this accessor.
func (e *Element) CodeWithScopeScopeUnsafe() ([]byte, error) {
	_, rest, err := e.codeWithScope()
	if err != nil {
		return nil, err
	}

	return legacyScope(rest), nil
}

func legacyScope(rest []byte) []byte {
	i := bytes.IndexByte(rest, 0)
	if i < 0 {
		return nil
	}

	return rest[i+1:]
}

// NumberAny returns any numeric value as a float64, or a type mismatch for other tags.
func (e *Element) NumberAny() (float64, error) {
	if !e.IsNumber() {
		return 0, &errs.TypeMismatchError{Expected: format.TypeDouble, Actual: e.Type(), FieldName: e.FieldName()}
	}

	return e.NumberDouble(), nil
}

// Null returns a type mismatch unless the element is Null.
func (e *Element) Null() error {
	return e.chk(format.TypeNull)
}

// RawInt32 reads the value as an int32 without checking the tag.
func (e *Element) RawInt32() int32 { return endian.ReadLE[int32](e.data[e.valueOffset():]) }

// RawInt64 reads the value as an int64 without checking the tag.
func (e *Element) RawInt64() int64 { return endian.ReadLE[int64](e.data[e.valueOffset():]) }

// RawDouble reads the value as a float64 without checking the tag.
func (e *Element) RawDouble() float64 { return endian.ReadLE[float64](e.data[e.valueOffset():]) }

// RawBool reads the value as a boolean without checking the tag.
func (e *Element) RawBool() bool { return e.data[e.valueOffset()] != 0 }

// RawDateTime reads the value as milliseconds since the epoch without checking the tag.
func (e *Element) RawDateTime() int64 { return endian.ReadLE[int64](e.data[e.valueOffset():]) }
