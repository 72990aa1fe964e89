package element

import (
	"bytes"
	"cmp"
	"math"

	"github.com/arloliu/docbuf/endian"
	"github.com/arloliu/docbuf/format"
)

// rankUnknown orders tags the encoding does not define before MinKey.
const rankUnknown = -2

// CanonicalType returns the ordering rank of tag t. All numeric tags share one rank.
func CanonicalType(t format.Type) int {
	switch t {
	case format.TypeMinKey:
		return -1
	case format.TypeMaxKey:
		return 127
	case format.TypeEOO, format.TypeUndefined:
		return 0
	case format.TypeNull:
		return 5
	case format.TypeDouble, format.TypeInt32, format.TypeInt64:
		return 10
	case format.TypeString, format.TypeSymbol:
		return 15
	case format.TypeEmbeddedDocument:
		return 20
	case format.TypeArray:
		return 25
	case format.TypeBinary:
		return 30
	case format.TypeObjectID:
		return 35
	case format.TypeBoolean:
		return 40
	case format.TypeDateTime:
		return 45
	case format.TypeTimestamp:
		return 47
	case format.TypeRegex:
		return 50
	case format.TypeDBPointer:
		return 55
	case format.TypeJavaScript:
		return 60
	case format.TypeCodeWithScope:
		return 65
	default:
		return rankUnknown
	}
}

// CanonicalType returns the ordering rank of the element's tag.
func (e *Element) CanonicalType() int {
	return CanonicalType(e.Type())
}

// Compare orders e against other and returns -1, 0 or +1.
//
// Elements are ordered by canonical type rank, then by field name when
// considerFieldName is set, then by value. Numbers of different representations compare
// by numeric value and NaN sorts before every other number.
//
// Two Int32 or two Int64 values compare exactly. Every other numeric pair compares as
// float64, so an Int64 above 2^53 in magnitude can tie with a Double that also ties
// with a different Int64: Int64(2^53) and Int64(2^53+1) both equal Double(2^53) but
// not each other. The order is a strict total order only while Int64 values stay
// within ±2^53.
func (e *Element) Compare(other *Element, considerFieldName bool) int {
	lt, rt := e.Type(), other.Type()
	if c := cmp.Compare(CanonicalType(lt), CanonicalType(rt)); c != 0 && !(lt.IsNumber() && rt.IsNumber()) {
		return c
	}
	if considerFieldName {
		if c := bytes.Compare(e.FieldNameBytes(), other.FieldNameBytes()); c != 0 {
			return c
		}
	}

	return compareValues(e, other)
}

// ValuesEqual reports whether the values compare equal, ignoring field names.
func (e *Element) ValuesEqual(other *Element) bool {
	return e.Compare(other, false) == 0
}

// Equal reports whether both field names and values compare equal.
func (e *Element) Equal(other *Element) bool {
	return e.Compare(other, true) == 0
}

// Less reports whether e orders before other, field names considered.
func (e *Element) Less(other *Element) bool {
	return e.Compare(other, true) < 0
}

// compareValues orders the values of l and r, dispatching on the tag of l. The ranks of
// l and r are equal unless one of the tags is unknown.
func compareValues(l, r *Element) int {
	switch l.Type() {
	case format.TypeEOO, format.TypeUndefined, format.TypeNull, format.TypeMaxKey, format.TypeMinKey:
		return cmp.Compare(l.CanonicalType(), r.CanonicalType())
	case format.TypeBoolean:
		return cmp.Compare(l.valueByte(), r.valueByte())
	case format.TypeTimestamp:
		return cmp.Compare(l.valueUint64(), r.valueUint64())
	case format.TypeDateTime:
		return cmp.Compare(l.valueInt64(), r.valueInt64())
	case format.TypeInt64:
		if r.Type() == format.TypeInt64 {
			return cmp.Compare(l.valueInt64(), r.valueInt64())
		}

		return compareDoubles(l.NumberDouble(), r.NumberDouble())
	case format.TypeInt32:
		if r.Type() == format.TypeInt32 {
			return cmp.Compare(l.valueInt32(), r.valueInt32())
		}

		return compareDoubles(l.NumberDouble(), r.NumberDouble())
	case format.TypeDouble:
		return compareDoubles(l.NumberDouble(), r.NumberDouble())
	case format.TypeObjectID:
		return bytes.Compare(l.valuePrefix(format.ObjectIDSize), r.valuePrefix(format.ObjectIDSize))
	case format.TypeString, format.TypeJavaScript, format.TypeSymbol:
		ls, rs := l.valueString(), r.valueString()
		common := min(len(ls), len(rs))
		if c := bytes.Compare(ls[:common], rs[:common]); c != 0 {
			return c
		}

		return cmp.Compare(len(ls), len(rs))
	case format.TypeEmbeddedDocument, format.TypeArray:
		return CompareDocuments(l.Value(), r.Value())
	case format.TypeDBPointer:
		lv, rv := l.Value(), r.Value()
		if c := cmp.Compare(len(lv), len(rv)); c != 0 {
			return c
		}

		return bytes.Compare(lv, rv)
	case format.TypeBinary:
		lv, rv := l.Value(), r.Value()
		if c := cmp.Compare(len(lv), len(rv)); c != 0 {
			return c
		}

		return bytes.Compare(tail(lv, format.LengthPrefixSize), tail(rv, format.LengthPrefixSize))
	case format.TypeRegex:
		lp, lo := splitCString(l.Value())
		rp, ro := splitCString(r.Value())
		if c := compareCString(lp, rp); c != 0 {
			return c
		}
		lo, _ = splitCString(lo)
		ro, _ = splitCString(ro)

		return compareCString(lo, ro)
	case format.TypeCodeWithScope:
		if c := cmp.Compare(l.CanonicalType(), r.CanonicalType()); c != 0 {
			return c
		}
		lc, lrest := l.codeWithScopeRaw()
		rc, rrest := r.codeWithScopeRaw()
		if c := compareCString(lc, rc); c != 0 {
			return c
		}

		return compareCString(legacyScope(lrest), legacyScope(rrest))
	default:
		return cmp.Compare(l.CanonicalType(), r.CanonicalType())
	}
}

// compareDoubles orders NaN before every number and treats NaN as equal to itself.
func compareDoubles(l, r float64) int {
	switch {
	case l < r:
		return -1
	case l == r:
		return 0
	case math.IsNaN(l):
		if math.IsNaN(r) {
			return 0
		}

		return -1
	default:
		return 1
	}
}

// CompareDocuments orders two encoded documents element by element, field names
// considered. An empty document orders before a non-empty one and a document that ends
// first orders before the other. Malformed input ends the walk at the bad element.
func CompareDocuments(a, b []byte) int {
	la, lb := documentBody(a), documentBody(b)
	for {
		ea, na := nextElement(la)
		eb, nb := nextElement(lb)
		switch {
		case ea.EOO() && eb.EOO():
			return 0
		case ea.EOO():
			return -1
		case eb.EOO():
			return 1
		}
		if c := ea.Compare(&eb, true); c != 0 {
			return c
		}
		la, lb = la[na:], lb[nb:]
	}
}

// documentBody returns the element list of doc, clipped to its declared length.
func documentBody(doc []byte) []byte {
	if len(doc) < format.EmptyDocumentSize {
		return nil
	}
	n := int(endian.ReadLE[int32](doc))
	if n < format.EmptyDocumentSize || n > len(doc) {
		n = len(doc)
	}

	return doc[format.LengthPrefixSize:n]
}

// nextElement returns the element at the start of list and its size. Malformed or
// missing data yields the EOO element.
func nextElement(list []byte) (Element, int) {
	e := New(list)
	if e.EOO() {
		return Element{}, 0
	}
	n, err := e.SizeBounded(len(list))
	if err != nil {
		return Element{}, 0
	}

	return e, n
}

// Helpers below read value bytes without failing; short data reads as zeros.

func (e *Element) valuePrefix(n int) []byte {
	v := e.Value()
	if len(v) >= n {
		return v[:n]
	}
	padded := make([]byte, n)
	copy(padded, v)

	return padded
}

func (e *Element) valueByte() byte       { return e.valuePrefix(1)[0] }
func (e *Element) valueInt32() int32     { return endian.ReadLE[int32](e.valuePrefix(4)) }
func (e *Element) valueInt64() int64     { return endian.ReadLE[int64](e.valuePrefix(8)) }
func (e *Element) valueUint64() uint64   { return endian.ReadLE[uint64](e.valuePrefix(8)) }
func (e *Element) valueFloat64() float64 { return endian.ReadLE[float64](e.valuePrefix(8)) }

// valueString returns the string content of a length-prefixed string value, terminator
// included.
func (e *Element) valueString() []byte {
	return tail(e.Value(), format.LengthPrefixSize)
}

// codeWithScopeRaw returns the code bytes and everything following the code's length
// prefix.
func (e *Element) codeWithScopeRaw() (code, rest []byte) {
	rest = tail(e.Value(), 2*format.LengthPrefixSize)
	code, _ = splitCString(rest)

	return code, rest
}

func tail(b []byte, off int) []byte {
	if off > len(b) {
		return nil
	}

	return b[off:]
}

// splitCString splits b after its first NUL. Without a NUL, all of b is the string.
func splitCString(b []byte) (s, rest []byte) {
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		return b, nil
	}

	return b[:i], b[i+1:]
}

// compareCString compares the C strings at the start of a and b.
func compareCString(a, b []byte) int {
	a, _ = splitCString(a)
	b, _ = splitCString(b)

	return bytes.Compare(a, b)
}
