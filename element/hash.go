package element

import (
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/docbuf/endian"
	"github.com/arloliu/docbuf/format"
)

// canonicalNaN is the bit pattern every NaN hashes as.
var canonicalNaN = math.Float64bits(math.NaN())

// Hash returns a seeded 64-bit hash of the element's value. Values for which ValuesEqual
// holds hash equally: numbers hash by numeric value whatever their representation, and
// the field name is not part of the hash.
func (e *Element) Hash(seed uint64) uint64 {
	d := xxhash.NewWithSeed(seed)
	hashValue(d, e)

	return d.Sum64()
}

func hashValue(d *xxhash.Digest, e *Element) {
	var scratch [8]byte
	endian.CopyLE(scratch[:], int64(e.CanonicalType()))
	_, _ = d.Write(scratch[:])

	switch e.Type() {
	case format.TypeInt32, format.TypeInt64, format.TypeDouble:
		f := e.NumberDouble()
		bits := math.Float64bits(f)
		switch {
		case math.IsNaN(f):
			bits = canonicalNaN
		case f == 0:
			bits = 0
		}
		endian.CopyLE(scratch[:], bits)
		_, _ = d.Write(scratch[:])
	case format.TypeBoolean:
		_, _ = d.Write(e.valuePrefix(1))
	case format.TypeDateTime, format.TypeTimestamp:
		_, _ = d.Write(e.valuePrefix(8))
	case format.TypeObjectID:
		_, _ = d.Write(e.valuePrefix(format.ObjectIDSize))
	case format.TypeString, format.TypeJavaScript, format.TypeSymbol:
		_, _ = d.Write(e.valueString())
	case format.TypeEmbeddedDocument, format.TypeArray:
		hashDocument(d, e.Value())
	case format.TypeBinary, format.TypeDBPointer, format.TypeRegex:
		_, _ = d.Write(e.Value())
	case format.TypeCodeWithScope:
		code, rest := e.codeWithScopeRaw()
		code, _ = splitCString(code)
		scope, _ := splitCString(legacyScope(rest))
		_, _ = d.Write(code)
		_, _ = d.Write([]byte{0})
		_, _ = d.Write(scope)
	}
}

// hashDocument hashes each element's name and value in order, stopping where
// CompareDocuments would.
func hashDocument(d *xxhash.Digest, doc []byte) {
	list := documentBody(doc)
	for {
		e, n := nextElement(list)
		if e.EOO() {
			break
		}
		_, _ = d.Write(e.FieldNameBytes())
		_, _ = d.Write([]byte{0})
		hashValue(d, &e)
		list = list[n:]
	}
	_, _ = d.Write([]byte{0})
}
