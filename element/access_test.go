package element

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/docbuf/errs"
	"github.com/arloliu/docbuf/format"
)

var testOID = ObjectID{0x50, 0x7f, 0x1f, 0x77, 0xbc, 0xf8, 0x6c, 0xd7, 0x99, 0x43, 0x90, 0x11}

func TestFixedAccessors(t *testing.T) {
	require := require.New(t)

	w := newEncoder(t)
	e := w.Int64("n", -5).Element()
	v64, err := e.Int64()
	require.NoError(err)
	require.Equal(int64(-5), v64)
	require.Equal(int64(-5), e.RawInt64())

	e = newEncoder(t).Double("d", 2.5).Element()
	d, err := e.Double()
	require.NoError(err)
	require.InDelta(2.5, d, 0)
	require.InDelta(2.5, e.RawDouble(), 0)

	e = newEncoder(t).Bool("b", true).Element()
	b, err := e.Boolean()
	require.NoError(err)
	require.True(b)
	require.True(e.RawBool())

	e = newEncoder(t).DateTime("t", 1700000000123).Element()
	ms, err := e.DateTime()
	require.NoError(err)
	require.Equal(int64(1700000000123), ms)
	require.Equal(int64(1700000000123), e.RawDateTime())
	tm, err := e.Time()
	require.NoError(err)
	require.Equal(time.UnixMilli(1700000000123).UTC(), tm)

	e = newEncoder(t).Timestamp("ts", 100, 7).Element()
	sec, inc, err := e.Timestamp()
	require.NoError(err)
	require.Equal(uint32(100), sec)
	require.Equal(uint32(7), inc)
	tv, err := e.TimestampValue()
	require.NoError(err)
	require.Equal(uint64(100)<<32|7, tv)

	e = newEncoder(t).ObjectID("_id", testOID).Element()
	id, err := e.ObjectID()
	require.NoError(err)
	require.Equal(testOID, id)
	require.Equal("507f1f77bcf86cd799439011", id.String())

	e = newEncoder(t).Empty(format.TypeNull, "z").Element()
	require.NoError(e.Null())

	e = newEncoder(t).Int32("i", 9).Element()
	require.Equal(int32(9), e.RawInt32())
}

func TestStringAccessors(t *testing.T) {
	require := require.New(t)

	e := newEncoder(t).String(format.TypeSymbol, "s", "sym").Element()
	s, err := e.Symbol()
	require.NoError(err)
	require.Equal("sym", s)

	e = newEncoder(t).String(format.TypeJavaScript, "js", "return 1").Element()
	s, err = e.JavaScript()
	require.NoError(err)
	require.Equal("return 1", s)

	e = newEncoder(t).String(format.TypeString, "e", "").Element()
	s, err = e.StringValue()
	require.NoError(err)
	require.Empty(s)
}

func TestTypeMismatch(t *testing.T) {
	require := require.New(t)

	e := newEncoder(t).Int32("count", 1).Element()

	_, err := e.StringValue()
	require.ErrorIs(err, errs.ErrTypeMismatch)

	var mismatch *errs.TypeMismatchError
	require.True(errors.As(err, &mismatch))
	require.Equal(format.TypeString, mismatch.Expected)
	require.Equal(format.TypeInt32, mismatch.Actual)
	require.Equal("count", mismatch.FieldName)

	_, err = e.Double()
	require.ErrorIs(err, errs.ErrTypeMismatch)
	require.ErrorIs(e.Null(), errs.ErrTypeMismatch)

	var eoo Element
	_, err = eoo.Int32()
	require.ErrorContains(err, "field not found")
}

func TestBinary(t *testing.T) {
	require := require.New(t)

	e := newEncoder(t).Binary("bin", format.BinaryUUID, []byte{1, 2, 3, 4}).Element()
	st, data, err := e.Binary()
	require.NoError(err)
	require.Equal(format.BinaryUUID, st)
	require.Equal([]byte{1, 2, 3, 4}, data)

	st, data, err = e.BinaryClean()
	require.NoError(err)
	require.Equal(format.BinaryUUID, st)
	require.Equal([]byte{1, 2, 3, 4}, data)

	// The old subtype repeats the payload length inside the payload.
	e = newEncoder(t).Binary("old", format.BinaryOld, []byte{2, 0, 0, 0, 0xaa, 0xbb}).Element()
	st, data, err = e.BinaryClean()
	require.NoError(err)
	require.Equal(format.BinaryOld, st)
	require.Equal([]byte{0xaa, 0xbb}, data)

	_, data, err = e.Binary()
	require.NoError(err)
	require.Len(data, 6)

	e = newEncoder(t).Binary("short", format.BinaryOld, []byte{1}).Element()
	_, _, err = e.BinaryClean()
	require.ErrorIs(err, errs.ErrInvalidLength)
}

func TestRegexAndDBPointer(t *testing.T) {
	require := require.New(t)

	e := newEncoder(t).Regex("r", "^a.*z$", "imx").Element()
	p, o, err := e.Regex()
	require.NoError(err)
	require.Equal("^a.*z$", p)
	require.Equal("imx", o)

	e = newEncoder(t).Regex("r", "", "").Element()
	p, o, err = e.Regex()
	require.NoError(err)
	require.Empty(p)
	require.Empty(o)

	e = newEncoder(t).DBPointer("ref", "db.coll", testOID).Element()
	ns, id, err := e.DBPointer()
	require.NoError(err)
	require.Equal("db.coll", ns)
	require.Equal(testOID, id)
}

func TestDocuments(t *testing.T) {
	require := require.New(t)

	w := newEncoder(t).Doc(format.TypeEmbeddedDocument, "sub", func(w *encoder) {
		w.Int32("a", 1)
	})
	e := w.Element()
	doc, err := e.Document()
	require.NoError(err)
	require.Len(doc, 4+7+1)
	require.Equal(byte(0), doc[len(doc)-1])

	_, err = e.ArrayDocument()
	require.ErrorIs(err, errs.ErrTypeMismatch)

	e = newEncoder(t).Doc(format.TypeArray, "arr", nil).Element()
	doc, err = e.ArrayDocument()
	require.NoError(err)
	require.Equal([]byte{5, 0, 0, 0, 0}, doc)
}

func TestCodeWithScope(t *testing.T) {
	require := require.New(t)

	e := newEncoder(t).CodeWithScope("f", "return x", func(w *encoder) {
		w.Int32("x", 1)
	}).Element()

	code, scope, err := e.CodeWithScope()
	require.NoError(err)
	require.Equal("return x", code)
	require.Len(scope, 4+7+1)
	require.NoError(Validate(scope))

	unsafe, err := e.CodeWithScopeScopeUnsafe()
	require.NoError(err)
	require.Equal(scope, unsafe)
}

func TestCodeWithScopeEmbeddedNUL(t *testing.T) {
	require := require.New(t)

	e := newEncoder(t).CodeWithScope("f", "a\x00b", nil).Element()

	code, scope, err := e.CodeWithScope()
	require.NoError(err)
	require.Equal("a\x00b", code)
	require.Equal([]byte{5, 0, 0, 0, 0}, scope)

	// The legacy accessor stops at the first NUL inside the code.
	unsafe, err := e.CodeWithScopeScopeUnsafe()
	require.NoError(err)
	require.Equal(append([]byte("b\x00"), scope...), unsafe)
}

func TestNumberAny(t *testing.T) {
	require := require.New(t)

	e := newEncoder(t).Int64("n", 12).Element()
	f, err := e.NumberAny()
	require.NoError(err)
	require.InDelta(12.0, f, 0)

	e = newEncoder(t).String(format.TypeString, "s", "12").Element()
	_, err = e.NumberAny()
	require.ErrorIs(err, errs.ErrTypeMismatch)
}

func TestAccessorsOnTruncatedData(t *testing.T) {
	require := require.New(t)

	full := newEncoder(t).String(format.TypeString, "s", "hello").Bytes()
	e := New(full[:len(full)-2])
	_, err := e.StringValue()
	require.ErrorIs(err, errs.ErrInsufficientBytes)

	full = newEncoder(t).Int64("n", 1).Bytes()
	e = New(full[:5])
	_, err = e.Int64()
	require.ErrorIs(err, errs.ErrInsufficientBytes)
	require.NotPanics(func() { e.NumberInt64() })
}
