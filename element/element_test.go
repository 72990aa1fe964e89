package element

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/arloliu/docbuf/buffer"
	"github.com/arloliu/docbuf/errs"
	"github.com/arloliu/docbuf/format"
)

func TestInt32Scenario(t *testing.T) {
	require := require.New(t)

	e := newEncoder(t).Int32("x", 3).Element()
	require.Equal(format.TypeInt32, e.Type())
	require.Equal("x", e.FieldName())
	require.Equal(2, e.FieldNameSize())

	size, err := e.Size()
	require.NoError(err)
	require.Equal(7, size)
	require.InDelta(3.0, e.NumberDouble(), 0)
	require.True(e.OK())
}

func TestStringScenario(t *testing.T) {
	require := require.New(t)

	e := newEncoder(t).String(format.TypeString, "s", "ok").Element()
	require.Equal([]byte{3, 0, 0, 0, 'o', 'k', 0}, e.Value())

	size, err := e.Size()
	require.NoError(err)
	require.Equal(10, size)

	vs, err := e.ValueSize()
	require.NoError(err)
	require.Equal(7, vs)

	s, err := e.StringValue()
	require.NoError(err)
	require.Equal("ok", s)
}

func TestZeroValueIsEOO(t *testing.T) {
	require := require.New(t)

	var e Element
	require.True(e.EOO())
	require.False(e.OK())
	require.Equal(0, e.FieldNameSize())
	require.Empty(e.FieldName())

	size, err := e.Size()
	require.NoError(err)
	require.Equal(1, size)

	eoo := New([]byte{0})
	size, err = eoo.Size()
	require.NoError(err)
	require.Equal(1, size)
	raw, err := eoo.Raw()
	require.NoError(err)
	require.Equal([]byte{0}, raw)
}

func TestValueSizes(t *testing.T) {
	var id ObjectID
	tests := []struct {
		name  string
		write func(*encoder)
		value int
	}{
		{"null", func(w *encoder) { w.Empty(format.TypeNull, "a") }, 0},
		{"undefined", func(w *encoder) { w.Empty(format.TypeUndefined, "a") }, 0},
		{"minkey", func(w *encoder) { w.Empty(format.TypeMinKey, "a") }, 0},
		{"maxkey", func(w *encoder) { w.Empty(format.TypeMaxKey, "a") }, 0},
		{"bool", func(w *encoder) { w.Bool("a", true) }, 1},
		{"int32", func(w *encoder) { w.Int32("a", 1) }, 4},
		{"int64", func(w *encoder) { w.Int64("a", 1) }, 8},
		{"double", func(w *encoder) { w.Double("a", 1) }, 8},
		{"date", func(w *encoder) { w.DateTime("a", 1) }, 8},
		{"timestamp", func(w *encoder) { w.Timestamp("a", 1, 2) }, 8},
		{"oid", func(w *encoder) { w.ObjectID("a", id) }, 12},
		{"symbol", func(w *encoder) { w.String(format.TypeSymbol, "a", "abc") }, 8},
		{"code", func(w *encoder) { w.String(format.TypeJavaScript, "a", "f()") }, 8},
		{"dbpointer", func(w *encoder) { w.DBPointer("a", "db.c", id) }, 4 + 5 + 12},
		{"binary", func(w *encoder) { w.Binary("a", format.BinaryGeneric, []byte{1, 2, 3}) }, 4 + 1 + 3},
		{"regex", func(w *encoder) { w.Regex("a", "^x", "i") }, 3 + 2},
		{"empty doc", func(w *encoder) { w.Doc(format.TypeEmbeddedDocument, "a", nil) }, 5},
		{"array", func(w *encoder) {
			w.Doc(format.TypeArray, "a", func(w *encoder) { w.Int32("0", 1) })
		}, 5 + 7},
		{"code with scope", func(w *encoder) { w.CodeWithScope("a", "f", nil) }, 4 + 4 + 2 + 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newEncoder(t)
			tt.write(w)
			e := w.Element()

			vs, err := e.ValueSize()
			require.NoError(t, err)
			require.Equal(t, tt.value, vs)

			size, err := e.Size()
			require.NoError(t, err)
			require.Equal(t, len(w.Bytes()), size)
			require.Equal(t, 1+2+tt.value, size)
		})
	}
}

func TestSizeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"unknown tag", []byte{0x42, 'a', 0, 1, 2, 3, 4}, errs.ErrUnknownType},
		{"short length prefix", []byte{byte(format.TypeString), 'a', 0, 1, 0, 0}, errs.ErrInsufficientBytes},
		{"zero string length", []byte{byte(format.TypeString), 'a', 0, 0, 0, 0, 0}, errs.ErrInvalidLength},
		{"small document length", []byte{byte(format.TypeEmbeddedDocument), 'a', 0, 4, 0, 0, 0}, errs.ErrInvalidLength},
		{"small code with scope", []byte{byte(format.TypeCodeWithScope), 'a', 0, 13, 0, 0, 0}, errs.ErrInvalidLength},
		{"string past end", []byte{byte(format.TypeString), 'a', 0, 9, 0, 0, 0, 'x', 0}, errs.ErrInsufficientBytes},
		{"int32 past end", []byte{byte(format.TypeInt32), 'a', 0, 1, 0}, errs.ErrInsufficientBytes},
		{"regex no pattern end", []byte{byte(format.TypeRegex), 'a', 0, 'x', 'y'}, errs.ErrInvalidRegex},
		{"regex no options end", []byte{byte(format.TypeRegex), 'a', 0, 'x', 0, 'i'}, errs.ErrInvalidRegexOptions},
		{"no name terminator", []byte{byte(format.TypeInt32), 'a', 'b'}, errs.ErrInvalidFieldName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.data)
			_, err := e.Size()
			require.ErrorIs(t, err, tt.want)

			// A failed computation leaves no cached size behind.
			_, err = e.Size()
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSizeBounded(t *testing.T) {
	require := require.New(t)

	data := newEncoder(t).String(format.TypeString, "s", "hello").Bytes()

	e := New(data)
	_, err := e.SizeBounded(len(data) - 1)
	require.ErrorIs(err, errs.ErrInsufficientBytes)

	// Only three bytes of the length prefix are in bounds.
	_, err = e.SizeBounded(6)
	require.ErrorIs(err, errs.ErrInsufficientBytes)

	n, err := e.SizeBounded(len(data))
	require.NoError(err)
	require.Equal(len(data), n)

	// The cached size still honours a tighter bound.
	_, err = e.SizeBounded(3)
	require.ErrorIs(err, errs.ErrInsufficientBytes)
	n, err = e.SizeBounded(len(data) + 10)
	require.NoError(err)
	require.Equal(len(data), n)

	sized := New(data)
	n, err = sized.Size()
	require.NoError(err)
	_, err = sized.SizeBounded(n - 1)
	require.ErrorIs(err, errs.ErrInsufficientBytes)

	regex := newEncoder(t).Regex("r", "ab", "i").Bytes()
	e = New(regex)
	_, err = e.SizeBounded(len(regex) - 1)
	require.ErrorIs(err, errs.ErrInvalidRegexOptions)
	_, err = e.SizeBounded(5)
	require.ErrorIs(err, errs.ErrInvalidRegex)
}

func TestNewBounded(t *testing.T) {
	require := require.New(t)

	data := newEncoder(t).Int32("field", 1).Bytes()

	e, err := NewBounded(data, len(data))
	require.NoError(err)
	require.Equal("field", e.FieldName())

	_, err = NewBounded(data, 4)
	require.ErrorIs(err, errs.ErrInvalidFieldName)

	_, err = NewBounded(data, 0)
	require.ErrorIs(err, errs.ErrInsufficientBytes)

	e, err = NewBounded([]byte{0, 0xff}, 1)
	require.NoError(err)
	require.True(e.EOO())

	// The bound is clipped to the data.
	e, err = NewBounded(data, 1000)
	require.NoError(err)
	n, err := e.Size()
	require.NoError(err)
	require.Equal(len(data), n)
}

func TestValueAndRaw(t *testing.T) {
	require := require.New(t)

	w := newEncoder(t).Int32("a", 7).Int32("b", 8)
	e := w.Element()
	require.Equal([]byte{7, 0, 0, 0}, e.Value())

	raw, err := e.Raw()
	require.NoError(err)
	require.Equal(w.Bytes()[:7], raw)

	bad := New([]byte{0x42, 'a', 0, 1})
	require.Equal([]byte{1}, bad.Value())
	_, err = bad.Raw()
	require.ErrorIs(err, errs.ErrUnknownType)
}

func TestTypePredicates(t *testing.T) {
	require := require.New(t)

	num := newEncoder(t).Double("n", 1).Element()
	require.True(num.IsNumber())
	require.True(num.IsSimpleType())
	require.False(num.MayEncapsulate())

	doc := newEncoder(t).Doc(format.TypeArray, "d", nil).Element()
	require.True(doc.IsDocument())
	require.True(doc.MayEncapsulate())
	require.False(doc.IsSimpleType())

	cws := newEncoder(t).CodeWithScope("c", "x", nil).Element()
	require.False(cws.IsDocument())
	require.True(cws.MayEncapsulate())

	null := newEncoder(t).Empty(format.TypeNull, "z").Element()
	require.True(null.IsNull())
	require.False(null.IsBoolean())
}

func TestCacheConsistency(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[a-z]{0,12}`).Draw(t, "name")
		text := rapid.StringMatching(`[ -~]{0,40}`).Draw(t, "text")

		data := newEncoder(t).String(format.TypeString, name, text).Bytes()

		cold := New(data)
		want, err := cold.Size()
		require.NoError(t, err)
		require.Equal(t, len(data), want)

		warm := New(data)
		require.Equal(t, len(name)+1, warm.FieldNameSize())
		got, err := warm.Size()
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.Equal(t, cold.FieldNameSize(), warm.FieldNameSize())

		bounded, err := NewBounded(data, len(data))
		require.NoError(t, err)
		got, err = bounded.SizeBounded(len(data))
		require.NoError(t, err)
		require.Equal(t, want, got)
	})
}

func TestStaleView(t *testing.T) {
	require := require.New(t)

	b, err := buffer.New(buffer.WithInitialSize(64))
	require.NoError(err)
	b.AppendUint8(uint8(format.TypeInt32))
	b.AppendCString("n")
	b.AppendInt32(42)

	e := FromSource(b, 0)
	require.False(e.Stale())
	require.NoError(e.Check())
	v, err := e.Int32()
	require.NoError(err)
	require.Equal(int32(42), v)

	b.Skip(1000)
	require.True(e.Stale())
	require.ErrorIs(e.Check(), errs.ErrStaleView)

	plain := New([]byte{0})
	require.False(plain.Stale())
}
