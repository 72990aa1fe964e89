package element

import (
	"github.com/stretchr/testify/require"

	"github.com/arloliu/docbuf/buffer"
	"github.com/arloliu/docbuf/format"
)

// encoder writes elements into a buffer the way a document writer would.
type encoder struct {
	b *buffer.Buffer
}

// tb is satisfied by both *testing.T and *rapid.T.
type tb interface {
	require.TestingT
	Helper()
}

func newEncoder(t tb) *encoder {
	t.Helper()
	b, err := buffer.New()
	require.NoError(t, err)

	return &encoder{b: b}
}

func (w *encoder) head(t format.Type, name string) {
	w.b.AppendUint8(uint8(t))
	w.b.AppendCString(name)
}

func (w *encoder) str(s string) {
	w.b.AppendInt32(int32(len(s) + 1))
	w.b.AppendCString(s)
}

func (w *encoder) Int32(name string, v int32) *encoder {
	w.head(format.TypeInt32, name)
	w.b.AppendInt32(v)

	return w
}

func (w *encoder) Int64(name string, v int64) *encoder {
	w.head(format.TypeInt64, name)
	w.b.AppendInt64(v)

	return w
}

func (w *encoder) Double(name string, v float64) *encoder {
	w.head(format.TypeDouble, name)
	w.b.AppendFloat64(v)

	return w
}

func (w *encoder) Bool(name string, v bool) *encoder {
	w.head(format.TypeBoolean, name)
	w.b.AppendBool(v)

	return w
}

func (w *encoder) DateTime(name string, ms int64) *encoder {
	w.head(format.TypeDateTime, name)
	w.b.AppendInt64(ms)

	return w
}

func (w *encoder) Timestamp(name string, sec, inc uint32) *encoder {
	w.head(format.TypeTimestamp, name)
	w.b.AppendUint32(inc)
	w.b.AppendUint32(sec)

	return w
}

func (w *encoder) ObjectID(name string, id ObjectID) *encoder {
	w.head(format.TypeObjectID, name)
	w.b.Append(id[:])

	return w
}

func (w *encoder) Empty(t format.Type, name string) *encoder {
	w.head(t, name)

	return w
}

func (w *encoder) String(t format.Type, name, s string) *encoder {
	w.head(t, name)
	w.str(s)

	return w
}

func (w *encoder) Binary(name string, st format.BinarySubtype, data []byte) *encoder {
	w.head(format.TypeBinary, name)
	w.b.AppendInt32(int32(len(data)))
	w.b.AppendUint8(uint8(st))
	w.b.Append(data)

	return w
}

func (w *encoder) Regex(name, pattern, options string) *encoder {
	w.head(format.TypeRegex, name)
	w.b.AppendCString(pattern)
	w.b.AppendCString(options)

	return w
}

func (w *encoder) DBPointer(name, ns string, id ObjectID) *encoder {
	w.head(format.TypeDBPointer, name)
	w.str(ns)
	w.b.Append(id[:])

	return w
}

func (w *encoder) Doc(t format.Type, name string, fill func(*encoder)) *encoder {
	w.head(t, name)
	w.document(fill)

	return w
}

func (w *encoder) CodeWithScope(name, code string, fill func(*encoder)) *encoder {
	w.head(format.TypeCodeWithScope, name)
	m := w.b.Reserve(4)
	w.str(code)
	w.document(fill)
	w.b.PatchLength(m)

	return w
}

func (w *encoder) document(fill func(*encoder)) {
	m := w.b.Reserve(4)
	if fill != nil {
		fill(w)
	}
	w.b.AppendByte(0)
	w.b.PatchLength(m)
}

// Bytes returns a copy of everything written.
func (w *encoder) Bytes() []byte {
	return append([]byte(nil), w.b.Bytes()...)
}

// Element returns a view of the first element written.
func (w *encoder) Element() Element {
	return New(w.Bytes())
}

func encodeDoc(t tb, fill func(*encoder)) []byte {
	t.Helper()
	w := newEncoder(t)
	w.document(fill)

	return w.Bytes()
}
