package docbuf

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/docbuf/buffer"
	"github.com/arloliu/docbuf/errs"
	"github.com/arloliu/docbuf/format"
	"github.com/arloliu/docbuf/limits"
)

func TestWriteAndViewElement(t *testing.T) {
	require := require.New(t)

	buf, err := NewBuffer()
	require.NoError(err)
	buf.AppendUint8(uint8(format.TypeInt32))
	buf.AppendCString("x")
	buf.AppendInt32(3)

	e := ViewElement(buf.Bytes())
	require.Equal(format.TypeInt32, e.Type())
	require.Equal("x", e.FieldName())
	size, err := e.Size()
	require.NoError(err)
	require.Equal(7, size)
	require.InDelta(3.0, e.NumberDouble(), 0)

	_, err = ViewElementBounded(buf.Bytes(), 1)
	require.ErrorIs(err, errs.ErrInvalidFieldName)
}

func TestConstructors(t *testing.T) {
	require := require.New(t)

	inline, err := NewInlineBuffer()
	require.NoError(err)
	require.True(inline.Inline())

	aligned, err := NewAlignedBuffer(0)
	require.NoError(err)
	require.Equal(limits.AlignedDefaultSize, aligned.Cap())
	require.Zero(aligned.Addr() % uintptr(limits.Alignment))
	aligned.Release()

	tb, err := NewTextBuilder(buffer.WithInitialSize(32))
	require.NoError(err)
	tb.AppendDoubleNice(3)
	require.Equal("3.0", tb.String())

	_, err = NewBuffer(buffer.WithInitialSize(-1))
	require.ErrorIs(err, errs.ErrInvalidOption)
}

func TestNewAlignedBufferUsesLimits(t *testing.T) {
	require := require.New(t)

	l := limits.Default()
	l.Alignment = 4096
	l.AlignedDefaultSize = 64 * limits.KiB

	aligned, err := NewAlignedBuffer(0, buffer.WithAlignedLimits(l))
	require.NoError(err)
	t.Cleanup(aligned.Release)

	require.Equal(64*limits.KiB, aligned.Cap())
	require.Equal(4096, aligned.Alignment())
	require.Zero(aligned.Addr() % 4096)
}

func TestSetLogger(t *testing.T) {
	var out bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&out, nil)))
	t.Cleanup(func() { SetLogger(nil) })

	buf, err := NewBuffer(buffer.WithMaxSize(1024))
	require.NoError(t, err)

	err = buffer.Guard(func() { buf.Skip(4096) })
	require.ErrorIs(t, err, errs.ErrBufferTooLarge)
	require.Contains(t, out.String(), "level=ERROR")
	require.Equal(t, 0, buf.Len())
}
