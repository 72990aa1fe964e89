// Package textbuf builds short human readable strings on top of a growable buffer.
//
// Numbers are formatted directly into the buffer: the worst-case width of the
// representation is reserved first, the digits are written into the reservation and
// the length is trimmed back to what was used.
package textbuf

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/arloliu/docbuf/buffer"
)

// Worst-case widths of each representation, sign included.
const (
	widthInt16      = 7
	widthInt32      = 12
	widthUint32     = 11
	widthInt64      = 23
	widthUint64     = 22
	widthDouble     = 1077
	widthDoubleNice = 32
)

// Builder accumulates text. The zero value is not usable; create one with New or NewInline.
type Builder struct {
	buf *buffer.Buffer
}

// New creates a builder over a heap buffer configured by opts.
func New(opts ...buffer.Option) (*Builder, error) {
	buf, err := buffer.New(opts...)
	if err != nil {
		return nil, err
	}

	return &Builder{buf: buf}, nil
}

// NewInline creates a builder whose first 512 bytes live inside the builder's buffer.
func NewInline(opts ...buffer.Option) (*Builder, error) {
	buf, err := buffer.NewInline(opts...)
	if err != nil {
		return nil, err
	}

	return &Builder{buf: buf}, nil
}

// appendFormatted reserves width bytes, lets format append into the empty reservation
// and trims the length back to the bytes produced.
func (b *Builder) appendFormatted(width int, format func(dst []byte) []byte) {
	off := b.buf.Skip(width)
	out := format(b.buf.At(off, width)[:0])
	if len(out) > width {
		panic(fmt.Sprintf("textbuf: formatted %d bytes into a %d byte reservation", len(out), width))
	}
	b.buf.SetLen(off + len(out))
}

// AppendInt16 appends v in decimal.
func (b *Builder) AppendInt16(v int16) {
	b.appendFormatted(widthInt16, func(dst []byte) []byte { return strconv.AppendInt(dst, int64(v), 10) })
}

// AppendInt32 appends v in decimal.
func (b *Builder) AppendInt32(v int32) {
	b.appendFormatted(widthInt32, func(dst []byte) []byte { return strconv.AppendInt(dst, int64(v), 10) })
}

// AppendUint32 appends v in decimal.
func (b *Builder) AppendUint32(v uint32) {
	b.appendFormatted(widthUint32, func(dst []byte) []byte { return strconv.AppendUint(dst, uint64(v), 10) })
}

// AppendInt64 appends v in decimal.
func (b *Builder) AppendInt64(v int64) {
	b.appendFormatted(widthInt64, func(dst []byte) []byte { return strconv.AppendInt(dst, v, 10) })
}

// AppendUint64 appends v in decimal.
func (b *Builder) AppendUint64(v uint64) {
	b.appendFormatted(widthUint64, func(dst []byte) []byte { return strconv.AppendUint(dst, v, 10) })
}

// AppendInt appends a platform sized integer.
func (b *Builder) AppendInt(v int) {
	b.AppendInt64(int64(v))
}

// AppendDouble appends v with six significant digits, like C's %g.
func (b *Builder) AppendDouble(v float64) {
	b.appendFormatted(widthDouble, func(dst []byte) []byte { return strconv.AppendFloat(dst, v, 'g', 6, 64) })
}

// AppendDoubleNice appends v with up to sixteen significant digits and makes sure the
// result reads as a floating point number: 3 becomes "3.0". Exponent forms, NaN and
// the infinities are left as formatted.
func (b *Builder) AppendDoubleNice(v float64) {
	off := b.buf.Len()
	b.appendFormatted(widthDoubleNice, func(dst []byte) []byte { return strconv.AppendFloat(dst, v, 'g', 16, 64) })

	if !bytes.ContainsAny(b.buf.Bytes()[off:], ".eENI") {
		b.buf.AppendString(".0", false)
	}
}

// AppendBool appends "true" or "false".
func (b *Builder) AppendBool(v bool) {
	b.buf.AppendString(strconv.FormatBool(v), false)
}

// WriteByte appends c.
func (b *Builder) WriteByte(c byte) error {
	return b.buf.WriteByte(c)
}

// Write appends p.
func (b *Builder) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

// WriteString appends s.
func (b *Builder) WriteString(s string) (int, error) {
	return b.buf.WriteString(s)
}

// String returns a copy of the accumulated text.
func (b *Builder) String() string {
	return string(b.buf.Bytes())
}

// Bytes returns the accumulated text. The slice aliases the builder's buffer.
func (b *Builder) Bytes() []byte {
	return b.buf.Bytes()
}

// Len returns the length of the accumulated text.
func (b *Builder) Len() int {
	return b.buf.Len()
}

// Reset discards the text. When maxSize is positive and the capacity exceeds it, the
// backing memory is reallocated down to maxSize.
func (b *Builder) Reset(maxSize int) {
	b.buf.ResetMax(maxSize)
}

// Buffer exposes the underlying buffer.
func (b *Builder) Buffer() *buffer.Buffer {
	return b.buf
}
