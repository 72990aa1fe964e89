package buffer

import (
	"fmt"

	"github.com/arloliu/docbuf/endian"
)

// Mark is a reserved range of a Buffer that is filled in after the bytes following it
// have been written, typically a length prefix. Marks are offsets, so they stay valid
// when the buffer grows.
type Mark struct {
	off int
	n   int
}

// Offset returns the position of the reserved range.
func (m Mark) Offset() int { return m.off }

// Len returns the size of the reserved range.
func (m Mark) Len() int { return m.n }

// Reserve appends n placeholder bytes and returns a Mark for them.
func (b *Buffer) Reserve(n int) Mark {
	off := b.Skip(n)
	clear(b.buf[off : off+n])

	return Mark{off: off, n: n}
}

// Patch copies p into the reserved range. p must have exactly m.Len() bytes.
func (b *Buffer) Patch(m Mark, p []byte) {
	if len(p) != m.n {
		panic(fmt.Sprintf("buffer: patch of %d bytes into a %d byte mark", len(p), m.n))
	}
	copy(b.At(m.off, m.n), p)
}

// PatchInt32 stores v little-endian in the first four reserved bytes.
func (b *Buffer) PatchInt32(m Mark, v int32) {
	patchNum(b, m, v)
}

// PatchUint32 stores v little-endian in the first four reserved bytes.
func (b *Buffer) PatchUint32(m Mark, v uint32) {
	patchNum(b, m, v)
}

// PatchLength stores the number of bytes written since the mark, the mark included,
// as an int32 length prefix. It returns the stored length.
func (b *Buffer) PatchLength(m Mark) int32 {
	n := int32(len(b.buf) - m.off) //nolint:gosec
	patchNum(b, m, n)

	return n
}

func patchNum[T endian.Number](b *Buffer, m Mark, v T) {
	size := endian.SizeOf[T]()
	if size > m.n {
		panic(fmt.Sprintf("buffer: patch of %d bytes into a %d byte mark", size, m.n))
	}
	endian.CopyLE(b.At(m.off, size), v)
}
