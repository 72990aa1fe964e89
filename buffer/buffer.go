package buffer

import (
	"math"

	"github.com/arloliu/docbuf/endian"
	"github.com/arloliu/docbuf/errs"
	"github.com/arloliu/docbuf/internal/logger"
	"github.com/arloliu/docbuf/internal/options"
	"github.com/arloliu/docbuf/limits"
)

// Buffer is a growable, append-only byte region.
//
// The used bytes are buf[:len(buf)] and the capacity is cap(buf). With the heap policy
// buf is a view of block, the slice obtained from the allocator. With the inline policy
// buf starts out as a view of the embedded array and moves to a heap block on the first
// growth past it.
//
// A Buffer must not be copied after first use.
type Buffer struct {
	buf   []byte
	block []byte
	alloc Allocator

	maxSize    int
	growthBase int
	inlineSize int
	inline     bool
	gen        uint64
	limits     limits.Limits

	arr [limits.InlineCapacity]byte
}

// New creates a heap buffer, or an inline buffer when WithInline is given.
func New(opts ...Option) (*Buffer, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	b := &Buffer{
		alloc:      cfg.allocator,
		maxSize:    cfg.limits.MaxBufferSize,
		growthBase: cfg.limits.GrowthBase,
		inlineSize: cfg.limits.InlineSize,
		inline:     cfg.inline,
		limits:     cfg.limits,
	}
	if b.alloc == nil {
		b.alloc = DefaultHeapAllocator()
	}

	initial := cfg.initialSize
	if initial < 0 {
		initial = DefaultInitialSize
	}

	switch {
	case b.inline && initial <= b.inlineSize:
		b.buf = b.arr[:0:b.inlineSize]
	case initial > 0:
		b.block = b.allocate(initial)
		b.buf = b.block[:0:initial]
	}

	return b, nil
}

// NewInline creates a buffer with the inline policy.
func NewInline(opts ...Option) (*Buffer, error) {
	return New(append(opts, WithInline())...)
}

// Inline reports whether the buffer uses the inline policy.
func (b *Buffer) Inline() bool { return b.inline }

// Limits returns the ceilings the buffer was configured with.
func (b *Buffer) Limits() limits.Limits { return b.limits }

// Len returns the number of bytes written.
func (b *Buffer) Len() int { return len(b.buf) }

// Cap returns the current capacity.
func (b *Buffer) Cap() int { return cap(b.buf) }

// Bytes returns the written bytes. The slice aliases the backing block and is valid
// until the next growth, reset or release.
func (b *Buffer) Bytes() []byte { return b.buf }

// Generation returns a counter that changes whenever the backing block is replaced.
func (b *Buffer) Generation() uint64 { return b.gen }

// At returns the n bytes at off. It panics if the range is outside the written bytes.
func (b *Buffer) At(off, n int) []byte {
	return b.buf[off : off+n : off+n]
}

// SetLen sets the written length. It panics if n is outside [0, Cap()].
func (b *Buffer) SetLen(n int) {
	if n < 0 || n > cap(b.buf) {
		panic("buffer: SetLen out of range")
	}
	b.buf = b.buf[:n]
}

// Grow extends the written length by n bytes and returns the extension for the caller
// to fill. Its contents are unspecified. The returned slice is valid until the next growth.
func (b *Buffer) Grow(n int) []byte {
	off := b.Skip(n)
	return b.buf[off : off+n : off+n]
}

// Skip extends the written length by n bytes and returns the offset of the extension.
func (b *Buffer) Skip(n int) int {
	if n < 0 {
		panic("buffer: negative length")
	}

	off := len(b.buf)
	if n > math.MaxInt32-off {
		raise(errs.Fatalf(errs.ErrBufferTooLarge, "attempted to grow() by %d bytes from %d", n, off),
			"requested", n, "length", off)
	}

	newLen := off + n
	if newLen > cap(b.buf) {
		b.grow(newLen)
	}
	b.buf = b.buf[:newLen]

	return off
}

// growthSize returns the smallest growthBase·2^k that holds minSize.
func (b *Buffer) growthSize(minSize int) int {
	a := b.growthBase
	for a < minSize {
		a *= 2
	}

	return a
}

func (b *Buffer) grow(minSize int) {
	a := b.growthSize(minSize)
	if a > b.maxSize {
		raise(errs.Fatalf(errs.ErrBufferTooLarge, "attempted to grow() to %d bytes, past the %s limit",
			a, limits.HumanSize(b.maxSize)), "requested", a, "limit", b.maxSize)
	}

	used := len(b.buf)
	switch {
	case b.block == nil && b.inline && a <= b.inlineSize:
		b.buf = b.arr[:used:a]
		return
	case b.block == nil:
		block := b.allocate(a)
		copy(block, b.buf)
		b.block = block
		if b.inline {
			logger.L().Debug("inline buffer spilled to heap", "used", used, "capacity", a)
		}
	default:
		block, err := b.alloc.Realloc(b.block, used, a)
		if err != nil {
			raise(errs.Fatalf(errs.ErrOutOfMemory, "realloc of %d bytes: %v", a, err), "requested", a)
		}
		b.block = block
	}

	b.buf = b.block[:used:a]
	b.gen++
}

func (b *Buffer) allocate(n int) []byte {
	block, err := b.alloc.Alloc(n)
	if err != nil {
		raise(errs.Fatalf(errs.ErrOutOfMemory, "alloc of %d bytes: %v", n, err), "requested", n)
	}

	return block
}

// Reset rewinds the length to zero and keeps the capacity.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
}

// ResetMax rewinds the length to zero and, when the capacity exceeds maxSize, replaces
// the backing block with one of exactly maxSize bytes. A maxSize of zero behaves like Reset.
func (b *Buffer) ResetMax(maxSize int) {
	b.buf = b.buf[:0]
	if maxSize <= 0 || cap(b.buf) <= maxSize {
		return
	}

	b.freeBlock()
	if b.inline && maxSize <= b.inlineSize {
		b.buf = b.arr[:0:maxSize]
	} else {
		b.block = b.allocate(maxSize)
		b.buf = b.block[:0:maxSize]
	}
	b.gen++

	logger.L().Debug("buffer shrunk", "capacity", maxSize)
}

// Decouple hands the written bytes to the caller, who becomes their sole owner, and
// leaves the buffer empty and unallocated. The returned slice keeps its capacity.
//
// Inline buffers return errs.ErrDecoupleUnsupported whether or not their contents have
// moved to the heap.
func (b *Buffer) Decouple() ([]byte, error) {
	if b.inline {
		return nil, errs.ErrDecoupleUnsupported
	}

	out := b.buf
	b.buf = nil
	b.block = nil
	b.gen++

	return out, nil
}

// Release returns the backing block to the allocator. The buffer stays usable and
// allocates again on the next write.
func (b *Buffer) Release() {
	b.freeBlock()
	if b.inline {
		b.buf = b.arr[:0:b.inlineSize]
	} else {
		b.buf = nil
	}
	b.gen++
}

func (b *Buffer) freeBlock() {
	if b.block != nil {
		b.alloc.Free(b.block)
		b.block = nil
	}
}

// Append writes p and returns its offset.
func (b *Buffer) Append(p []byte) int {
	off := b.Skip(len(p))
	copy(b.buf[off:], p)

	return off
}

// AppendByte writes c and returns its offset.
func (b *Buffer) AppendByte(c byte) int {
	off := b.Skip(1)
	b.buf[off] = c

	return off
}

// AppendString writes s, followed by a NUL terminator when withNUL is set, and returns
// the offset of the first byte.
func (b *Buffer) AppendString(s string, withNUL bool) int {
	n := len(s)
	if withNUL {
		n++
	}
	off := b.Skip(n)
	copy(b.buf[off:], s)
	if withNUL {
		b.buf[off+len(s)] = 0
	}

	return off
}

// AppendCString writes s and a NUL terminator.
func (b *Buffer) AppendCString(s string) int {
	return b.AppendString(s, true)
}

// AppendInt8 writes v and returns its offset.
func (b *Buffer) AppendInt8(v int8) int { return AppendNum(b, v) }

// AppendUint8 writes v and returns its offset.
func (b *Buffer) AppendUint8(v uint8) int { return AppendNum(b, v) }

// AppendInt16 writes v little-endian and returns its offset.
func (b *Buffer) AppendInt16(v int16) int { return AppendNum(b, v) }

// AppendUint16 writes v little-endian and returns its offset.
func (b *Buffer) AppendUint16(v uint16) int { return AppendNum(b, v) }

// AppendInt32 writes v little-endian and returns its offset.
func (b *Buffer) AppendInt32(v int32) int { return AppendNum(b, v) }

// AppendUint32 writes v little-endian and returns its offset.
func (b *Buffer) AppendUint32(v uint32) int { return AppendNum(b, v) }

// AppendInt64 writes v little-endian and returns its offset.
func (b *Buffer) AppendInt64(v int64) int { return AppendNum(b, v) }

// AppendUint64 writes v little-endian and returns its offset.
func (b *Buffer) AppendUint64(v uint64) int { return AppendNum(b, v) }

// AppendFloat64 writes the IEEE 754 bits of v little-endian and returns its offset.
func (b *Buffer) AppendFloat64(v float64) int { return AppendNum(b, v) }

// AppendBool writes v as one byte, 1 for true, and returns its offset.
func (b *Buffer) AppendBool(v bool) int { return AppendNum(b, v) }

// Sink is the append surface shared by Buffer and Aligned.
type Sink interface {
	Skip(n int) int
	Bytes() []byte
}

// AppendNum writes v little-endian and returns its offset.
func AppendNum[T endian.Number](s Sink, v T) int {
	off := s.Skip(endian.SizeOf[T]())
	endian.CopyLE(s.Bytes()[off:], v)

	return off
}
