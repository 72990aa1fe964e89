// Package docbuf is the low-level core of a document encoding: a growable byte buffer
// that documents are written into, fixed-order numeric storage, and a zero-copy view
// for reading single encoded fields back out.
//
// # Basic Usage
//
// Writing an element:
//
//	buf, _ := docbuf.NewBuffer()
//	buf.AppendUint8(uint8(format.TypeInt32))
//	buf.AppendCString("x")
//	buf.AppendInt32(3)
//
// Reading it back:
//
//	e := docbuf.ViewElement(buf.Bytes())
//	size, _ := e.Size()      // 7
//	v := e.NumberDouble()    // 3.0
//
// # Package Structure
//
// This package wraps the most common entry points. The packages underneath give full
// control:
//   - buffer: Buffer (heap growth with an optional inline region) and Aligned
//   - endian: packed little/big-endian numeric storage and typed views
//   - element: Element views with accessors, coercion, ordering and hashing
//   - textbuf: Builder for short human readable output
//   - compress: block codecs and framing for stored documents
//   - limits: size ceilings and growth constants
//
// # Failure Model
//
// Malformed input and typed-access mismatches are returned as errors. Allocation
// failure and growth past a size ceiling panic with *errs.FatalError after being
// logged; use buffer.Guard to turn them into errors at a boundary.
package docbuf

import (
	"log/slog"

	"github.com/arloliu/docbuf/buffer"
	"github.com/arloliu/docbuf/element"
	"github.com/arloliu/docbuf/internal/logger"
	"github.com/arloliu/docbuf/textbuf"
)

// SetLogger installs the logger used by all docbuf packages. Passing nil discards
// log output again, which is the default.
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}

// NewBuffer creates a heap-backed buffer.
//
// Available options:
//   - buffer.WithInitialSize(n)
//   - buffer.WithMaxSize(n) / buffer.WithGrowthBase(n) / buffer.WithLimits(l)
//   - buffer.WithAllocator(a)
//   - buffer.WithInline()
func NewBuffer(opts ...buffer.Option) (*buffer.Buffer, error) {
	return buffer.New(opts...)
}

// NewInlineBuffer creates a buffer whose first writes land in its embedded inline region.
func NewInlineBuffer(opts ...buffer.Option) (*buffer.Buffer, error) {
	return buffer.NewInline(opts...)
}

// NewAlignedBuffer creates a buffer whose data start is aligned for direct I/O.
// An initSize <= 0 selects the configured default size: limits.AlignedDefaultSize, or
// AlignedDefaultSize of the limits passed through buffer.WithAlignedLimits.
func NewAlignedBuffer(initSize int, opts ...buffer.AlignedOption) (*buffer.Aligned, error) {
	if initSize <= 0 {
		return buffer.NewAlignedDefault(opts...)
	}

	return buffer.NewAligned(initSize, opts...)
}

// NewTextBuilder creates a text builder over a heap-backed buffer.
func NewTextBuilder(opts ...buffer.Option) (*textbuf.Builder, error) {
	return textbuf.New(opts...)
}

// ViewElement returns a view of the encoded element at data[0].
func ViewElement(data []byte) element.Element {
	return element.New(data)
}

// ViewElementBounded returns a view of the encoded element at data[0] that must fit in
// maxLen bytes.
func ViewElementBounded(data []byte, maxLen int) (element.Element, error) {
	return element.NewBounded(data, maxLen)
}
