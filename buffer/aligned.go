package buffer

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/arloliu/docbuf/errs"
	"github.com/arloliu/docbuf/internal/logger"
	"github.com/arloliu/docbuf/internal/options"
	"github.com/arloliu/docbuf/limits"
)

// AlignedOption configures an Aligned buffer.
type AlignedOption = options.Option[*alignedConfig]

type alignedConfig struct {
	alignment       int
	shrinkThreshold int
	growthStep      int
	maxSize         int
	maxStringSize   int
	defaultSize     int
	allocator       Allocator
}

func defaultAlignedConfig() *alignedConfig {
	return &alignedConfig{
		alignment:       limits.Alignment,
		shrinkThreshold: limits.AlignedShrinkThreshold,
		growthStep:      limits.AlignedGrowthStep,
		maxSize:         limits.AlignedMaxSize,
		maxStringSize:   limits.MaxUserObjectSize,
		defaultSize:     limits.AlignedDefaultSize,
	}
}

func (c *alignedConfig) Validate() error {
	if c.alignment <= 0 || c.alignment&(c.alignment-1) != 0 {
		return fmt.Errorf("%w: alignment %d is not a power of two", errs.ErrInvalidOption, c.alignment)
	}
	if c.maxSize <= 0 || c.maxSize > math.MaxInt32 {
		return fmt.Errorf("%w: aligned max size %d outside (0, 2GiB)", errs.ErrInvalidOption, c.maxSize)
	}
	if c.shrinkThreshold <= 0 || c.shrinkThreshold > c.maxSize {
		return fmt.Errorf("%w: shrink threshold %s outside (0, %s]", errs.ErrInvalidOption,
			limits.HumanSize(c.shrinkThreshold), limits.HumanSize(c.maxSize))
	}
	if c.growthStep <= 0 {
		return fmt.Errorf("%w: growth step must be positive, got %d", errs.ErrInvalidOption, c.growthStep)
	}
	if c.maxStringSize <= 0 {
		return fmt.Errorf("%w: max string size must be positive, got %d", errs.ErrInvalidOption, c.maxStringSize)
	}

	return nil
}

// WithAlignment sets the start-address alignment. It must be a power of two.
func WithAlignment(n int) AlignedOption {
	return options.NoError(func(c *alignedConfig) { c.alignment = n })
}

// WithShrinkThreshold sets the capacity below which growth doubles and to which Reset shrinks.
func WithShrinkThreshold(n int) AlignedOption {
	return options.NoError(func(c *alignedConfig) { c.shrinkThreshold = n })
}

// WithGrowthStep sets the increment used once the capacity reaches the shrink threshold.
func WithGrowthStep(n int) AlignedOption {
	return options.NoError(func(c *alignedConfig) { c.growthStep = n })
}

// WithAlignedMaxSize sets the hard capacity ceiling.
func WithAlignedMaxSize(n int) AlignedOption {
	return options.NoError(func(c *alignedConfig) { c.maxSize = n })
}

// WithAlignedLimits takes the alignment, shrink threshold, growth step, maximum size,
// default size and string ceiling (MaxUserObjectSize) from l.
func WithAlignedLimits(l limits.Limits) AlignedOption {
	return options.New(func(c *alignedConfig) error {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrInvalidOption, err)
		}
		c.alignment = l.Alignment
		c.shrinkThreshold = l.AlignedShrinkThreshold
		c.growthStep = l.AlignedGrowthStep
		c.maxSize = l.AlignedMaxSize
		c.maxStringSize = l.MaxUserObjectSize
		c.defaultSize = l.AlignedDefaultSize

		return nil
	})
}

// WithAlignedAllocator sets the allocator for the over-sized blocks the aligned region is carved from.
func WithAlignedAllocator(a Allocator) AlignedOption {
	return options.New(func(c *alignedConfig) error {
		if a == nil {
			return fmt.Errorf("%w: nil allocator", errs.ErrInvalidOption)
		}
		c.allocator = a

		return nil
	})
}

// AllocationInfo describes the block behind an Aligned buffer.
type AllocationInfo struct {
	// Block is the whole allocation as returned by the allocator.
	Block []byte
	// Offset is the position of the aligned region inside Block.
	Offset int
	// Size is the capacity of the aligned region.
	Size int
}

// Aligned is a growable buffer whose data starts at an aligned address.
//
// The aligned region data is carved out of block, which is over-allocated by the
// alignment so that a suitably aligned start always exists inside it.
type Aligned struct {
	data  []byte
	block []byte
	off   int
	alloc Allocator

	alignment       int
	shrinkThreshold int
	growthStep      int
	maxSize         int
	maxStringSize   int
	gen             uint64
}

// NewAligned creates an aligned buffer with initSize bytes of capacity.
func NewAligned(initSize int, opts ...AlignedOption) (*Aligned, error) {
	cfg := defaultAlignedConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return newAligned(initSize, cfg)
}

// NewAlignedDefault creates an aligned buffer with the configured default capacity,
// limits.AlignedDefaultSize unless WithAlignedLimits sets another.
func NewAlignedDefault(opts ...AlignedOption) (*Aligned, error) {
	cfg := defaultAlignedConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return newAligned(cfg.defaultSize, cfg)
}

func newAligned(initSize int, cfg *alignedConfig) (*Aligned, error) {
	if initSize <= 0 || initSize > cfg.maxSize {
		return nil, fmt.Errorf("%w: aligned initial size %d outside (0, %s]",
			errs.ErrInvalidOption, initSize, limits.HumanSize(cfg.maxSize))
	}

	a := &Aligned{
		alloc:           cfg.allocator,
		alignment:       cfg.alignment,
		shrinkThreshold: cfg.shrinkThreshold,
		growthStep:      cfg.growthStep,
		maxSize:         cfg.maxSize,
		maxStringSize:   cfg.maxStringSize,
	}
	if a.alloc == nil {
		a.alloc = DefaultHeapAllocator()
	}
	a.allocate(initSize)

	return a, nil
}

// Len returns the number of bytes written.
func (a *Aligned) Len() int { return len(a.data) }

// Cap returns the capacity of the aligned region.
func (a *Aligned) Cap() int { return cap(a.data) }

// Bytes returns the written bytes.
func (a *Aligned) Bytes() []byte { return a.data }

// Generation returns a counter that changes whenever the backing block is replaced.
func (a *Aligned) Generation() uint64 { return a.gen }

// Alignment returns the configured start-address alignment.
func (a *Aligned) Alignment() int { return a.alignment }

// Addr returns the address of the first byte of the aligned region.
func (a *Aligned) Addr() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(a.data)))
}

// AllocationAddr returns the address of the first byte of the underlying allocation.
func (a *Aligned) AllocationAddr() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(a.block)))
}

// Allocation describes the underlying allocation.
func (a *Aligned) Allocation() AllocationInfo {
	return AllocationInfo{Block: a.block, Offset: a.off, Size: cap(a.data)}
}

// AtOffset returns the written bytes from off onwards.
func (a *Aligned) AtOffset(off int) []byte {
	return a.data[off:]
}

// Cur returns the unwritten remainder of the region, starting at the write position.
func (a *Aligned) Cur() []byte {
	return a.data[len(a.data):cap(a.data)]
}

// Skip extends the written length by n bytes and returns the offset before the extension.
func (a *Aligned) Skip(n int) int {
	if n < 0 {
		panic("buffer: negative length")
	}

	oldLen := len(a.data)
	if n > math.MaxInt32-oldLen {
		raise(errs.Fatalf(errs.ErrAlignedTooLarge, "aligned length %d + %d overflows 32 bits", oldLen, n),
			"requested", n, "length", oldLen)
	}

	newLen := oldLen + n
	if newLen > cap(a.data) {
		a.growReallocate(newLen)
	}
	a.data = a.data[:newLen]

	return oldLen
}

// growReallocate picks a capacity strictly greater than needed: doubling while below
// the shrink threshold, then adding growthStep.
func (a *Aligned) growReallocate(needed int) {
	size := cap(a.data)
	if size == 0 {
		size = a.alignment
	}
	for {
		if size < a.shrinkThreshold {
			size *= 2
		} else {
			size += a.growthStep
		}
		if size > a.maxSize {
			raise(errs.Fatalf(errs.ErrAlignedTooLarge, "aligned buffer growth to %s past the %s limit",
				limits.HumanSize(size), limits.HumanSize(a.maxSize)), "requested", size, "limit", a.maxSize)
		}
		if needed < size {
			break
		}
	}

	a.realloc(size, len(a.data))
}

// allocate replaces the current state with a fresh block holding size aligned bytes.
func (a *Aligned) allocate(size int) {
	block, err := a.alloc.Alloc(size + a.alignment)
	if err != nil {
		raise(errs.Fatalf(errs.ErrOutOfMemory, "aligned alloc of %d bytes: %v", size, err), "requested", size)
	}

	base := uintptr(unsafe.Pointer(unsafe.SliceData(block)))
	align := uintptr(a.alignment)
	off := int((align - base%align) % align)

	a.block = block
	a.off = off
	a.data = block[off : off : off+size]
	a.gen++
}

func (a *Aligned) realloc(size, used int) {
	oldBlock := a.block
	oldData := a.data[:used]
	a.allocate(size)
	a.data = a.data[:used]
	copy(a.data, oldData)
	a.alloc.Free(oldBlock)
}

// Reset rewinds the length to zero. A capacity above the shrink threshold is given back
// by reallocating at the threshold.
func (a *Aligned) Reset() {
	a.data = a.data[:0]
	if cap(a.data) <= a.shrinkThreshold {
		return
	}

	logger.L().Debug("aligned buffer shrunk", "from", cap(a.data), "to", a.shrinkThreshold)
	a.alloc.Free(a.block)
	a.allocate(a.shrinkThreshold)
}

// ResetSize rewinds the length to zero and reallocates exactly sz aligned bytes.
func (a *Aligned) ResetSize(sz int) {
	if sz <= 0 || sz > a.maxSize {
		raise(errs.Fatalf(errs.ErrAlignedTooLarge, "aligned reset to %d bytes outside (0, %s]",
			sz, limits.HumanSize(a.maxSize)), "requested", sz, "limit", a.maxSize)
	}
	a.alloc.Free(a.block)
	a.allocate(sz)
}

// Release frees the backing block. The buffer must not be used afterwards.
func (a *Aligned) Release() {
	if a.block != nil {
		a.alloc.Free(a.block)
	}
	a.block = nil
	a.data = nil
	a.gen++
}

// Append writes p and returns its offset.
func (a *Aligned) Append(p []byte) int {
	off := a.Skip(len(p))
	copy(a.data[off:], p)

	return off
}

// AppendByte writes c and returns its offset.
func (a *Aligned) AppendByte(c byte) int {
	off := a.Skip(1)
	a.data[off] = c

	return off
}

// AppendString writes s, followed by a NUL terminator when withNUL is set. The encoded
// length must stay below the maximum user object size.
func (a *Aligned) AppendString(s string, withNUL bool) int {
	n := len(s)
	if withNUL {
		n++
	}
	if n >= a.maxStringSize {
		raise(errs.Fatalf(errs.ErrAlignedTooLarge, "string of %d bytes reaches the %s object limit",
			n, limits.HumanSize(a.maxStringSize)), "requested", n, "limit", a.maxStringSize)
	}

	off := a.Skip(n)
	copy(a.data[off:], s)
	if withNUL {
		a.data[off+len(s)] = 0
	}

	return off
}

// AppendCString writes s and a NUL terminator.
func (a *Aligned) AppendCString(s string) int {
	return a.AppendString(s, true)
}

// AppendInt8 writes v and returns its offset.
func (a *Aligned) AppendInt8(v int8) int { return AppendNum(a, v) }

// AppendUint8 writes v and returns its offset.
func (a *Aligned) AppendUint8(v uint8) int { return AppendNum(a, v) }

// AppendInt16 writes v little-endian and returns its offset.
func (a *Aligned) AppendInt16(v int16) int { return AppendNum(a, v) }

// AppendUint16 writes v little-endian and returns its offset.
func (a *Aligned) AppendUint16(v uint16) int { return AppendNum(a, v) }

// AppendInt32 writes v little-endian and returns its offset.
func (a *Aligned) AppendInt32(v int32) int { return AppendNum(a, v) }

// AppendUint32 writes v little-endian and returns its offset.
func (a *Aligned) AppendUint32(v uint32) int { return AppendNum(a, v) }

// AppendInt64 writes v little-endian and returns its offset.
func (a *Aligned) AppendInt64(v int64) int { return AppendNum(a, v) }

// AppendUint64 writes v little-endian and returns its offset.
func (a *Aligned) AppendUint64(v uint64) int { return AppendNum(a, v) }

// AppendFloat64 writes the IEEE 754 bits of v little-endian and returns its offset.
func (a *Aligned) AppendFloat64(v float64) int { return AppendNum(a, v) }

// AppendBool writes v as one byte, 1 for true, and returns its offset.
func (a *Aligned) AppendBool(v bool) int { return AppendNum(a, v) }
