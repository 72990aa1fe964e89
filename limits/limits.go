// Package limits defines the size ceilings enforced by the buffers and the element codec.
//
// The defaults match the document format: a user document may be 16MiB, internal
// documents carry 16KiB of headroom on top of that, and a growable buffer may never
// exceed 64MiB. Sizes can be written in human form ("64MiB", "8k") and parsed with
// ParseSize.
package limits

import (
	"errors"
	"fmt"
	"math"

	units "github.com/docker/go-units"
)

const (
	KiB = 1024
	MiB = 1024 * KiB
)

const (
	// MaxUserObjectSize is the largest document a client may store.
	MaxUserObjectSize = 16 * MiB
	// MaxInternalObjectSize allows internal documents some headroom over user documents.
	MaxInternalObjectSize = MaxUserObjectSize + 16*KiB
	// MaxBufferSize is the hard ceiling for a growable buffer.
	MaxBufferSize = 64 * MiB
	// GrowthBase is the smallest capacity a growable buffer allocates.
	GrowthBase = 64
	// InlineCapacity is the size of the inline region compiled into every buffer.
	InlineCapacity = 512
	// Alignment is the start-address alignment of an aligned buffer.
	Alignment = 8192
	// AlignedShrinkThreshold is the capacity an aligned buffer shrinks back to on Reset.
	// Below it growth doubles; above it growth proceeds in 64MiB steps.
	AlignedShrinkThreshold = 128 * MiB
	// AlignedGrowthStep is the increment used above AlignedShrinkThreshold.
	AlignedGrowthStep = 64 * MiB
	// AlignedMaxSize is the hard ceiling for an aligned buffer.
	AlignedMaxSize = 512 * MiB
	// AlignedDefaultSize is the initial capacity of an aligned buffer.
	AlignedDefaultSize = 1 * MiB
)

// ErrInvalidLimits is returned by Validate and ParseSize.
var ErrInvalidLimits = errors.New("invalid limits")

// Limits groups the ceilings the buffers and block codecs are constructed with.
//
// buffer.WithLimits reads the growable buffer fields, buffer.WithAlignedLimits the
// aligned ones. compress.WriteBlock takes MaxInternalObjectSize from the destination
// buffer and compress.ReadBlockLimits from its argument.
type Limits struct {
	// MaxUserObjectSize bounds a single string appended to an aligned buffer.
	MaxUserObjectSize int
	// MaxInternalObjectSize bounds the raw length of a compressed block.
	MaxInternalObjectSize int

	MaxBufferSize int
	GrowthBase    int
	InlineSize    int

	Alignment              int
	AlignedShrinkThreshold int
	AlignedGrowthStep      int
	AlignedMaxSize         int
	AlignedDefaultSize     int
}

// Default returns the standard limits.
func Default() Limits {
	return Limits{
		MaxUserObjectSize:      MaxUserObjectSize,
		MaxInternalObjectSize:  MaxInternalObjectSize,
		MaxBufferSize:          MaxBufferSize,
		GrowthBase:             GrowthBase,
		InlineSize:             InlineCapacity,
		Alignment:              Alignment,
		AlignedShrinkThreshold: AlignedShrinkThreshold,
		AlignedGrowthStep:      AlignedGrowthStep,
		AlignedMaxSize:         AlignedMaxSize,
		AlignedDefaultSize:     AlignedDefaultSize,
	}
}

// Validate checks that every ceiling is usable and that they are mutually consistent.
func (l Limits) Validate() error {
	positive := []struct {
		name string
		v    int
	}{
		{"MaxUserObjectSize", l.MaxUserObjectSize},
		{"MaxInternalObjectSize", l.MaxInternalObjectSize},
		{"MaxBufferSize", l.MaxBufferSize},
		{"GrowthBase", l.GrowthBase},
		{"InlineSize", l.InlineSize},
		{"Alignment", l.Alignment},
		{"AlignedShrinkThreshold", l.AlignedShrinkThreshold},
		{"AlignedGrowthStep", l.AlignedGrowthStep},
		{"AlignedMaxSize", l.AlignedMaxSize},
		{"AlignedDefaultSize", l.AlignedDefaultSize},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidLimits, p.name, p.v)
		}
	}

	if !isPowerOfTwo(l.GrowthBase) {
		return fmt.Errorf("%w: GrowthBase %d is not a power of two", ErrInvalidLimits, l.GrowthBase)
	}
	if !isPowerOfTwo(l.Alignment) {
		return fmt.Errorf("%w: Alignment %d is not a power of two", ErrInvalidLimits, l.Alignment)
	}
	if l.InlineSize > InlineCapacity {
		return fmt.Errorf("%w: InlineSize %d exceeds the inline capacity %d", ErrInvalidLimits, l.InlineSize, InlineCapacity)
	}
	if l.MaxInternalObjectSize < l.MaxUserObjectSize {
		return fmt.Errorf("%w: MaxInternalObjectSize %s is below MaxUserObjectSize %s",
			ErrInvalidLimits, HumanSize(l.MaxInternalObjectSize), HumanSize(l.MaxUserObjectSize))
	}
	if l.MaxBufferSize < l.GrowthBase {
		return fmt.Errorf("%w: MaxBufferSize %d is below GrowthBase %d", ErrInvalidLimits, l.MaxBufferSize, l.GrowthBase)
	}
	if l.AlignedMaxSize > math.MaxInt32 {
		return fmt.Errorf("%w: AlignedMaxSize %s overflows a 32-bit length", ErrInvalidLimits, HumanSize(l.AlignedMaxSize))
	}
	if l.AlignedShrinkThreshold > l.AlignedMaxSize {
		return fmt.Errorf("%w: AlignedShrinkThreshold %s exceeds AlignedMaxSize %s",
			ErrInvalidLimits, HumanSize(l.AlignedShrinkThreshold), HumanSize(l.AlignedMaxSize))
	}
	if l.AlignedDefaultSize > l.AlignedMaxSize {
		return fmt.Errorf("%w: AlignedDefaultSize %s exceeds AlignedMaxSize %s",
			ErrInvalidLimits, HumanSize(l.AlignedDefaultSize), HumanSize(l.AlignedMaxSize))
	}

	return nil
}

// ParseSize parses a human readable size with binary multipliers, e.g. "64MiB", "8k" or "16m".
func ParseSize(s string) (int, error) {
	n, err := units.RAMInBytes(s)
	if err != nil {
		return 0, fmt.Errorf("parse size %q: %w", s, err)
	}
	if n < 0 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: size %q out of range", ErrInvalidLimits, s)
	}

	return int(n), nil
}

// HumanSize formats n bytes with binary multipliers, e.g. "64MiB".
func HumanSize(n int) string {
	return units.BytesSize(float64(n))
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
