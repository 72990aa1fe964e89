package buffer

import (
	"fmt"

	"github.com/arloliu/docbuf/errs"
	"github.com/arloliu/docbuf/internal/options"
	"github.com/arloliu/docbuf/limits"
)

// DefaultInitialSize is the capacity a heap buffer allocates up front.
const DefaultInitialSize = 512

// Option configures a Buffer.
type Option = options.Option[*config]

type config struct {
	initialSize int
	limits      limits.Limits
	allocator   Allocator
	inline      bool
}

func defaultConfig() *config {
	return &config{
		initialSize: -1,
		limits:      limits.Default(),
	}
}

func (c *config) Validate() error {
	if err := c.limits.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidOption, err)
	}
	if c.initialSize > c.limits.MaxBufferSize {
		return fmt.Errorf("%w: initial size %s exceeds max buffer size %s", errs.ErrInvalidOption,
			limits.HumanSize(c.initialSize), limits.HumanSize(c.limits.MaxBufferSize))
	}

	return nil
}

// WithInitialSize sets the capacity allocated at construction. Zero defers allocation to
// the first write. With the inline policy, sizes up to the inline capacity are served
// from the inline region.
func WithInitialSize(n int) Option {
	return options.New(func(c *config) error {
		if n < 0 {
			return fmt.Errorf("%w: negative initial size %d", errs.ErrInvalidOption, n)
		}
		c.initialSize = n

		return nil
	})
}

// WithMaxSize sets the growth ceiling. Growing past it is fatal.
func WithMaxSize(n int) Option {
	return options.New(func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("%w: max size must be positive, got %d", errs.ErrInvalidOption, n)
		}
		c.limits.MaxBufferSize = n

		return nil
	})
}

// WithGrowthBase sets the smallest capacity growth rounds up from. It must be a power of two.
func WithGrowthBase(n int) Option {
	return options.NoError(func(c *config) {
		c.limits.GrowthBase = n
	})
}

// WithLimits replaces every ceiling at once. The buffer grows under MaxBufferSize,
// GrowthBase and InlineSize. The rest is reported through Buffer.Limits to the code
// that writes into the buffer, such as compress.WriteBlock.
func WithLimits(l limits.Limits) Option {
	return options.NoError(func(c *config) {
		c.limits = l
	})
}

// WithAllocator sets the allocator for heap blocks.
func WithAllocator(a Allocator) Option {
	return options.New(func(c *config) error {
		if a == nil {
			return fmt.Errorf("%w: nil allocator", errs.ErrInvalidOption)
		}
		c.allocator = a

		return nil
	})
}

// WithInline selects the inline policy: small contents live in an array embedded in
// the Buffer and move to the heap on the first growth past it. Inline buffers cannot
// be decoupled.
func WithInline() Option {
	return options.NoError(func(c *config) {
		c.inline = true
	})
}
