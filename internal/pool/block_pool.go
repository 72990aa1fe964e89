// Package pool recycles byte blocks for the heap-backed buffers.
//
// Blocks come in power-of-two size classes starting at MinBlockSize. A block obtained
// from Get always has a class capacity, which is exactly the capacity the buffer growth
// policy asks for, so a released block can be handed to the next buffer unchanged.
package pool

import (
	"math/bits"
	"sync"
)

const (
	// MinBlockSize is the smallest size class.
	MinBlockSize = 64
	// MaxPooledBlockSize is the largest size class retained for reuse. Larger blocks are
	// allocated directly and dropped on Put to keep idle memory bounded.
	MaxPooledBlockSize = 1024 * 1024 * 4 // 4MiB
)

// BlockPool is a set of sync.Pools, one per size class.
//
// BlockPool is safe for concurrent use.
type BlockPool struct {
	classes []sync.Pool
	maxSize int
}

// NewBlockPool creates a pool that retains blocks up to maxSize bytes.
// maxSize is rounded up to a size class; values <= 0 select MaxPooledBlockSize.
func NewBlockPool(maxSize int) *BlockPool {
	if maxSize <= 0 || maxSize > MaxPooledBlockSize {
		maxSize = MaxPooledBlockSize
	}
	maxSize = ClassSize(maxSize)

	return &BlockPool{
		classes: make([]sync.Pool, classIndex(maxSize)+1),
		maxSize: maxSize,
	}
}

// ClassSize returns the capacity of the size class serving a request of n bytes.
func ClassSize(n int) int {
	if n <= MinBlockSize {
		return MinBlockSize
	}

	return 1 << bits.Len(uint(n-1))
}

// classIndex maps a class capacity to its slot. size must be a class size.
func classIndex(size int) int {
	return bits.Len(uint(size)) - bits.Len(uint(MinBlockSize))
}

// MaxSize returns the largest block capacity the pool retains.
func (bp *BlockPool) MaxSize() int {
	return bp.maxSize
}

// Get returns a zero-length block with capacity ClassSize(n).
//
// The block contents are unspecified; callers overwrite what they use.
func (bp *BlockPool) Get(n int) []byte {
	size := ClassSize(n)
	if size > bp.maxSize {
		return make([]byte, 0, size)
	}

	if ptr, ok := bp.classes[classIndex(size)].Get().(*[]byte); ok {
		return (*ptr)[:0]
	}

	return make([]byte, 0, size)
}

// Put returns b to the pool. Blocks whose capacity is not a size class, or that exceed
// the retention limit, are dropped.
func (bp *BlockPool) Put(b []byte) {
	c := cap(b)
	if c < MinBlockSize || c > bp.maxSize || c&(c-1) != 0 {
		return
	}

	b = b[:0]
	bp.classes[classIndex(c)].Put(&b)
}

var defaultPool = NewBlockPool(MaxPooledBlockSize)

// GetBlock retrieves a block from the default pool.
func GetBlock(n int) []byte {
	return defaultPool.Get(n)
}

// PutBlock returns a block to the default pool.
func PutBlock(b []byte) {
	defaultPool.Put(b)
}
