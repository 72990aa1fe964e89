package buffer

import (
	"github.com/arloliu/docbuf/internal/pool"
)

// Allocator supplies the memory blocks behind a Buffer or an Aligned buffer.
//
// A block returned by Alloc or Realloc has length n; its capacity may be larger. The
// buffer hands the exact slice it received back to Realloc and Free. A non-nil error
// from Alloc or Realloc is treated as an out-of-memory condition.
type Allocator interface {
	// Alloc returns a block of n bytes. The contents are unspecified.
	Alloc(n int) ([]byte, error)
	// Realloc returns a block of n bytes whose first used bytes equal old[:used] and
	// releases old.
	Realloc(old []byte, used, n int) ([]byte, error)
	// Free releases a block obtained from Alloc or Realloc.
	Free(b []byte)
}

// HeapAllocator allocates from the Go heap through a size-classed block pool, so
// blocks released by one buffer are reused by the next.
type HeapAllocator struct {
	pool *pool.BlockPool
}

var _ Allocator = (*HeapAllocator)(nil)

var defaultHeap = &HeapAllocator{}

// NewHeapAllocator creates an allocator with its own pool retaining blocks of up to
// maxPooled bytes. A zero maxPooled uses the process-wide default pool.
func NewHeapAllocator(maxPooled int) *HeapAllocator {
	if maxPooled == 0 {
		return &HeapAllocator{}
	}

	return &HeapAllocator{pool: pool.NewBlockPool(maxPooled)}
}

// DefaultHeapAllocator returns the shared heap allocator used when no allocator is configured.
func DefaultHeapAllocator() *HeapAllocator {
	return defaultHeap
}

func (h *HeapAllocator) get(n int) []byte {
	if h.pool == nil {
		return pool.GetBlock(n)
	}

	return h.pool.Get(n)
}

// Alloc implements Allocator.
func (h *HeapAllocator) Alloc(n int) ([]byte, error) {
	return h.get(n)[:n], nil
}

// Realloc implements Allocator.
func (h *HeapAllocator) Realloc(old []byte, used, n int) ([]byte, error) {
	nb := h.get(n)[:n]
	copy(nb, old[:used])
	h.Free(old)

	return nb, nil
}

// Free implements Allocator.
func (h *HeapAllocator) Free(b []byte) {
	if b == nil {
		return
	}
	if h.pool == nil {
		pool.PutBlock(b)
		return
	}
	h.pool.Put(b)
}
