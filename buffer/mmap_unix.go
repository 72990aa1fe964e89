//go:build unix

package buffer

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/arloliu/docbuf/internal/logger"
)

// MmapAllocator allocates anonymous private mappings outside the Go heap.
//
// Mapped blocks are page aligned and zero filled, which suits Aligned buffers whose
// contents are written straight to files opened for direct I/O. Blocks must be returned
// with Free; the garbage collector does not reclaim them.
type MmapAllocator struct {
	pageSize int
}

var _ Allocator = (*MmapAllocator)(nil)

// NewMmapAllocator creates an allocator backed by mmap(2).
func NewMmapAllocator() *MmapAllocator {
	return &MmapAllocator{pageSize: os.Getpagesize()}
}

// PageSize returns the system page size mappings are rounded to.
func (m *MmapAllocator) PageSize() int { return m.pageSize }

// Alloc implements Allocator.
func (m *MmapAllocator) Alloc(n int) ([]byte, error) {
	if n <= 0 {
		n = 1
	}
	b, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", n, err)
	}

	return b, nil
}

// Realloc implements Allocator.
func (m *MmapAllocator) Realloc(old []byte, used, n int) ([]byte, error) {
	b, err := m.Alloc(n)
	if err != nil {
		return nil, err
	}
	copy(b, old[:used])
	m.Free(old)

	return b, nil
}

// Free implements Allocator.
func (m *MmapAllocator) Free(b []byte) {
	if len(b) == 0 {
		return
	}
	if err := unix.Munmap(b); err != nil {
		logger.L().Warn("munmap failed", "size", len(b), "error", err)
	}
}
