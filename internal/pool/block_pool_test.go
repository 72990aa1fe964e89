package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassSize(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 64},
		{1, 64},
		{64, 64},
		{65, 128},
		{128, 128},
		{129, 256},
		{1000, 1024},
		{4096, 4096},
		{4097, 8192},
		{MaxPooledBlockSize, MaxPooledBlockSize},
		{MaxPooledBlockSize + 1, MaxPooledBlockSize * 2},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, ClassSize(tt.n), "n=%d", tt.n)
	}
}

func TestBlockPoolGet(t *testing.T) {
	require := require.New(t)

	bp := NewBlockPool(0)
	require.Equal(MaxPooledBlockSize, bp.MaxSize())

	b := bp.Get(100)
	require.Empty(b)
	require.Equal(128, cap(b))

	big := bp.Get(MaxPooledBlockSize + 10)
	require.Equal(MaxPooledBlockSize*2, cap(big))
}

func TestBlockPoolPutReuse(t *testing.T) {
	require := require.New(t)

	bp := NewBlockPool(1024)
	require.Equal(1024, bp.MaxSize())

	b := bp.Get(200)
	b = append(b, "payload"...)
	bp.Put(b)

	// sync.Pool may drop entries at any GC, so only capacity is asserted.
	again := bp.Get(200)
	require.Empty(again)
	require.Equal(256, cap(again))
}

func TestBlockPoolPutRejects(t *testing.T) {
	bp := NewBlockPool(1024)

	require.NotPanics(t, func() {
		bp.Put(nil)
		bp.Put(make([]byte, 0, 100))  // not a class size
		bp.Put(make([]byte, 0, 32))   // below the smallest class
		bp.Put(make([]byte, 0, 2048)) // above retention
	})
}

func TestMaxSizeRoundsUp(t *testing.T) {
	require.Equal(t, 1024, NewBlockPool(1000).MaxSize())
	require.Equal(t, MaxPooledBlockSize, NewBlockPool(MaxPooledBlockSize*8).MaxSize())
}

func TestDefaultPoolConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for range 100 {
				b := GetBlock(n)
				b = append(b, make([]byte, n)...)
				if cap(b) != ClassSize(n) {
					t.Errorf("cap %d, want %d", cap(b), ClassSize(n))
				}
				PutBlock(b)
			}
		}(64 << (i % 8))
	}
	wg.Wait()
}

func BenchmarkBlockPoolGetPut(b *testing.B) {
	bp := NewBlockPool(0)
	for b.Loop() {
		blk := bp.Get(4096)
		bp.Put(blk)
	}
}
