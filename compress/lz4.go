package compress

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/docbuf/errs"
	"github.com/arloliu/docbuf/limits"
)

// lz4.Compressor keeps a hash table that is worth reusing.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor is the LZ4 block codec.
//
// LZ4 blocks do not record their decompressed size. Decompress sizes its output from
// the spare capacity of dst when that is larger than four times the input, and doubles
// on short buffers up to limits.MaxInternalObjectSize, or up to the limit passed to
// DecompressLimit.
type LZ4Compressor struct{}

var (
	_ Codec               = (*LZ4Compressor)(nil)
	_ LimitedDecompressor = (*LZ4Compressor)(nil)
)

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress appends the LZ4 block of src to dst.
func (c LZ4Compressor) Compress(dst, src []byte) ([]byte, error) {
	if len(src) == 0 {
		return dst, nil
	}

	bound := lz4.CompressBlockBound(len(src))
	dst = slices.Grow(dst, bound)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(src, dst[len(dst):len(dst)+bound])
	if err != nil {
		return dst, err
	}

	return dst[:len(dst)+n], nil
}

// Decompress appends the content of the LZ4 block src to dst.
func (c LZ4Compressor) Decompress(dst, src []byte) ([]byte, error) {
	return c.DecompressLimit(dst, src, limits.MaxInternalObjectSize)
}

// DecompressLimit is Decompress with the output never grown past limit bytes.
func (c LZ4Compressor) DecompressLimit(dst, src []byte, limit int) ([]byte, error) {
	if len(src) == 0 {
		return dst, nil
	}

	maxSize := limit
	bufSize := max(cap(dst)-len(dst), len(src)*4)

	for {
		bufSize = min(bufSize, maxSize)
		dst = slices.Grow(dst, bufSize)
		n, err := lz4.UncompressBlock(src, dst[len(dst):len(dst)+bufSize])
		if err == nil {
			return dst[:len(dst)+n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return dst, err
		}
		if bufSize >= maxSize {
			return dst, fmt.Errorf("%w: output exceeds %d bytes: %w", errs.ErrBlockSizeMismatch, maxSize, err)
		}
		bufSize *= 2
	}
}
