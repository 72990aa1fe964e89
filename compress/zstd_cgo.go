//go:build gozstd && cgo

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"

	"github.com/arloliu/docbuf/limits"
)

const gozstdLevel = 3

// Compress appends the Zstandard frame of src to dst.
func (c ZstdCompressor) Compress(dst, src []byte) ([]byte, error) {
	return gozstd.CompressLevel(dst, src, gozstdLevel), nil
}

// Decompress appends the content of the Zstandard frame src to dst.
func (c ZstdCompressor) Decompress(dst, src []byte) ([]byte, error) {
	return c.DecompressLimit(dst, src, limits.MaxInternalObjectSize)
}

// DecompressLimit is Decompress with the declared content size checked against limit
// before decoding and the produced size checked after.
func (c ZstdCompressor) DecompressLimit(dst, src []byte, limit int) ([]byte, error) {
	if len(src) == 0 {
		return dst, nil
	}
	if err := checkZstdFrame(src, limit); err != nil {
		return dst, err
	}

	out, err := gozstd.Decompress(dst, src)
	if err != nil {
		return dst, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if n := len(out) - len(dst); n > limit {
		return dst, errOverLimit(n, limit)
	}

	return out, nil
}
