package compress

import (
	"slices"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/docbuf/limits"
)

// S2Compressor is the S2 block codec, an extension of Snappy.
type S2Compressor struct{}

var (
	_ Codec               = (*S2Compressor)(nil)
	_ LimitedDecompressor = (*S2Compressor)(nil)
)

// NewS2Compressor creates an S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress appends the S2 block encoding of src to dst.
func (c S2Compressor) Compress(dst, src []byte) ([]byte, error) {
	if len(src) == 0 {
		return dst, nil
	}

	bound := s2.MaxEncodedLen(len(src))
	if bound < 0 {
		return dst, s2.ErrTooLarge
	}
	dst = slices.Grow(dst, bound)
	out := s2.Encode(dst[len(dst):cap(dst)], src)

	return dst[:len(dst)+len(out)], nil
}

// Decompress appends the decoded S2 block src to dst. Blocks recording more than
// limits.MaxInternalObjectSize decoded bytes are refused.
func (c S2Compressor) Decompress(dst, src []byte) ([]byte, error) {
	return c.DecompressLimit(dst, src, limits.MaxInternalObjectSize)
}

// DecompressLimit is Decompress with the decoded length recorded in src checked
// against limit before the output is sized.
func (c S2Compressor) DecompressLimit(dst, src []byte, limit int) ([]byte, error) {
	if len(src) == 0 {
		return dst, nil
	}

	n, err := s2.DecodedLen(src)
	if err != nil {
		return dst, err
	}
	if n > limit {
		return dst, errOverLimit(n, limit)
	}
	dst = slices.Grow(dst, n)
	out, err := s2.Decode(dst[len(dst):len(dst)+n], src)
	if err != nil {
		return dst, err
	}

	return dst[:len(dst)+len(out)], nil
}
