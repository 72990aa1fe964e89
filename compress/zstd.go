package compress

import (
	"math"

	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor is the Zstandard codec, tuned for ratio over speed: archival blocks,
// bandwidth-limited links and data decompressed rarely.
//
// The implementation is pure Go unless the package is built with the gozstd tag and
// cgo enabled, which switches to the libzstd binding. Both produce standard frames.
type ZstdCompressor struct{}

var (
	_ Codec               = (*ZstdCompressor)(nil)
	_ LimitedDecompressor = (*ZstdCompressor)(nil)
)

// NewZstdCompressor creates a Zstandard codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// checkZstdFrame refuses a frame whose header declares more than limit content bytes.
// Frames without a content size, or headers that do not parse, are left to the decoder.
func checkZstdFrame(src []byte, limit int) error {
	var h zstd.Header
	if err := h.Decode(src); err != nil || !h.HasFCS {
		return nil
	}
	if h.FrameContentSize > uint64(limit) { //nolint:gosec // limit is non-negative
		return errOverLimit(int(min(h.FrameContentSize, uint64(math.MaxInt32))), limit) //nolint:gosec // clamped
	}

	return nil
}
