//go:build !gozstd || !cgo

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/docbuf/limits"
)

// Decoders run allocation free after warm-up, so they are pooled.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
			zstd.WithDecoderMaxMemory(uint64(limits.MaxInternalObjectSize)),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}

		return encoder
	},
}

// Compress appends the Zstandard frame of src to dst.
func (c ZstdCompressor) Compress(dst, src []byte) ([]byte, error) {
	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(src, dst), nil
}

// Decompress appends the content of the Zstandard frame src to dst. Decoding stops
// with an error past limits.MaxInternalObjectSize bytes.
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

	var decoder *zstd.Decoder
	if limit <= limits.MaxInternalObjectSize {
		decoder, _ = zstdDecoderPool.Get().(*zstd.Decoder)
		defer zstdDecoderPool.Put(decoder)
	} else {
		// Pooled decoders stop at the default ceiling.
		d, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(uint64(limit)), //nolint:gosec // limit is positive here
		)
		if err != nil {
			return dst, fmt.Errorf("zstd decoder: %w", err)
		}
		defer d.Close()
		decoder = d
	}

	out, err := decoder.DecodeAll(src, dst)
	if err != nil {
		return dst, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if n := len(out) - len(dst); n > limit {
		return dst, errOverLimit(n, limit)
	}

	return out, nil
}
