package compress

import (
	"fmt"

	"github.com/arloliu/docbuf/errs"
	"github.com/arloliu/docbuf/format"
)

// Compressor compresses a byte block.
type Compressor interface {
	// Compress appends the compressed form of src to dst and returns the result.
	// src is not modified.
	Compress(dst, src []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
type Decompressor interface {
	// Decompress appends the decompressed form of src to dst and returns the result.
	// Corrupted input or input produced by another algorithm returns an error.
	Decompress(dst, src []byte) ([]byte, error)
}

// LimitedDecompressor is a Decompressor that refuses to produce more than limit bytes.
// Input whose recorded size is above the limit fails with errs.ErrBlockSizeMismatch
// before any output is allocated.
type LimitedDecompressor interface {
	DecompressLimit(dst, src []byte, limit int) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes one compression operation.
type CompressionStats struct {
	Algorithm      format.CompressionType
	OriginalSize   int64
	CompressedSize int64
}

// CompressionRatio returns compressed size over original size, or 0 for empty input.
// Values below 1 mean the block shrank.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec returns a new codec for compressionType. target names the caller's use in
// the error message.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression %s: %w", target, compressionType, errs.ErrUnsupportedCompression)
	}
}

func errOverLimit(n, limit int) error {
	return fmt.Errorf("%w: decoded length %d exceeds %d", errs.ErrBlockSizeMismatch, n, limit)
}

// decompressLimit decompresses src through codec without producing more than limit bytes.
func decompressLimit(codec Codec, dst, src []byte, limit int) ([]byte, error) {
	if ld, ok := codec.(LimitedDecompressor); ok {
		return ld.DecompressLimit(dst, src, limit)
	}

	out, err := codec.Decompress(dst, src)
	if err != nil {
		return dst, err
	}
	if n := len(out) - len(dst); n > limit {
		return dst, errOverLimit(n, limit)
	}

	return out, nil
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}
