package compress

import (
	"fmt"
	"math"

	"github.com/arloliu/docbuf/buffer"
	"github.com/arloliu/docbuf/endian"
	"github.com/arloliu/docbuf/errs"
	"github.com/arloliu/docbuf/format"
	"github.com/arloliu/docbuf/internal/pool"
	"github.com/arloliu/docbuf/limits"
)

// BlockHeaderSize is the size of the type byte plus the raw length.
const BlockHeaderSize = 1 + format.LengthPrefixSize

// BlockHeader is the decoded header of a framed block.
type BlockHeader struct {
	Compression format.CompressionType
	RawLen      int
}

// WriteBlock appends payload compressed with ct to dst, framed by a BlockHeader. It
// returns the compression statistics of the payload. The payload may not exceed the
// MaxInternalObjectSize of dst's limits.
func WriteBlock(dst *buffer.Buffer, ct format.CompressionType, payload []byte) (CompressionStats, error) {
	stats := CompressionStats{Algorithm: ct, OriginalSize: int64(len(payload))}
	maxRaw := min(dst.Limits().MaxInternalObjectSize, math.MaxInt32)
	if len(payload) > maxRaw {
		return stats, fmt.Errorf("%w: raw length %d exceeds %s", errs.ErrInvalidBlockHeader,
			len(payload), limits.HumanSize(maxRaw))
	}

	codec, err := GetCodec(ct)
	if err != nil {
		return stats, err
	}

	scratch := pool.GetBlock(len(payload))
	out, err := codec.Compress(scratch, payload)
	if err != nil {
		pool.PutBlock(scratch)
		return stats, fmt.Errorf("compress %s block: %w", ct, err)
	}

	dst.AppendUint8(uint8(ct))
	dst.AppendInt32(int32(len(payload))) //nolint:gosec // bounded by MaxInternalObjectSize
	dst.Append(out)
	stats.CompressedSize = int64(len(out))
	pool.PutBlock(out)

	return stats, nil
}

// ParseBlockHeader decodes the header at the start of src. Raw lengths above
// limits.MaxInternalObjectSize are refused.
func ParseBlockHeader(src []byte) (BlockHeader, error) {
	return parseBlockHeader(src, limits.MaxInternalObjectSize)
}

func parseBlockHeader(src []byte, maxRaw int) (BlockHeader, error) {
	if len(src) < BlockHeaderSize {
		return BlockHeader{}, fmt.Errorf("%w: %d bytes", errs.ErrInvalidBlockHeader, len(src))
	}

	h := BlockHeader{
		Compression: format.CompressionType(src[0]),
		RawLen:      int(endian.ReadLE[int32](src[1:])),
	}
	if h.RawLen < 0 || h.RawLen > maxRaw {
		return BlockHeader{}, fmt.Errorf("%w: raw length %d", errs.ErrInvalidBlockHeader, h.RawLen)
	}

	return h, nil
}

// ReadBlock decodes a block written by WriteBlock and returns its raw bytes in a new slice.
// It is ReadBlockLimits with the default limits.
func ReadBlock(src []byte) ([]byte, error) {
	return ReadBlockLimits(src, limits.Default())
}

// ReadBlockLimits decodes a block whose raw length may not exceed l.MaxInternalObjectSize.
// The codec is held to the raw length of the header, so a payload recording a larger
// decoded size fails with errs.ErrBlockSizeMismatch before its output is allocated.
func ReadBlockLimits(src []byte, l limits.Limits) ([]byte, error) {
	h, err := parseBlockHeader(src, l.MaxInternalObjectSize)
	if err != nil {
		return nil, err
	}

	codec, err := GetCodec(h.Compression)
	if err != nil {
		return nil, err
	}

	raw, err := decompressLimit(codec, make([]byte, 0, h.RawLen), src[BlockHeaderSize:], h.RawLen)
	if err != nil {
		return nil, fmt.Errorf("decompress %s block: %w", h.Compression, err)
	}
	if len(raw) != h.RawLen {
		return nil, fmt.Errorf("%w: header %d, decompressed %d", errs.ErrBlockSizeMismatch, h.RawLen, len(raw))
	}

	return raw, nil
}
