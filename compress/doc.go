// Package compress provides block codecs for encoded documents at rest or on the wire.
//
// Every codec is append-style: Compress and Decompress append their output to dst and
// return the extended slice, so callers can recycle output buffers.
//
//	type Codec interface {
//	    Compress(dst, src []byte) ([]byte, error)
//	    Decompress(dst, src []byte) ([]byte, error)
//	}
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): copies the input.
//   - Zstd (format.CompressionZstd): best ratio. Pure Go klauspost/compress by default,
//     valyala/gozstd when built with the gozstd tag and cgo.
//   - S2 (format.CompressionS2): balanced speed and ratio.
//   - LZ4 (format.CompressionLZ4): fastest decompression.
//
// # Block Framing
//
// WriteBlock frames a payload as
//
//	block := type:uint8 rawLen:int32 compressed:byte*
//
// with the length little-endian. ReadBlock checks the header, refuses raw lengths above
// limits.MaxInternalObjectSize (ReadBlockLimits takes another ceiling) and holds the
// codec to the raw length of the header: a payload recording a larger decoded size is
// rejected before its output is allocated, and the decompressed size must match.
//
//	buf, _ := buffer.New()
//	if _, err := compress.WriteBlock(buf, format.CompressionS2, doc); err != nil {
//	    return err
//	}
//	raw, err := compress.ReadBlock(buf.Bytes())
//
// All codecs are safe for concurrent use.
package compress
