package compress

// NoOpCompressor stores blocks uncompressed. It is the baseline for measuring codec
// overhead and the right choice for incompressible payloads.
type NoOpCompressor struct{}

var (
	_ Codec               = (*NoOpCompressor)(nil)
	_ LimitedDecompressor = (*NoOpCompressor)(nil)
)

// NewNoOpCompressor creates a pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress appends src to dst unchanged.
func (c NoOpCompressor) Compress(dst, src []byte) ([]byte, error) {
	return append(dst, src...), nil
}

// Decompress appends src to dst unchanged.
func (c NoOpCompressor) Decompress(dst, src []byte) ([]byte, error) {
	return append(dst, src...), nil
}

// DecompressLimit appends src to dst unless it is longer than limit.
func (c NoOpCompressor) DecompressLimit(dst, src []byte, limit int) ([]byte, error) {
	if len(src) > limit {
		return dst, errOverLimit(len(src), limit)
	}

	return append(dst, src...), nil
}
