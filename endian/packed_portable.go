package endian

// Byte-at-a-time little-endian assembly. These are correct on every target regardless of
// host byte order or alignment rules, and are the reference the fast paths must match.

func loadPortable16(b []byte) uint16 {
	_ = b[1] // bounds check hint to compiler

	return uint16(b[0]) | uint16(b[1])<<8
}

func loadPortable32(b []byte) uint32 {
	_ = b[3] // bounds check hint to compiler

	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func loadPortable64(b []byte) uint64 {
	_ = b[7] // bounds check hint to compiler

	return uint64(b[0]) |
		uint64(b[1])<<8 |
		uint64(b[2])<<16 |
		uint64(b[3])<<24 |
		uint64(b[4])<<32 |
		uint64(b[5])<<40 |
		uint64(b[6])<<48 |
		uint64(b[7])<<56
}

func storePortable16(b []byte, v uint16) {
	_ = b[1] // bounds check hint to compiler
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func storePortable32(b []byte, v uint32) {
	_ = b[3] // bounds check hint to compiler
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func storePortable64(b []byte, v uint64) {
	_ = b[7] // bounds check hint to compiler
	for i := range 8 {
		b[i] = byte(v >> (8 * i))
	}
}
