//go:build amd64 || 386 || arm64 || ppc64le || loong64 || wasm

package endian

import "unsafe"

// UnalignedFastPath reports whether ReadLE/CopyLE use direct unaligned loads and stores.
const UnalignedFastPath = true

// These targets are little-endian and tolerate unaligned multi-byte access, so the
// little-endian representation is the host representation.

func load16(b []byte) uint16 {
	_ = b[1]
	return *(*uint16)(unsafe.Pointer(&b[0]))
}

func load32(b []byte) uint32 {
	_ = b[3]
	return *(*uint32)(unsafe.Pointer(&b[0]))
}

func load64(b []byte) uint64 {
	_ = b[7]
	return *(*uint64)(unsafe.Pointer(&b[0]))
}

func store16(b []byte, v uint16) {
	_ = b[1]
	*(*uint16)(unsafe.Pointer(&b[0])) = v
}

func store32(b []byte, v uint32) {
	_ = b[3]
	*(*uint32)(unsafe.Pointer(&b[0])) = v
}

func store64(b []byte, v uint64) {
	_ = b[7]
	*(*uint64)(unsafe.Pointer(&b[0])) = v
}
