//go:build !(amd64 || 386 || arm64 || ppc64le || loong64 || wasm)

package endian

// UnalignedFastPath reports whether ReadLE/CopyLE use direct unaligned loads and stores.
const UnalignedFastPath = false

// Big-endian hosts and targets that fault on unaligned access assemble bytes manually.

func load16(b []byte) uint16 { return loadPortable16(b) }
func load32(b []byte) uint32 { return loadPortable32(b) }
func load64(b []byte) uint64 { return loadPortable64(b) }

func store16(b []byte, v uint16) { storePortable16(b, v) }
func store32(b []byte, v uint32) { storePortable32(b, v) }
func store64(b []byte, v uint64) { storePortable64(b, v) }
