// Package endian provides the fixed byte order rules used by the element encoding.
//
// The wire format stores every multi-byte number little-endian. This package exposes
// that rule in two layers:
//
//   - EndianEngine, the combination of encoding/binary's ByteOrder and AppendByteOrder,
//     used wherever the byte order is a runtime choice;
//   - the packed storage functions ReadLE, CopyLE, ReadBE and CopyBE, generic over every
//     fixed-width number, which never assume the target address is aligned.
//
// # Basic Usage
//
//	buf := make([]byte, 8)
//	endian.CopyLE(buf, 3.5)
//	v := endian.ReadLE[float64](buf) // 3.5, bit for bit
//
// Floating point values travel as their IEEE 754 bit pattern, so NaN payloads and
// negative zero survive a round trip unchanged.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use on distinct byte ranges.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	return hostOrder
}

var hostOrder = detectEndianness()

func detectEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	// Create a byte slice pointing to the memory address of 'i'.
	// We only need the first byte.
	b := (*[2]byte)(unsafe.Pointer(&i))

	// Check the first byte at the lowest memory address
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host stores integers least significant byte first.
func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

// IsNativeBigEndian reports whether the host stores integers most significant byte first.
func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine, the byte order of the wire format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
