package endian

import "math"

// Number is the set of fixed-width values with a packed storage rule.
//
// bool is stored through a one byte unsigned carrier; float32 and float64 are stored as
// their IEEE 754 bit patterns; every integer is stored as its two's complement bits.
type Number interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64 | bool
}

// SizeOf returns the number of bytes T occupies on the wire.
func SizeOf[T Number]() int {
	var zero T
	switch any(zero).(type) {
	case int8, uint8, bool:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	default:
		return 8
	}
}

// toStorage converts v to the unsigned carrier that is written byte by byte.
func toStorage[T Number](v T) uint64 {
	switch x := any(v).(type) {
	case bool:
		if x {
			return 1
		}

		return 0
	case int8:
		return uint64(uint8(x))
	case uint8:
		return uint64(x)
	case int16:
		return uint64(uint16(x))
	case uint16:
		return uint64(x)
	case int32:
		return uint64(uint32(x))
	case uint32:
		return uint64(x)
	case int64:
		return uint64(x) //nolint:gosec
	case uint64:
		return x
	case float32:
		return uint64(math.Float32bits(x))
	case float64:
		return math.Float64bits(x)
	}

	return 0
}

// fromStorage is the inverse of toStorage. Only the low SizeOf[T]() bytes of bits are used.
func fromStorage[T Number](bits uint64) T {
	var out T
	switch p := any(&out).(type) {
	case *bool:
		*p = uint8(bits) != 0
	case *int8:
		*p = int8(uint8(bits)) //nolint:gosec
	case *uint8:
		*p = uint8(bits)
	case *int16:
		*p = int16(uint16(bits)) //nolint:gosec
	case *uint16:
		*p = uint16(bits)
	case *int32:
		*p = int32(uint32(bits)) //nolint:gosec
	case *uint32:
		*p = uint32(bits)
	case *int64:
		*p = int64(bits) //nolint:gosec
	case *uint64:
		*p = bits
	case *float32:
		*p = math.Float32frombits(uint32(bits))
	case *float64:
		*p = math.Float64frombits(bits)
	}

	return out
}

// ReadLE reads a T stored little-endian at the start of src.
//
// src does not need any particular alignment. It panics if src is shorter than SizeOf[T]().
func ReadLE[T Number](src []byte) T {
	switch SizeOf[T]() {
	case 1:
		return fromStorage[T](uint64(src[0]))
	case 2:
		return fromStorage[T](uint64(load16(src)))
	case 4:
		return fromStorage[T](uint64(load32(src)))
	default:
		return fromStorage[T](load64(src))
	}
}

// CopyLE stores v little-endian at the start of dst.
//
// dst does not need any particular alignment. It panics if dst is shorter than SizeOf[T]().
func CopyLE[T Number](dst []byte, v T) {
	bits := toStorage(v)
	switch SizeOf[T]() {
	case 1:
		dst[0] = uint8(bits)
	case 2:
		store16(dst, uint16(bits))
	case 4:
		store32(dst, uint32(bits))
	default:
		store64(dst, bits)
	}
}

// AppendLE appends the little-endian encoding of v to dst.
func AppendLE[T Number](dst []byte, v T) []byte {
	n := SizeOf[T]()
	off := len(dst)
	dst = append(dst, make([]byte, n)...)
	CopyLE(dst[off:], v)

	return dst
}

// ReadBE reads a T stored big-endian at the start of src.
func ReadBE[T Number](src []byte) T {
	return Read[T](GetBigEndianEngine(), src)
}

// CopyBE stores v big-endian at the start of dst.
func CopyBE[T Number](dst []byte, v T) {
	Write(GetBigEndianEngine(), dst, v)
}

// Read reads a T from src using the byte order of engine.
func Read[T Number](engine EndianEngine, src []byte) T {
	switch SizeOf[T]() {
	case 1:
		return fromStorage[T](uint64(src[0]))
	case 2:
		return fromStorage[T](uint64(engine.Uint16(src)))
	case 4:
		return fromStorage[T](uint64(engine.Uint32(src)))
	default:
		return fromStorage[T](engine.Uint64(src))
	}
}

// Write stores v into dst using the byte order of engine.
func Write[T Number](engine EndianEngine, dst []byte, v T) {
	bits := toStorage(v)
	switch SizeOf[T]() {
	case 1:
		dst[0] = uint8(bits)
	case 2:
		engine.PutUint16(dst, uint16(bits))
	case 4:
		engine.PutUint32(dst, uint32(bits))
	default:
		engine.PutUint64(dst, bits)
	}
}
