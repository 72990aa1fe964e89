package endian

// Little is a little-endian field of type T at a fixed position inside a byte slice.
//
// The view does not own its bytes; it reads and writes through the slice it was bound to.
// If the slice is reallocated by its owner the view keeps pointing at the old array.
type Little[T Number] struct {
	b []byte
}

// LittleAt binds a little-endian view of T to b[off:].
//
// It panics if fewer than SizeOf[T]() bytes remain after off.
func LittleAt[T Number](b []byte, off int) Little[T] {
	n := SizeOf[T]()
	return Little[T]{b: b[off : off+n : off+n]}
}

// Get decodes the field.
func (v Little[T]) Get() T { return ReadLE[T](v.b) }

// Set encodes x into the field.
func (v Little[T]) Set(x T) { CopyLE(v.b, x) }

// Bytes returns the SizeOf[T]() bytes backing the field.
func (v Little[T]) Bytes() []byte { return v.b }

// Big is the big-endian counterpart of Little.
type Big[T Number] struct {
	b []byte
}

// BigAt binds a big-endian view of T to b[off:].
func BigAt[T Number](b []byte, off int) Big[T] {
	n := SizeOf[T]()
	return Big[T]{b: b[off : off+n : off+n]}
}

// Get decodes the field.
func (v Big[T]) Get() T { return ReadBE[T](v.b) }

// Set encodes x into the field.
func (v Big[T]) Set(x T) { CopyBE(v.b, x) }

// Bytes returns the SizeOf[T]() bytes backing the field.
func (v Big[T]) Bytes() []byte { return v.b }

// Integer is the subset of Number that supports arithmetic updates.
type Integer interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64
}

// Float is the subset of Number holding IEEE 754 values.
type Float interface {
	float32 | float64
}

// AddLittle performs v = v + delta in place and returns the new value.
func AddLittle[T Integer | Float](v Little[T], delta T) T {
	x := v.Get() + delta
	v.Set(x)

	return x
}

// AddBig performs v = v + delta in place and returns the new value.
func AddBig[T Integer | Float](v Big[T], delta T) T {
	x := v.Get() + delta
	v.Set(x)

	return x
}
