package element

import (
	"math"

	"github.com/arloliu/docbuf/format"
)

// castInt64 converts d the way the hardware conversion does on amd64: values that do
// not fit, NaN included, become math.MinInt64.
func castInt64(d float64) int64 {
	if math.IsNaN(d) || d >= 0x1p63 || d < -0x1p63 {
		return math.MinInt64
	}

	return int64(d)
}

// castInt32 is castInt64 for 32-bit results.
func castInt32(d float64) int32 {
	if math.IsNaN(d) || d >= 0x1p31 || d < -0x1p31 {
		return math.MinInt32
	}

	return int32(d)
}

// NumberInt32 returns a numeric value converted to int32, or 0 for other tags. Int64
// values are truncated to their low 32 bits.
func (e *Element) NumberInt32() int32 {
	switch e.Type() {
	case format.TypeDouble:
		return castInt32(e.valueFloat64())
	case format.TypeInt32:
		return e.valueInt32()
	case format.TypeInt64:
		return int32(e.valueInt64()) //nolint:gosec // truncation is the documented behavior
	default:
		return 0
	}
}

// NumberInt64 returns a numeric value converted to int64, or 0 for other tags.
func (e *Element) NumberInt64() int64 {
	switch e.Type() {
	case format.TypeDouble:
		return castInt64(e.valueFloat64())
	case format.TypeInt32:
		return int64(e.valueInt32())
	case format.TypeInt64:
		return e.valueInt64()
	default:
		return 0
	}
}

// NumberDouble returns a numeric value converted to float64, or 0 for other tags.
func (e *Element) NumberDouble() float64 {
	switch e.Type() {
	case format.TypeDouble:
		return e.valueFloat64()
	case format.TypeInt32:
		return float64(e.valueInt32())
	case format.TypeInt64:
		return float64(e.valueInt64())
	default:
		return 0
	}
}

// Number is NumberDouble.
func (e *Element) Number() float64 { return e.NumberDouble() }

// SafeNumberInt64 is NumberInt64 with saturating conversion of doubles: NaN becomes 0
// and values beyond the int64 range clamp to its ends.
func (e *Element) SafeNumberInt64() int64 {
	if e.Type() != format.TypeDouble {
		return e.NumberInt64()
	}

	d := e.valueFloat64()
	switch {
	case math.IsNaN(d):
		return 0
	case d > math.MaxInt64:
		return math.MaxInt64
	case d < math.MinInt64:
		return math.MinInt64
	default:
		return castInt64(d)
	}
}

// StringSafe returns the content of a String element, or "" for any other tag.
func (e *Element) StringSafe() string {
	s, err := e.stringLike(format.TypeString)
	if err != nil {
		return ""
	}

	return s
}

// BooleanSafe returns the value of a Boolean element, or false for any other tag.
func (e *Element) BooleanSafe() bool {
	return e.IsBoolean() && e.valueByte() != 0
}

// Truthy reports the truth value of the element. Numbers are true when non-zero (NaN is
// true), booleans by their byte, EOO, Null and Undefined are false and everything else
// is true.
func (e *Element) Truthy() bool {
	switch e.Type() {
	case format.TypeInt32:
		return e.valueInt32() != 0
	case format.TypeInt64:
		return e.valueInt64() != 0
	case format.TypeDouble:
		return e.valueFloat64() != 0
	case format.TypeBoolean:
		return e.valueByte() != 0
	case format.TypeEOO, format.TypeNull, format.TypeUndefined:
		return false
	default:
		return true
	}
}
