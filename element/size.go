package element

import (
	"bytes"
	"fmt"

	"github.com/arloliu/docbuf/endian"
	"github.com/arloliu/docbuf/errs"
	"github.com/arloliu/docbuf/format"
)

// Minimum values of the length prefixes. A string length counts its terminator, a
// document length counts itself and its terminal byte, and a code with scope length
// covers both of its own prefixes, a one byte code and an empty scope document.
const (
	minStringLength        = 1
	minDocumentLength      = format.EmptyDocumentSize
	minCodeWithScopeLength = 2*format.LengthPrefixSize + minStringLength + format.EmptyDocumentSize
)

// Size returns the total encoded length of the element: tag, field name and value.
// It never reads past the end of the viewed data.
func (e *Element) Size() (int, error) {
	if e.totalSize > 0 {
		return e.totalSize, nil
	}

	return e.SizeBounded(len(e.data))
}

// SizeBounded is Size for input that must not be scanned beyond maxLen bytes. It returns
// errs.ErrInsufficientBytes when fewer than four bytes remain for a length prefix or the
// encoded value does not fit in the bound. A size cached by an earlier call is checked
// against maxLen too, so a nil error always means the result is at most maxLen.
func (e *Element) SizeBounded(maxLen int) (int, error) {
	if e.totalSize > 0 {
		if e.totalSize > maxLen {
			return 0, fmt.Errorf("%w: element of %d bytes exceeds the %d byte bound",
				errs.ErrInsufficientBytes, e.totalSize, maxLen)
		}

		return e.totalSize, nil
	}
	if e.EOO() {
		e.totalSize = 1
		return 1, nil
	}
	if maxLen > len(e.data) {
		maxLen = len(e.data)
	}

	nameSize := e.nameSize
	if nameSize == 0 {
		if maxLen < 1 {
			return 0, errs.ErrInsufficientBytes
		}
		i := bytes.IndexByte(e.data[1:maxLen], 0)
		if i < 0 {
			return 0, errs.ErrInvalidFieldName
		}
		nameSize = i + 1
	}

	off := 1 + nameSize
	remain := maxLen - off

	valueSize, err := e.valueSize(off, remain)
	if err != nil {
		return 0, err
	}

	total := off + valueSize
	if valueSize > remain {
		return 0, fmt.Errorf("%w: %s value needs %d bytes, %d available",
			errs.ErrInsufficientBytes, e.Type(), valueSize, remain)
	}

	e.nameSize = nameSize
	e.totalSize = total

	return total, nil
}

// valueSize computes the value length for the value starting at off, with remain bytes
// available to scan.
func (e *Element) valueSize(off, remain int) (int, error) {
	t := e.Type()
	switch t {
	case format.TypeEOO, format.TypeUndefined, format.TypeNull, format.TypeMaxKey, format.TypeMinKey:
		return 0, nil
	case format.TypeBoolean:
		return 1, nil
	case format.TypeInt32:
		return 4, nil
	case format.TypeDateTime, format.TypeDouble, format.TypeInt64, format.TypeTimestamp:
		return 8, nil
	case format.TypeObjectID:
		return format.ObjectIDSize, nil
	case format.TypeString, format.TypeJavaScript, format.TypeSymbol:
		n, err := e.lengthPrefix(off, remain, minStringLength)
		if err != nil {
			return 0, err
		}

		return n + format.LengthPrefixSize, nil
	case format.TypeCodeWithScope:
		return e.lengthPrefix(off, remain, minCodeWithScopeLength)
	case format.TypeDBPointer:
		n, err := e.lengthPrefix(off, remain, minStringLength)
		if err != nil {
			return 0, err
		}

		return n + format.LengthPrefixSize + format.ObjectIDSize, nil
	case format.TypeEmbeddedDocument, format.TypeArray:
		return e.lengthPrefix(off, remain, minDocumentLength)
	case format.TypeBinary:
		n, err := e.lengthPrefix(off, remain, 0)
		if err != nil {
			return 0, err
		}

		return n + format.LengthPrefixSize + 1, nil
	case format.TypeRegex:
		if remain < 0 {
			return 0, errs.ErrInvalidRegex
		}
		value := e.data[off : off+remain]
		len1 := bytes.IndexByte(value, 0)
		if len1 < 0 {
			return 0, errs.ErrInvalidRegex
		}
		len2 := bytes.IndexByte(value[len1+1:], 0)
		if len2 < 0 {
			return 0, errs.ErrInvalidRegexOptions
		}

		return len1 + 1 + len2 + 1, nil
	default:
		return 0, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownType, uint8(t))
	}
}

// lengthPrefix reads the int32 length at off. More than three bytes must remain.
func (e *Element) lengthPrefix(off, remain, minValue int) (int, error) {
	if remain <= 3 {
		return 0, fmt.Errorf("%w: %s length prefix needs 4 bytes, %d available",
			errs.ErrInsufficientBytes, e.Type(), max(remain, 0))
	}

	n := int(endian.ReadLE[int32](e.data[off:]))
	if n < minValue {
		return 0, fmt.Errorf("%w: %s length %d", errs.ErrInvalidLength, e.Type(), n)
	}

	return n, nil
}
