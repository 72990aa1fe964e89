package format

// Type is the leading tag byte of an encoded element.
type Type uint8

type (
	BinarySubtype   uint8
	CompressionType uint8
)

const (
	TypeEOO              Type = 0x00 // TypeEOO is the terminal "end of object" element.
	TypeDouble           Type = 0x01 // TypeDouble is an IEEE 754 binary64 value.
	TypeString           Type = 0x02 // TypeString is a length-prefixed UTF-8 string.
	TypeEmbeddedDocument Type = 0x03 // TypeEmbeddedDocument is a nested document.
	TypeArray            Type = 0x04 // TypeArray is a nested document keyed "0", "1", ...
	TypeBinary           Type = 0x05 // TypeBinary is a length-prefixed byte payload with a subtype.
	TypeUndefined        Type = 0x06 // TypeUndefined is the deprecated undefined value.
	TypeObjectID         Type = 0x07 // TypeObjectID is a 12 byte object identifier.
	TypeBoolean          Type = 0x08 // TypeBoolean is a one byte boolean.
	TypeDateTime         Type = 0x09 // TypeDateTime is milliseconds since the Unix epoch.
	TypeNull             Type = 0x0A // TypeNull is the null value.
	TypeRegex            Type = 0x0B // TypeRegex is a pattern cstring followed by an options cstring.
	TypeDBPointer        Type = 0x0C // TypeDBPointer is a namespace string followed by an object ID.
	TypeJavaScript       Type = 0x0D // TypeJavaScript is JavaScript code.
	TypeSymbol           Type = 0x0E // TypeSymbol is a deprecated symbol string.
	TypeCodeWithScope    Type = 0x0F // TypeCodeWithScope is code plus a scope document.
	TypeInt32            Type = 0x10 // TypeInt32 is a signed 32-bit integer.
	TypeTimestamp        Type = 0x11 // TypeTimestamp is an internal (increment, seconds) pair.
	TypeInt64            Type = 0x12 // TypeInt64 is a signed 64-bit integer.
	TypeMaxKey           Type = 0x7F // TypeMaxKey compares greater than every other value.
	TypeMinKey           Type = 0xFF // TypeMinKey compares less than every other value.

	BinaryGeneric     BinarySubtype = 0x00
	BinaryFunction    BinarySubtype = 0x01
	BinaryOld         BinarySubtype = 0x02 // BinaryOld carries an extra inner int32 length.
	BinaryUUIDOld     BinarySubtype = 0x03
	BinaryUUID        BinarySubtype = 0x04
	BinaryMD5         BinarySubtype = 0x05
	BinaryUserDefined BinarySubtype = 0x80

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Fixed sizes of the encoding.
const (
	ObjectIDSize      = 12 // ObjectIDSize is the size of an object ID value.
	EmptyDocumentSize = 5  // EmptyDocumentSize is the int32 length prefix plus the terminal byte.
	LengthPrefixSize  = 4  // LengthPrefixSize is the size of every int32 length field.
)

func (t Type) String() string {
	switch t {
	case TypeEOO:
		return "EOO"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeEmbeddedDocument:
		return "embedded document"
	case TypeArray:
		return "array"
	case TypeBinary:
		return "binary"
	case TypeUndefined:
		return "undefined"
	case TypeObjectID:
		return "objectID"
	case TypeBoolean:
		return "boolean"
	case TypeDateTime:
		return "datetime"
	case TypeNull:
		return "null"
	case TypeRegex:
		return "regex"
	case TypeDBPointer:
		return "dbpointer"
	case TypeJavaScript:
		return "javascript"
	case TypeSymbol:
		return "symbol"
	case TypeCodeWithScope:
		return "code with scope"
	case TypeInt32:
		return "32-bit integer"
	case TypeTimestamp:
		return "timestamp"
	case TypeInt64:
		return "64-bit integer"
	case TypeMaxKey:
		return "maxKey"
	case TypeMinKey:
		return "minKey"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is a tag the encoding defines.
func (t Type) Valid() bool {
	switch {
	case t <= TypeInt64:
		return true
	case t == TypeMaxKey, t == TypeMinKey:
		return true
	default:
		return false
	}
}

// IsNumber reports whether t is one of the three numeric representations.
func (t Type) IsNumber() bool {
	return t == TypeDouble || t == TypeInt32 || t == TypeInt64
}

func (s BinarySubtype) String() string {
	switch s {
	case BinaryGeneric:
		return "generic"
	case BinaryFunction:
		return "function"
	case BinaryOld:
		return "binary (old)"
	case BinaryUUIDOld:
		return "uuid (old)"
	case BinaryUUID:
		return "uuid"
	case BinaryMD5:
		return "md5"
	default:
		if s >= BinaryUserDefined {
			return "user defined"
		}

		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
