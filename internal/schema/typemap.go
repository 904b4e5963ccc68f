package schema

import "fmt"

// Firebird RDB$FIELD_TYPE codes understood by MapType.
const (
	FieldSmallint  int16 = 7
	FieldInteger   int16 = 8
	FieldFloat     int16 = 10
	FieldDate      int16 = 12
	FieldTime      int16 = 13
	FieldChar      int16 = 14
	FieldBigint    int16 = 16
	FieldDouble    int16 = 27
	FieldTimestamp int16 = 35
	FieldVarchar   int16 = 37
	FieldBlob      int16 = 261
)

// blobSubTypeText is RDB$FIELD_SUB_TYPE for text blobs.
const blobSubTypeText = 1

// MapType renders a catalog type descriptor as SQL type syntax.
//
// Unknown codes yield UNKNOWN_TYPE_<code> so an export never fails on an
// exotic column; the emitted script has to be fixed by hand before it runs.
func MapType(ft FieldType) string {
	switch ft.Type {
	case FieldSmallint:
		return integerOrNumeric("SMALLINT", 4, ft.Scale)
	case FieldInteger:
		return integerOrNumeric("INTEGER", 9, ft.Scale)
	case FieldBigint:
		return integerOrNumeric("BIGINT", 18, ft.Scale)
	case FieldFloat:
		return "FLOAT"
	case FieldDate:
		return "DATE"
	case FieldTime:
		return "TIME"
	case FieldDouble:
		return "DOUBLE PRECISION"
	case FieldTimestamp:
		return "TIMESTAMP"
	case FieldChar:
		return fmt.Sprintf("CHAR(%d)", ft.charLength())
	case FieldVarchar:
		return fmt.Sprintf("VARCHAR(%d)", ft.charLength())
	case FieldBlob:
		if ft.SubType.Valid && ft.SubType.Int16 == blobSubTypeText {
			return "BLOB SUB_TYPE TEXT"
		}
		return "BLOB"
	default:
		return fmt.Sprintf("UNKNOWN_TYPE_%d", ft.Type)
	}
}

// integerOrNumeric picks the fixed-point rendering for scaled integers.
func integerOrNumeric(name string, precision int, scale int16) string {
	if scale < 0 {
		return fmt.Sprintf("NUMERIC(%d,%d)", precision, -int(scale))
	}
	return name
}

// charLength prefers the character count over the byte length, which differs
// for multi-byte character sets.
func (ft FieldType) charLength() int32 {
	if ft.CharacterLength.Valid {
		return ft.CharacterLength.Int32
	}
	return ft.Length
}
