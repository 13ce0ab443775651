package main

import (
	"regexp"
	"strings"
)

// columnLengthPattern matches a plain length suffix like "(255)" anchored at
// the end of a declared type. Multi-part suffixes such as "(10,2)" are never
// treated as a length: classified branches drop them and unclassified
// declarations pass through whole.
var columnLengthPattern = regexp.MustCompile(`\(\d+\)$`)

// Translator maps SQLite declared column types to MySQL column types.
// IntegerType and StringType are the configured type-family defaults used
// where the source declaration carries no usable width of its own.
type Translator struct {
	IntegerType string // e.g. "INT"
	StringType  string // e.g. "VARCHAR(255)"
	JSONAsText  bool   // set when the target server predates JSON columns
}

func defaultTranslator() Translator {
	return Translator{
		IntegerType: "INT",
		StringType:  "VARCHAR(255)",
	}
}

// Translate returns the MySQL type for a declared SQLite column type.
// The classification key is the leading type-name token: everything before
// the first '(' of the upper-cased declaration. Declarations without a
// leading token fail with InvalidTypeError.
func (tr Translator) Translate(declared string) (string, error) {
	trimmed := strings.TrimSpace(declared)
	token := leadingTypeToken(trimmed)
	if token == "" {
		return "", &InvalidTypeError{Declared: declared}
	}

	full := strings.ToUpper(trimmed)
	switch token {
	case "TEXT", "CLOB":
		return "TEXT", nil
	case "CHARACTER", "NCHAR", "NATIVE CHARACTER":
		return "CHAR" + columnTypeLength(trimmed), nil
	case "VARYING CHARACTER", "NVARCHAR", "VARCHAR":
		if tr.StringType == "TEXT" {
			return tr.StringType, nil
		}
		length := columnTypeLength(trimmed)
		if length == "" {
			return tr.StringType, nil
		}
		return leadingTypeToken(tr.StringType) + length, nil
	case "DOUBLE PRECISION":
		return "DOUBLE", nil
	case "UNSIGNED BIG INT":
		return "BIGINT" + columnTypeLength(trimmed) + " UNSIGNED", nil
	case "INT1", "INT2":
		return tr.IntegerType, nil
	case "JSON":
		if tr.JSONAsText {
			return "TEXT", nil
		}
		return full, nil
	default:
		// INTEGER, REAL, BLOB, NUMERIC, DECIMAL(10,2), ... carry over as-is
		return full, nil
	}
}

// leadingTypeToken extracts the upper-cased run of characters before the
// first '(', or the whole string when no '(' is present. Returns "" for
// declarations with no extractable token.
func leadingTypeToken(declared string) string {
	s := declared
	if idx := strings.IndexByte(s, '('); idx >= 0 {
		s = s[:idx]
	}
	return strings.ToUpper(strings.TrimSpace(s))
}

// columnTypeLength returns the "(n)" suffix of a declared type, or "".
func columnTypeLength(declared string) string {
	return columnLengthPattern.FindString(strings.TrimSpace(declared))
}

// autoIncrementCapable reports whether a translated type is integer-class
// and therefore eligible for AUTO_INCREMENT on a primary-key column.
func autoIncrementCapable(mysqlType string) bool {
	return mysqlType == "INT" || mysqlType == "BIGINT"
}
