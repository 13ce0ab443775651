package main

import (
	"fmt"
	"time"
)

// ValueKind is one of SQLite's five storage classes.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindInteger
	KindReal
	KindText
	KindBlob
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	default:
		return "unknown"
	}
}

// Value is a single cell tagged with its storage class. Modeling the class
// explicitly keeps statement binding free of silent coercions between what
// SQLite returned and what the MySQL driver sends.
type Value struct {
	Kind  ValueKind
	Int   int64
	Real  float64
	Text  string
	Bytes []byte
}

// valueOf classifies a value as scanned from the SQLite driver.
func valueOf(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Value{Kind: KindNull}, nil
	case int64:
		return Value{Kind: KindInteger, Int: x}, nil
	case float64:
		return Value{Kind: KindReal, Real: x}, nil
	case string:
		return Value{Kind: KindText, Text: x}, nil
	case []byte:
		return Value{Kind: KindBlob, Bytes: x}, nil
	case bool:
		// SQLite has no boolean storage class; 0/1 like the source file holds
		if x {
			return Value{Kind: KindInteger, Int: 1}, nil
		}
		return Value{Kind: KindInteger, Int: 0}, nil
	case time.Time:
		// The write connection pins Loc=UTC, so normalize before dropping
		// the offset from the literal.
		return Value{Kind: KindText, Text: x.UTC().Format("2006-01-02 15:04:05")}, nil
	default:
		return Value{}, fmt.Errorf("unsupported source value type %T", v)
	}
}

// arg returns the value in the form bound into a parameterized MySQL statement.
func (v Value) arg() any {
	switch v.Kind {
	case KindInteger:
		return v.Int
	case KindReal:
		return v.Real
	case KindText:
		return v.Text
	case KindBlob:
		return v.Bytes
	default:
		return nil
	}
}
