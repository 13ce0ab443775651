package main

import "fmt"

// ErrorKind classifies migration failures so callers can branch without
// matching on message text.
type ErrorKind int

const (
	// KindInvalidType means a column's declared type has no extractable
	// leading type token.
	KindInvalidType ErrorKind = iota + 1
	// KindSchema means the target rejected table DDL.
	KindSchema
	// KindDataTransfer means the target rejected a batch insert.
	KindDataTransfer
	// KindConnectivity means one of the database handles is unusable.
	KindConnectivity
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidType:
		return "invalid type"
	case KindSchema:
		return "schema"
	case KindDataTransfer:
		return "data transfer"
	case KindConnectivity:
		return "connectivity"
	default:
		return "unknown"
	}
}

// MigrationError wraps a failure with its kind and the table being processed
// when it occurred. All pipeline errors are fail-fast: the first one aborts
// the whole run.
type MigrationError struct {
	Kind  ErrorKind
	Table string
	Err   error
}

func (e *MigrationError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s error on table %s: %v", e.Kind, e.Table, e.Err)
}

func (e *MigrationError) Unwrap() error { return e.Err }

// InvalidTypeError reports a column type declaration that does not begin
// with a recognizable type-name token.
type InvalidTypeError struct {
	Declared string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid column type declaration %q", e.Declared)
}
