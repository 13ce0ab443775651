package main

// ColumnSpec describes a single column as read from SQLite's PRAGMA table_info.
type ColumnSpec struct {
	Name         string
	DeclaredType string // raw declared type, e.g. "varchar(100)", "INTEGER"
	NotNull      bool
	PrimaryKey   bool
}

// TranslatedColumn is a ColumnSpec carried into the MySQL dialect.
// AutoIncrement is set only for primary-key columns whose translated type
// is integer-class.
type TranslatedColumn struct {
	Name          string
	MySQLType     string
	NotNull       bool
	AutoIncrement bool
}

// TableSchema holds the introspected definition of one SQLite table.
// Columns keep PRAGMA table_info order; row tuples bind positionally to it.
// PrimaryKey names the single primary-key column, or is empty when the table
// has none. Composite keys are not modeled: the last PK column in table_info
// order wins.
type TableSchema struct {
	Name       string
	Columns    []ColumnSpec
	PrimaryKey string
}

// Row is one source row as positional storage-class values, matching the
// column order of its TableSchema.
type Row []Value

func (r Row) args() []any {
	out := make([]any, len(r))
	for i, v := range r {
		out[i] = v.arg()
	}
	return out
}
