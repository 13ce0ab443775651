package main

import (
	"fmt"
	"strings"
)

// translateColumns maps every column of a table into the MySQL dialect,
// preserving order. Positional correspondence with the source columns is
// relied upon when binding row tuples.
func translateColumns(cols []ColumnSpec, tr Translator) ([]TranslatedColumn, error) {
	out := make([]TranslatedColumn, 0, len(cols))
	for _, col := range cols {
		mysqlType, err := tr.Translate(col.DeclaredType)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name, err)
		}
		out = append(out, TranslatedColumn{
			Name:          col.Name,
			MySQLType:     mysqlType,
			NotNull:       col.NotNull,
			AutoIncrement: col.PrimaryKey && autoIncrementCapable(mysqlType),
		})
	}
	return out, nil
}

// buildCreateTable produces CREATE TABLE IF NOT EXISTS DDL for the target.
// Re-running against a partially migrated destination does not fail on
// existing tables, only on conflicting column definitions.
func buildCreateTable(schema *TableSchema, cols []TranslatedColumn) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", mysqlIdent(schema.Name))

	for i, col := range cols {
		fmt.Fprintf(&b, "  %s %s", mysqlIdent(col.Name), col.MySQLType)
		if col.NotNull {
			b.WriteString(" NOT NULL")
		} else {
			b.WriteString(" NULL")
		}
		if col.AutoIncrement {
			b.WriteString(" AUTO_INCREMENT")
		}
		if i < len(cols)-1 || schema.PrimaryKey != "" {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}

	if schema.PrimaryKey != "" {
		fmt.Fprintf(&b, "  PRIMARY KEY (%s)\n", mysqlIdent(schema.PrimaryKey))
	}

	b.WriteString(") ENGINE = InnoDB CHARACTER SET utf8mb4")
	return b.String()
}

// buildInsert produces a multi-row INSERT IGNORE statement for one batch.
// IGNORE makes re-runs idempotent with respect to primary-key collisions:
// rows violating a uniqueness constraint are skipped, not fatal.
func buildInsert(table string, columns []string, rowCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT IGNORE INTO %s (", mysqlIdent(table))
	for i, col := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(mysqlIdent(col))
	}
	b.WriteString(") VALUES ")

	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	for i := 0; i < rowCount; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(placeholder)
	}
	return b.String()
}

// mysqlIdent returns a backquoted MySQL identifier.
func mysqlIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
