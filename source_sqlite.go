package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// sqliteSource reads schema and rows from one SQLite database file. It owns
// a single connection for the whole run. A non-empty only list restricts the
// migration to that subset of tables.
type sqliteSource struct {
	db   *sql.DB
	only []string
}

// openSQLiteSource opens the source file read-only.
func openSQLiteSource(path string, only []string) (*sqliteSource, error) {
	uri, err := sqliteReadOnlyURI(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", uri)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &sqliteSource{db: db, only: only}, nil
}

func (s *sqliteSource) Close() error { return s.db.Close() }

func (s *sqliteSource) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ListTables returns user tables in catalog order, excluding SQLite's
// internal sqlite_* tables. When a subset was configured, only matching
// tables are returned.
func (s *sqliteSource) ListTables(ctx context.Context) ([]string, error) {
	query := "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'"
	var args []any
	if len(s.only) > 0 {
		query += " AND name IN (" + strings.TrimSuffix(strings.Repeat("?, ", len(s.only)), ", ") + ")"
		for _, t := range s.only {
			args = append(args, t)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// IntrospectTable reads one table's columns from PRAGMA table_info.
func (s *sqliteSource) IntrospectTable(ctx context.Context, table string) (*TableSchema, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", sqliteIdent(table)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schema := &TableSchema{Name: table}
	for rows.Next() {
		var cid, notnull, pk int
		var name, declaredType string
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &declaredType, &notnull, &dflt, &pk); err != nil {
			return nil, err
		}
		schema.Columns = append(schema.Columns, ColumnSpec{
			Name:         name,
			DeclaredType: declaredType,
			NotNull:      notnull != 0,
			PrimaryKey:   pk > 0,
		})
		if pk > 0 {
			schema.PrimaryKey = name
		}
	}
	return schema, rows.Err()
}

func (s *sqliteSource) CountRows(ctx context.Context, table string) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM %s", sqliteIdent(table)),
	).Scan(&total)
	return total, err
}

// ReadRows opens a full-table cursor. Rows are materialized by Fetch in
// bounded batches so memory stays proportional to the chunk size.
func (s *sqliteSource) ReadRows(ctx context.Context, table string) (RowReader, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", sqliteIdent(table)))
	if err != nil {
		return nil, err
	}
	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, err
	}
	return &sqliteRowReader{rows: rows, columns: columns}, nil
}

type sqliteRowReader struct {
	rows    *sql.Rows
	columns []string
}

func (r *sqliteRowReader) Columns() []string { return r.columns }

func (r *sqliteRowReader) Fetch(max int) ([]Row, error) {
	var out []Row
	values := make([]any, len(r.columns))
	ptrs := make([]any, len(r.columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for max <= 0 || len(out) < max {
		if !r.rows.Next() {
			if err := r.rows.Err(); err != nil {
				return nil, err
			}
			break
		}
		if err := r.rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(values))
		for i, v := range values {
			val, err := valueOf(v)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", r.columns[i], err)
			}
			row[i] = val
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *sqliteRowReader) Close() error { return r.rows.Close() }

// sqliteIdent returns a double-quoted SQLite identifier.
func sqliteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// sqliteReadOnlyURI converts a file path or file: URI into a read-only
// connection URI. In-memory databases are rejected: each sql.Open would get
// a separate empty database.
func sqliteReadOnlyURI(path string) (string, error) {
	if path == ":memory:" || path == "file::memory:" || strings.Contains(path, "mode=memory") {
		return "", fmt.Errorf("in-memory SQLite databases are not supported")
	}

	if !strings.HasPrefix(path, "file:") {
		return "file:" + path + "?mode=ro", nil
	}

	u, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse sqlite URI: %w", err)
	}
	q := u.Query()
	q.Set("mode", "ro")
	u.RawQuery = q.Encode()
	return u.String(), nil
}
