package main

import (
	"context"
	"fmt"
)

// Source abstracts the open SQLite handle the pipeline reads from.
type Source interface {
	// ListTables returns user table names in catalog order.
	ListTables(ctx context.Context) ([]string, error)

	// IntrospectTable reads one table's column metadata.
	IntrospectTable(ctx context.Context, table string) (*TableSchema, error)

	// CountRows returns the total row count of a table.
	CountRows(ctx context.Context, table string) (int64, error)

	// ReadRows opens a cursor over all rows of a table.
	ReadRows(ctx context.Context, table string) (RowReader, error)
}

// RowReader is an open result cursor delivering rows in bounded batches.
type RowReader interface {
	// Columns returns the column names of the result set, in order.
	Columns() []string

	// Fetch returns up to max rows, or all remaining rows when max <= 0.
	// An empty slice with nil error means the cursor is drained.
	Fetch(max int) ([]Row, error)

	Close() error
}

// Target abstracts the open MySQL handle the pipeline writes to.
type Target interface {
	// CreateTable executes table DDL.
	CreateTable(ctx context.Context, ddl string) error

	// InsertRows inserts one batch with ignore-duplicate semantics and
	// commits it. A committed batch is final.
	InsertRows(ctx context.Context, table string, columns []string, rows []Row) error
}

// Migrator copies every table of a Source into a Target, schema first, then
// data. Tables are processed one at a time and batches within a table one at
// a time; the two handles are exclusively owned for the whole run.
type Migrator struct {
	source     Source
	target     Target
	translator Translator
	chunkSize  int // rows per batch; <= 0 transfers each table in one insert
	events     EventSink
}

func NewMigrator(source Source, target Target, translator Translator, chunkSize int, events EventSink) *Migrator {
	if events == nil {
		events = nopSink{}
	}
	return &Migrator{
		source:     source,
		target:     target,
		translator: translator,
		chunkSize:  chunkSize,
		events:     events,
	}
}

// MigrateAllTables runs the full migration. It fails fast: the first error
// aborts the run with the failing table attached, leaving tables processed
// before it migrated and the current one possibly partial (each committed
// batch is final).
func (m *Migrator) MigrateAllTables(ctx context.Context) error {
	tables, err := m.source.ListTables(ctx)
	if err != nil {
		return &MigrationError{Kind: KindConnectivity, Err: fmt.Errorf("list tables: %w", err)}
	}

	for _, table := range tables {
		if err := m.migrateTable(ctx, table); err != nil {
			return err
		}
	}
	return nil
}

func (m *Migrator) migrateTable(ctx context.Context, table string) error {
	schema, err := m.source.IntrospectTable(ctx, table)
	if err != nil {
		return &MigrationError{Kind: KindConnectivity, Table: table, Err: fmt.Errorf("introspect: %w", err)}
	}

	cols, err := translateColumns(schema.Columns, m.translator)
	if err != nil {
		return &MigrationError{Kind: KindInvalidType, Table: table, Err: err}
	}

	if err := m.target.CreateTable(ctx, buildCreateTable(schema, cols)); err != nil {
		return &MigrationError{Kind: KindSchema, Table: table, Err: err}
	}
	m.events.TableCreated(table)

	total, err := m.source.CountRows(ctx, table)
	if err != nil {
		return &MigrationError{Kind: KindConnectivity, Table: table, Err: fmt.Errorf("count rows: %w", err)}
	}
	if total == 0 {
		m.events.TableFinished(table, 0)
		return nil
	}

	if err := m.transferRows(ctx, table, total); err != nil {
		return err
	}
	m.events.TableFinished(table, total)
	return nil
}

func (m *Migrator) transferRows(ctx context.Context, table string, total int64) error {
	reader, err := m.source.ReadRows(ctx, table)
	if err != nil {
		return &MigrationError{Kind: KindConnectivity, Table: table, Err: fmt.Errorf("read rows: %w", err)}
	}
	defer reader.Close()

	columns := reader.Columns()

	if m.chunkSize <= 0 {
		m.events.TableStarted(table, total, 1)
		rows, err := reader.Fetch(0)
		if err != nil {
			return &MigrationError{Kind: KindConnectivity, Table: table, Err: fmt.Errorf("fetch rows: %w", err)}
		}
		if err := m.target.InsertRows(ctx, table, columns, rows); err != nil {
			return &MigrationError{Kind: KindDataTransfer, Table: table, Err: err}
		}
		m.events.BatchCommitted(table, 1, 1, len(rows))
		return nil
	}

	totalBatches := int((total + int64(m.chunkSize) - 1) / int64(m.chunkSize))
	m.events.TableStarted(table, total, totalBatches)

	for batch := 1; batch <= totalBatches; batch++ {
		rows, err := reader.Fetch(m.chunkSize)
		if err != nil {
			return &MigrationError{Kind: KindConnectivity, Table: table, Err: fmt.Errorf("fetch batch %d: %w", batch, err)}
		}
		if len(rows) == 0 {
			break
		}
		if err := m.target.InsertRows(ctx, table, columns, rows); err != nil {
			return &MigrationError{Kind: KindDataTransfer, Table: table, Err: err}
		}
		m.events.BatchCommitted(table, batch, totalBatches, len(rows))
	}
	return nil
}
