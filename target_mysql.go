package main

import (
	"context"
	"database/sql"
	"fmt"
)

// mysqlTarget executes DDL and batched DML against the destination server.
// Each batch insert runs in its own transaction; a committed batch is final.
type mysqlTarget struct {
	db *sql.DB
}

// openMySQLTarget connects to the configured database, optionally creating
// it first with the same character set the tables use.
func openMySQLTarget(ctx context.Context, dsn, database string, createDatabase bool) (*mysqlTarget, error) {
	if createDatabase {
		if err := ensureDatabase(ctx, dsn, database); err != nil {
			return nil, err
		}
	}

	writeDSN, err := mysqlDSNWithWriteOptions(dsn, database)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", writeDSN)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return &mysqlTarget{db: db}, nil
}

func ensureDatabase(ctx context.Context, dsn, database string) error {
	adminDSN, err := mysqlAdminDSN(dsn)
	if err != nil {
		return err
	}
	admin, err := sql.Open("mysql", adminDSN)
	if err != nil {
		return fmt.Errorf("open mysql: %w", err)
	}
	defer admin.Close()

	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s DEFAULT CHARACTER SET 'utf8mb4'", mysqlIdent(database))
	if _, err := admin.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create database %s: %w", database, err)
	}
	return nil
}

func (t *mysqlTarget) Close() error { return t.db.Close() }

// ServerVersion returns the raw server version string, e.g. "8.0.36" or
// "10.6.16-MariaDB".
func (t *mysqlTarget) ServerVersion(ctx context.Context) (string, error) {
	var name, value string
	err := t.db.QueryRowContext(ctx, "SHOW VARIABLES LIKE 'version'").Scan(&name, &value)
	if err != nil {
		return "", fmt.Errorf("read server version: %w", err)
	}
	return value, nil
}

func (t *mysqlTarget) CreateTable(ctx context.Context, ddl string) error {
	if _, err := t.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("%w\nDDL: %s", err, ddl)
	}
	return nil
}

// InsertRows writes one batch as a single multi-row INSERT IGNORE inside its
// own transaction. The commit boundary is the batch boundary.
func (t *mysqlTarget) InsertRows(ctx context.Context, table string, columns []string, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	query := buildInsert(table, columns, len(rows))
	args := make([]any, 0, len(rows)*len(columns))
	for _, row := range rows {
		args = append(args, row.args()...)
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		tx.Rollback()
		return fmt.Errorf("insert batch: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}
