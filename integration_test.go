//go:build integration

package main

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// TestIntegration_MySQL runs a full migration against a real MySQL server.
// MYSQL_DSN must point at a server where the test may create and drop the
// liteferry_it database, e.g. root:root@tcp(127.0.0.1:3306)/
func TestIntegration_MySQL(t *testing.T) {
	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		t.Skip("MYSQL_DSN env var required")
	}

	const database = "liteferry_it"
	ctx := context.Background()

	// --- Seed SQLite ---
	path := newTestDB(t,
		`CREATE TABLE users (
			id INT NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email TEXT,
			balance REAL,
			avatar BLOB
		)`,
		"INSERT INTO users (name, email, balance) VALUES ('Alice', 'alice@example.com', 1.5)",
		"INSERT INTO users (name, email, balance) VALUES ('Bob', NULL, 0)",
		"INSERT INTO users (name, email, balance) VALUES ('Charlie', 'charlie@example.com', -3.25)",
		`CREATE TABLE tags (
			label TEXT NOT NULL PRIMARY KEY,
			weight NUMERIC
		)`,
		"INSERT INTO tags VALUES ('red', 1), ('green', 2)",
		"CREATE TABLE empty_table (n INTEGER)",
	)

	src, err := openSQLiteSource(path, nil)
	if err != nil {
		t.Fatalf("open source: %v", err)
	}
	defer src.Close()

	// --- Reset and open target ---
	adminDSN, err := mysqlAdminDSN(mysqlDSN)
	if err != nil {
		t.Fatalf("admin dsn: %v", err)
	}
	admin, err := sql.Open("mysql", adminDSN)
	if err != nil {
		t.Fatalf("open admin: %v", err)
	}
	defer admin.Close()
	if _, err := admin.ExecContext(ctx, "DROP DATABASE IF EXISTS "+database); err != nil {
		t.Fatalf("drop database: %v", err)
	}

	target, err := openMySQLTarget(ctx, mysqlDSN, database, true)
	if err != nil {
		t.Fatalf("open target: %v", err)
	}
	defer target.Close()

	// --- Migrate chunked ---
	m := NewMigrator(src, target, defaultTranslator(), 2, nil)
	if err := m.MigrateAllTables(ctx); err != nil {
		t.Fatalf("MigrateAllTables() error: %v", err)
	}

	assertCount := func(table string, want int) {
		t.Helper()
		var got int
		if err := target.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+mysqlIdent(table)).Scan(&got); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if got != want {
			t.Errorf("%s has %d rows, want %d", table, got, want)
		}
	}
	assertCount("users", 3)
	assertCount("tags", 2)
	assertCount("empty_table", 0)

	// Integer PK became AUTO_INCREMENT, text PK did not
	var createUsers, createTags, name string
	if err := target.db.QueryRowContext(ctx, "SHOW CREATE TABLE `users`").Scan(&name, &createUsers); err != nil {
		t.Fatalf("show create users: %v", err)
	}
	if err := target.db.QueryRowContext(ctx, "SHOW CREATE TABLE `tags`").Scan(&name, &createTags); err != nil {
		t.Fatalf("show create tags: %v", err)
	}
	if !strings.Contains(createUsers, "AUTO_INCREMENT") {
		t.Errorf("users.id should be AUTO_INCREMENT:\n%s", createUsers)
	}
	if strings.Contains(createTags, "AUTO_INCREMENT") {
		t.Errorf("tags.label must not be AUTO_INCREMENT:\n%s", createTags)
	}

	// --- Re-run: idempotent under INSERT IGNORE ---
	src2, err := openSQLiteSource(path, nil)
	if err != nil {
		t.Fatalf("reopen source: %v", err)
	}
	defer src2.Close()

	m2 := NewMigrator(src2, target, defaultTranslator(), 2, nil)
	if err := m2.MigrateAllTables(ctx); err != nil {
		t.Fatalf("re-run error: %v", err)
	}
	assertCount("users", 3)
	assertCount("tags", 2)
}
