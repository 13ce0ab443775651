package main

import (
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestMysqlDSNWithWriteOptions(t *testing.T) {
	dsn, err := mysqlDSNWithWriteOptions("root:root@tcp(127.0.0.1:3306)/ignored", "transfer")
	if err != nil {
		t.Fatalf("mysqlDSNWithWriteOptions() error: %v", err)
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("ParseDSN(%q) error: %v", dsn, err)
	}
	if cfg.DBName != "transfer" {
		t.Errorf("DBName = %q, want transfer", cfg.DBName)
	}
	if !cfg.InterpolateParams {
		t.Error("InterpolateParams should be enabled")
	}
	if cfg.MultiStatements {
		t.Error("MultiStatements should be disabled")
	}
	if cfg.Loc.String() != "UTC" {
		t.Errorf("Loc = %v, want UTC", cfg.Loc)
	}
}

func TestMysqlAdminDSN(t *testing.T) {
	dsn, err := mysqlAdminDSN("root:root@tcp(127.0.0.1:3306)/whatever")
	if err != nil {
		t.Fatalf("mysqlAdminDSN() error: %v", err)
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("ParseDSN(%q) error: %v", dsn, err)
	}
	if cfg.DBName != "" {
		t.Errorf("admin DSN should select no database, got %q", cfg.DBName)
	}
}

func TestMysqlDSNWithWriteOptions_Invalid(t *testing.T) {
	_, err := mysqlDSNWithWriteOptions("://bad-dsn", "transfer")
	if err == nil {
		t.Fatal("expected error for invalid DSN")
	}
	if !strings.Contains(err.Error(), "parse mysql dsn") {
		t.Errorf("error = %v, want parse context", err)
	}
}
