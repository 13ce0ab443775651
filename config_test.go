package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestConfig writes a config file plus an empty SQLite stand-in so the
// source.path existence check passes.
func writeTestConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()

	dbPath := filepath.Join(dir, "source.db")
	if err := os.WriteFile(dbPath, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(dir, "config.toml")
	body = strings.ReplaceAll(body, "{{db}}", dbPath)
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath
}

const minimalConfig = `
[source]
path = "{{db}}"

[target]
dsn = "user:pass@tcp(localhost:3306)/"
`

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(writeTestConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.Target.Database != "transfer" {
		t.Errorf("default database = %q, want transfer", cfg.Target.Database)
	}
	if !cfg.Target.CreateDatabase {
		t.Error("create_database should default to true")
	}
	if cfg.ChunkSize != 0 {
		t.Errorf("default chunk_size = %d, want 0", cfg.ChunkSize)
	}
	if cfg.TypeMapping.IntegerType != "INT" {
		t.Errorf("default integer_type = %q, want INT", cfg.TypeMapping.IntegerType)
	}
	if cfg.TypeMapping.StringType != "VARCHAR(255)" {
		t.Errorf("default string_type = %q, want VARCHAR(255)", cfg.TypeMapping.StringType)
	}
}

func TestLoadConfig_FullConfig(t *testing.T) {
	cfg, err := loadConfig(writeTestConfig(t, `
chunk_size = 500
quiet = true

[source]
path = "{{db}}"
tables = ["users", "posts"]

[target]
dsn = "user:pass@tcp(db.example.com:3306)/"
database = "warehouse"
create_database = false

[type_mapping]
integer_type = "bigint"
string_type = "varchar(128)"
`))
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.ChunkSize != 500 {
		t.Errorf("chunk_size = %d, want 500", cfg.ChunkSize)
	}
	if !cfg.Quiet {
		t.Error("quiet should be true")
	}
	if len(cfg.Source.Tables) != 2 {
		t.Errorf("tables = %v, want two entries", cfg.Source.Tables)
	}
	if cfg.Target.Database != "warehouse" {
		t.Errorf("database = %q, want warehouse", cfg.Target.Database)
	}
	if cfg.Target.CreateDatabase {
		t.Error("create_database should be false")
	}
	if cfg.TypeMapping.IntegerType != "BIGINT" {
		t.Errorf("integer_type = %q, want upper-cased BIGINT", cfg.TypeMapping.IntegerType)
	}
	if cfg.TypeMapping.StringType != "VARCHAR(128)" {
		t.Errorf("string_type = %q, want upper-cased VARCHAR(128)", cfg.TypeMapping.StringType)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			"missing source path",
			"[target]\ndsn = \"u:p@tcp(h:3306)/\"\n",
			"source.path is required",
		},
		{
			"missing target dsn",
			"[source]\npath = \"{{db}}\"\n",
			"target.dsn is required",
		},
		{
			"negative chunk size",
			"chunk_size = -1\n" + minimalConfig,
			"chunk_size",
		},
		{
			"blank database",
			minimalConfig + "database = \"  \"\n",
			"target.database",
		},
		{
			"unknown keys rejected",
			"workers = 4\n" + minimalConfig,
			"unknown config keys: workers",
		},
		{
			"invalid integer type",
			minimalConfig + "[type_mapping]\ninteger_type = \"(11)\"\n",
			"type_mapping.integer_type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeTestConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_SourceMustExist(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	body := "[source]\npath = \"" + filepath.Join(dir, "missing.db") + "\"\n[target]\ndsn = \"u:p@tcp(h:3306)/\"\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadConfig(cfgPath); err == nil {
		t.Fatal("expected error for missing source file")
	}
}

func TestLoadConfig_DSNEnvExpansion(t *testing.T) {
	t.Setenv("LITEFERRY_TEST_PASSWORD", "s3cret")
	cfg, err := loadConfig(writeTestConfig(t, `
[source]
path = "{{db}}"

[target]
dsn = "user:${LITEFERRY_TEST_PASSWORD}@tcp(localhost:3306)/"
`))
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if !strings.Contains(cfg.Target.DSN, "s3cret") {
		t.Errorf("DSN env reference not expanded: %q", cfg.Target.DSN)
	}
}
