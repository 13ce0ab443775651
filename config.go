package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// MigrationConfig holds the full TOML-driven migration configuration.
type MigrationConfig struct {
	Source      SourceConfig      `toml:"source"`
	Target      TargetConfig      `toml:"target"`
	ChunkSize   int               `toml:"chunk_size"` // rows per batch; 0 = one insert per table
	LogFile     string            `toml:"log_file"`
	Quiet       bool              `toml:"quiet"` // disable the progress bar
	TypeMapping TypeMappingConfig `toml:"type_mapping"`
}

// SourceConfig identifies the SQLite database file and an optional subset
// of tables to migrate.
type SourceConfig struct {
	Path   string   `toml:"path"`
	Tables []string `toml:"tables"`
}

type TargetConfig struct {
	DSN            string `toml:"dsn"`
	Database       string `toml:"database"`
	CreateDatabase bool   `toml:"create_database"`
}

// TypeMappingConfig carries the two type-family defaults used by the
// translator where the source declaration has no usable width of its own.
type TypeMappingConfig struct {
	IntegerType string `toml:"integer_type"`
	StringType  string `toml:"string_type"`
}

// loadConfig reads a TOML config file and returns a MigrationConfig with
// defaults applied. Unknown keys are an error.
func loadConfig(path string) (*MigrationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := MigrationConfig{
		Target:      TargetConfig{Database: "transfer", CreateDatabase: true},
		TypeMapping: defaultTypeMappingConfig(),
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if unknown := md.Undecoded(); len(unknown) > 0 {
		keys := make([]string, len(unknown))
		for i, k := range unknown {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	cfg.Source.Path = strings.TrimSpace(cfg.Source.Path)
	if cfg.Source.Path == "" {
		return nil, fmt.Errorf("source.path is required")
	}
	if info, err := os.Stat(cfg.Source.Path); err != nil {
		return nil, fmt.Errorf("source.path: %w", err)
	} else if info.IsDir() {
		return nil, fmt.Errorf("source.path %q is a directory", cfg.Source.Path)
	}

	// Environment references in the DSN (e.g. ${MYSQL_PASSWORD}) are
	// expanded after .env loading so credentials stay out of the file.
	cfg.Target.DSN = strings.TrimSpace(os.ExpandEnv(cfg.Target.DSN))
	if cfg.Target.DSN == "" {
		return nil, fmt.Errorf("target.dsn is required")
	}

	cfg.Target.Database = strings.TrimSpace(cfg.Target.Database)
	if cfg.Target.Database == "" {
		return nil, fmt.Errorf("target.database must not be blank")
	}

	if cfg.ChunkSize < 0 {
		return nil, fmt.Errorf("chunk_size must be zero or a positive integer")
	}

	cfg.TypeMapping.IntegerType = strings.ToUpper(strings.TrimSpace(cfg.TypeMapping.IntegerType))
	if cfg.TypeMapping.IntegerType == "" {
		cfg.TypeMapping.IntegerType = "INT"
	}
	cfg.TypeMapping.StringType = strings.ToUpper(strings.TrimSpace(cfg.TypeMapping.StringType))
	if cfg.TypeMapping.StringType == "" {
		cfg.TypeMapping.StringType = "VARCHAR(255)"
	}
	if leadingTypeToken(cfg.TypeMapping.IntegerType) == "" {
		return nil, fmt.Errorf("type_mapping.integer_type %q is not a valid type", cfg.TypeMapping.IntegerType)
	}
	if leadingTypeToken(cfg.TypeMapping.StringType) == "" {
		return nil, fmt.Errorf("type_mapping.string_type %q is not a valid type", cfg.TypeMapping.StringType)
	}

	return &cfg, nil
}

func defaultTypeMappingConfig() TypeMappingConfig {
	return TypeMappingConfig{
		IntegerType: "INT",
		StringType:  "VARCHAR(255)",
	}
}
