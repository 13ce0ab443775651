package main

import (
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// mysqlDSNWithWriteOptions normalizes the target DSN for the migration
// connection: interpolated parameters keep multi-row inserts to one round
// trip each, and the configured database name overrides whatever the DSN
// carries.
func mysqlDSNWithWriteOptions(baseDSN, database string) (string, error) {
	cfg, err := mysql.ParseDSN(baseDSN)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.DBName = database
	cfg.InterpolateParams = true
	cfg.MultiStatements = false
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

// mysqlAdminDSN is the same DSN with no database selected, used for the
// create-if-missing step before the target database exists.
func mysqlAdminDSN(baseDSN string) (string, error) {
	return mysqlDSNWithWriteOptions(baseDSN, "")
}
