package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:     "liteferry [config.toml]",
	Short:   "SQLite to MySQL migration tool",
	Args:    cobra.MaximumNArgs(1),
	Version: versionString(),
	RunE:    runMigration,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to migration TOML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runMigration(cmd *cobra.Command, args []string) error {
	// Resolve config path: positional arg takes precedence over --config flag
	cfgPath := configPath
	if len(args) > 0 {
		cfgPath = args[0]
	}
	if cfgPath == "" {
		return fmt.Errorf("config file required: liteferry <config.toml> or liteferry --config <config.toml>")
	}

	// A .env next to the working directory may hold credentials referenced
	// from the config DSN; absence is fine.
	_ = godotenv.Load()

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	if cfg.LogFile != "" {
		f, err := os.Create(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	ctx := context.Background()
	start := time.Now()

	log.Printf("liteferry — SQLite → MySQL migration")
	log.Printf("config: source=%s database=%s chunk_size=%d integer_type=%s string_type=%s",
		cfg.Source.Path, cfg.Target.Database, cfg.ChunkSize,
		cfg.TypeMapping.IntegerType, cfg.TypeMapping.StringType)

	// 1. Open the SQLite source (read-only)
	log.Printf("opening SQLite database %s...", cfg.Source.Path)
	source, err := openSQLiteSource(cfg.Source.Path, cfg.Source.Tables)
	if err != nil {
		return err
	}
	defer source.Close()
	if err := source.Ping(ctx); err != nil {
		return &MigrationError{Kind: KindConnectivity, Err: fmt.Errorf("ping sqlite: %w", err)}
	}

	// 2. Report source objects that will not be migrated
	objs, err := source.IntrospectSourceObjects(ctx)
	if err != nil {
		return &MigrationError{Kind: KindConnectivity, Err: fmt.Errorf("introspect source objects: %w", err)}
	}
	for _, w := range sourceObjectWarnings(objs) {
		log.Printf("  WARN: %s", w)
	}

	// 3. Connect to MySQL, creating the database when configured
	log.Printf("connecting to MySQL...")
	target, err := openMySQLTarget(ctx, cfg.Target.DSN, cfg.Target.Database, cfg.Target.CreateDatabase)
	if err != nil {
		return &MigrationError{Kind: KindConnectivity, Err: err}
	}
	defer target.Close()

	// 4. Gate JSON columns on server support
	translator := Translator{
		IntegerType: cfg.TypeMapping.IntegerType,
		StringType:  cfg.TypeMapping.StringType,
	}
	serverVersion, err := target.ServerVersion(ctx)
	if err != nil {
		return &MigrationError{Kind: KindConnectivity, Err: err}
	}
	log.Printf("MySQL server version %s", serverVersion)
	if !mysqlSupportsJSON(serverVersion) {
		log.Printf("  server predates JSON columns, declaring them as TEXT")
		translator.JSONAsText = true
	}

	// 5. Migrate
	var sink EventSink = logSink{}
	if !cfg.Quiet {
		sink = newProgressSink()
	}
	migrator := NewMigrator(source, target, translator, cfg.ChunkSize, sink)
	if err := migrator.MigrateAllTables(ctx); err != nil {
		return err
	}

	log.Printf("migration completed in %s", time.Since(start).Round(time.Millisecond))
	return nil
}
