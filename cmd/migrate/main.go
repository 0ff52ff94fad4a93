package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	"github.com/respawnadega/storefront/internal/infrastructure/config"
	"github.com/respawnadega/storefront/internal/infrastructure/logger"
	"github.com/respawnadega/storefront/internal/infrastructure/migration"
	"github.com/respawnadega/storefront/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var (
		createDir string
		logLevel  string
		olderThan time.Duration
	)

	flag.StringVar(&createDir, "dir", "internal/infrastructure/migration/sql", "Directory new migrations are created in")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.DurationVar(&olderThan, "older-than", 0, "Idle age for purge (default: storage TTL)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	// Commands that work on files only
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Migration name required. Usage: migrate create <name> [description]")
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		mf, err := migration.CreateMigration(createDir, args[1], description)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created",
			zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath),
		)
		return

	case "list":
		names, err := migration.ListMigrations(migration.Files, "sql")
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		log.Info("Embedded migrations", zap.Int("count", len(names)))
		for _, name := range names {
			fmt.Println("  -", name)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	if command == "purge" {
		purge(cfg, log, olderThan)
		return
	}

	if cfg.Storage.Driver != config.StoragePostgres {
		log.Fatal("Schema migrations only apply to the postgres driver; sqlite creates its table on open",
			zap.String("driver", cfg.Storage.Driver))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	m, err := migration.New(db, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("Migration up failed", zap.Error(err))
		}

	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("Migration down failed", zap.Error(err))
		}

	case "step":
		if len(args) < 2 {
			log.Fatal("Step count required. Usage: migrate step <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid step count", zap.String("value", args[1]))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("Migration step failed", zap.Error(err))
		}

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("Failed to get version", zap.Error(err))
		}
		log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))

	case "force":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate force <version>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		if err := m.Force(version); err != nil {
			log.Fatal("Force version failed", zap.Error(err))
		}

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// purge deletes cart records idle for longer than olderThan on the SQL
// drivers. Redis expires records on its own.
func purge(cfg *config.Config, log *zap.Logger, olderThan time.Duration) {
	switch cfg.Storage.Driver {
	case config.StorageSQLite, config.StoragePostgres:
	default:
		log.Info("Nothing to purge for storage driver", zap.String("driver", cfg.Storage.Driver))
		return
	}
	if olderThan <= 0 {
		olderThan = cfg.Storage.TTL
	}

	db, err := persistence.NewDatabase(cfg, logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level)))
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	before := time.Now().Add(-olderThan)
	removed, err := persistence.NewGormCartStorage(db.DB).PurgeIdle(ctx, before)
	if err != nil {
		log.Fatal("Purge failed", zap.Error(err))
	}
	log.Info("Idle cart records purged",
		zap.Int64("removed", removed),
		zap.Time("before", before),
	)
}

func printUsage() {
	fmt.Println(`Respawn Adega storefront database tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (positive=up, negative=down)
  version               Show current migration version
  force <version>       Force set migration version (use with caution)
  create <name> [desc]  Create a new migration file pair
  list                  List embedded migrations
  purge                 Delete idle cart records (sqlite and postgres drivers)

Flags:
  -dir string           Directory for new migrations
  -log-level string     Log level: debug, info, warn, error (default: info)
  -older-than duration  Idle age for purge (default: storage TTL)

Environment Variables:
  ADEGA_STORAGE_DRIVER, ADEGA_DATABASE_HOST, ADEGA_DATABASE_PORT,
  ADEGA_DATABASE_USER, ADEGA_DATABASE_PASSWORD, ADEGA_DATABASE_DBNAME`)
}
