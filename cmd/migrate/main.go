package main

import (
	"fmt"
	"os"

	"github.com/imanage/imanage-api/internal/config"
	"github.com/imanage/imanage-api/internal/database"
	"github.com/imanage/imanage-api/internal/logger"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// sourceDir is where "create" writes new migration files
const sourceDir = "internal/database/migrations"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Migration error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	args := os.Args[1:]
	if len(args) == 0 {
		return fmt.Errorf("usage: migrate [up|down|status|version|create <name>]")
	}
	command, arguments := args[0], args[1:]

	if command == "create" {
		if len(arguments) == 0 {
			return fmt.Errorf("create requires a migration name")
		}
		goose.SetBaseFS(nil)
		if err := goose.Create(nil, sourceDir, arguments[0], "sql"); err != nil {
			return fmt.Errorf("failed to create migration: %w", err)
		}
		fmt.Printf("Migration created: %s\n", arguments[0])
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(&cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	if command == "up" {
		if err := database.Migrate(db, log); err != nil {
			return err
		}
		log.Info("Migrations applied successfully", zap.String("path", cfg.Database.FilePath()))
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	goose.SetBaseFS(database.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	switch command {
	case "down":
		if err := goose.Down(sqlDB, database.MigrationsDir); err != nil {
			return fmt.Errorf("failed to run down migration: %w", err)
		}
		fmt.Println("Migration rolled back successfully")

	case "status":
		if err := goose.Status(sqlDB, database.MigrationsDir); err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}

	case "version":
		if err := goose.Version(sqlDB, database.MigrationsDir); err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}

	default:
		return fmt.Errorf("unknown command: %s", command)
	}

	return nil
}
