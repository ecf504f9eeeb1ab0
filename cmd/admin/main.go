package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/imanage/imanage-api/internal/config"
	"github.com/imanage/imanage-api/internal/database"
	"github.com/imanage/imanage-api/internal/domain"
	"github.com/imanage/imanage-api/internal/logger"
	"github.com/imanage/imanage-api/internal/repository"
	"github.com/imanage/imanage-api/internal/service"
	"github.com/imanage/imanage-api/internal/storage"
)

const usage = "usage: admin [seed-demo|purge <module>...|backup]"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Admin error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	args := os.Args[1:]
	if len(args) == 0 {
		return errors.New(usage)
	}
	ctx := context.Background()

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

	if err := database.Migrate(db, log); err != nil {
		return err
	}

	var result interface{}
	switch args[0] {
	case "seed-demo":
		maintenance := service.NewMaintenanceService(repository.NewMaintenanceRepository(db), log)
		result, err = maintenance.SeedDemoData(ctx)

	case "purge":
		if len(args) < 2 {
			return fmt.Errorf("purge requires at least one module name")
		}
		maintenance := service.NewMaintenanceService(repository.NewMaintenanceRepository(db), log)
		result, err = maintenance.DeleteModules(ctx, &domain.DeleteModulesRequest{Modules: args[1:]})

	case "backup":
		store, serr := storage.NewStorage(ctx, &cfg.Storage, log)
		if serr != nil {
			return fmt.Errorf("failed to initialize storage: %w", serr)
		}
		result, err = service.NewBackupService(db, store, cfg.Backup.Prefix, log).Run(ctx)

	default:
		return fmt.Errorf("unknown command %q, %s", args[0], usage)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
