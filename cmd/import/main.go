// Command import loads a JSON export of the legacy browser app into the
// configured database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Kola-Kola/personal-finance/internal/config"
	"github.com/Kola-Kola/personal-finance/internal/database"
	"github.com/Kola-Kola/personal-finance/internal/logger"
	"github.com/Kola-Kola/personal-finance/internal/services"
	"github.com/Kola-Kola/personal-finance/internal/store"
)

func main() {
	logger.Init(os.Getenv("ENV"), "import")
	defer logger.Sync()

	file := flag.String("file", "", "path to the exported JSON file")
	flag.Parse()

	if *file == "" {
		logger.Get().Fatal("Error: --file is required")
	}

	if err := run(*file); err != nil {
		logger.Get().Fatalf("Import failed: %v", err)
	}
}

func run(path string) error {
	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.StoreDriver == config.DriverMemory {
		return fmt.Errorf("STORE_DRIVER=%s would discard the import on exit", cfg.StoreDriver)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Infow("Starting import", "file", path, "store", cfg.StoreDriver)

	svc := services.NewImportService(store.NewGormStore(dbManager.DB()), nil)
	result, err := svc.ImportLegacy(ctx, f)
	if result != nil {
		for _, s := range result.Skipped {
			log.Warnw("record skipped", "index", s.Index, "reason", s.Reason)
		}
		fmt.Printf("Imported %d transaction(s), skipped %d.\n", result.Imported, len(result.Skipped))
	}
	return err
}
