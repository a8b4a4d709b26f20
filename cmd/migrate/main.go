package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/pageza/recipe-service/backend/config"
	"github.com/pageza/recipe-service/backend/internal/database"
	"github.com/pageza/recipe-service/backend/internal/logging"
)

func main() {
	dir := flag.String("dir", "", "Migrations directory (defaults to MIGRATIONS_DIR)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *dir != "" {
		cfg.MigrationsDir = *dir
	}

	if cfg.DBDriver == config.DriverMongo {
		fmt.Println("Mongo stores recipes schemaless; nothing to migrate.")
		return
	}

	logger, err := logging.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := database.RunMigrations(db, cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	fmt.Println("All migrations applied successfully.")
}
