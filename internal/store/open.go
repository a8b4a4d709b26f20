package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pageza/recipe-service/backend/config"
	"github.com/pageza/recipe-service/backend/internal/database"
)

// Open connects the store selected by cfg.DBDriver. The caller owns the result and must Close it.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (RecipeStore, error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		client, err := database.NewMongoClient(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return NewMongoStore(client, cfg.MongoDatabase, cfg.MongoCollection), nil

	case config.DriverPostgres, config.DriverSQLite:
		db, err := database.New(cfg, log)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(db, cfg.MigrationsDir, log); err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return NewGormStore(db), nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DBDriver)
	}
}
