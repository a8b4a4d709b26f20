package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/pageza/recipe-service/backend/internal/model"
)

// GormStore keeps recipes in a SQL table through gorm
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore instance
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// FindByID retrieves a recipe by ID
func (s *GormStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

// Insert creates a new recipe
func (s *GormStore) Insert(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	saved := *recipe
	saved.ID = uuid.Nil
	if err := s.db.WithContext(ctx).Create(&saved).Error; err != nil {
		return nil, fmt.Errorf("insert recipe: %w", translate(err))
	}
	return &saved, nil
}

// UpdateByID replaces every mutable column of the recipe
func (s *GormStore) UpdateByID(ctx context.Context, id uuid.UUID, recipe *model.Recipe) (*model.Recipe, error) {
	var updated model.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&updated, "id = ?", id).Error; err != nil {
			return err
		}

		replacement := *recipe
		replacement.ID = updated.ID
		replacement.CreatedAt = updated.CreatedAt
		replacement.UpdatedAt = time.Now()

		// Select forces zero values to be written too
		if err := tx.Model(&updated).Select(model.ReplaceableColumns).Updates(&replacement).Error; err != nil {
			return err
		}
		return tx.First(&updated, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &updated, nil
}

// DeleteByID deletes a recipe and returns what was stored
func (s *GormStore) DeleteByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var deleted model.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&deleted, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Recipe{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &deleted, nil
}

// Ping checks if the database is accessible
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool
func (s *GormStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// postgres data exceptions caused by the values a client sent
const (
	pgStringDataRightTruncation = "22001"
	pgCharacterNotInRepertoire  = "22021"
	pgUntranslatableCharacter   = "22P05"
)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgStringDataRightTruncation, pgCharacterNotInRepertoire, pgUntranslatableCharacter:
			return fmt.Errorf("%w: %s", ErrInvalidInput, pgErr.Message)
		}
	}
	return err
}
