package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pageza/recipe-service/backend/internal/model"
)

var (
	// ErrNotFound is returned when no recipe has the requested id
	ErrNotFound = errors.New("recipe not found")
	// ErrInvalidInput is returned when the backend rejects a field value
	ErrInvalidInput = errors.New("recipe rejected by store")
)

// RecipeStore persists recipes. Implementations must be safe for concurrent use.
type RecipeStore interface {
	// FindByID returns ErrNotFound when the recipe does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	// Insert assigns the id and timestamps and returns the saved recipe
	Insert(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	// UpdateByID overwrites every mutable field and returns the updated recipe
	UpdateByID(ctx context.Context, id uuid.UUID, recipe *model.Recipe) (*model.Recipe, error)
	// DeleteByID removes the recipe and returns its last known state
	DeleteByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
