package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipe-service/backend/internal/model"
	"github.com/pageza/recipe-service/backend/internal/store"
	"github.com/pageza/recipe-service/backend/internal/types"
)

var (
	// ErrInvalidRecipeID is returned when a path id is not a uuid
	ErrInvalidRecipeID = errors.New("invalid recipe id")
	// ErrIngredientLengthMismatch is returned when ingredientIds and ingredientAmountsInGram differ in length
	ErrIngredientLengthMismatch = errors.New("ingredientIds and ingredientAmountsInGram must have the same length")
	// ErrInvalidRecipeField is returned when a text field is too long or holds a NUL byte
	ErrInvalidRecipeField = errors.New("invalid recipe field")
)

// column limits of the recipes table
const (
	MaxNameLength      = 255
	MaxImagePathLength = 1024
)

// RecipeService handles recipe operations
type RecipeService struct {
	store   store.RecipeStore
	timeout time.Duration
	logger  *zap.Logger
}

// NewRecipeService creates a new RecipeService instance. timeout bounds each store call.
func NewRecipeService(recipes store.RecipeStore, timeout time.Duration, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		store:   recipes,
		timeout: timeout,
		logger:  logger,
	}
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	recipeID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	recipe, err := s.store.FindByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("get recipe %s: %w", recipeID, err)
	}

	s.logger.Debug("recipe found", zap.Stringer("id", recipe.ID), zap.String("name", recipe.Name))
	return recipe, nil
}

// CreateRecipe persists a new recipe. Duplicates are allowed.
func (s *RecipeService) CreateRecipe(ctx context.Context, req *types.RecipeRequest) (*model.Recipe, error) {
	recipe, err := toModel(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	saved, err := s.store.Insert(ctx, recipe)
	if err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	s.logger.Info("recipe saved", zap.Stringer("id", saved.ID), zap.String("name", saved.Name))
	return saved, nil
}

// UpdateRecipe replaces every field of the recipe with the request's values
func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, req *types.RecipeRequest) (*model.Recipe, error) {
	recipeID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	recipe, err := toModel(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	updated, err := s.store.UpdateByID(ctx, recipeID, recipe)
	if err != nil {
		return nil, fmt.Errorf("update recipe %s: %w", recipeID, err)
	}

	s.logger.Info("recipe updated", zap.Stringer("id", updated.ID))
	return updated, nil
}

// DeleteRecipe deletes a recipe and returns its last known state
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	recipeID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	deleted, err := s.store.DeleteByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("delete recipe %s: %w", recipeID, err)
	}

	s.logger.Info("recipe deleted", zap.Stringer("id", deleted.ID))
	return deleted, nil
}

func (s *RecipeService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func parseID(id string) (uuid.UUID, error) {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidRecipeID, id)
	}
	return recipeID, nil
}

func toModel(req *types.RecipeRequest) (*model.Recipe, error) {
	if len(req.IngredientIDs) != len(req.IngredientAmountsInGram) {
		return nil, fmt.Errorf("%w (got %d ids, %d amounts)",
			ErrIngredientLengthMismatch, len(req.IngredientIDs), len(req.IngredientAmountsInGram))
	}
	if err := checkText("name", req.Name, MaxNameLength); err != nil {
		return nil, err
	}
	if err := checkText("desc", req.Description, 0); err != nil {
		return nil, err
	}
	if err := checkText("imagePath", req.ImagePath, MaxImagePathLength); err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		Name:                    req.Name,
		Description:             req.Description,
		ImagePath:               req.ImagePath,
		IngredientIDs:           model.JSONBIntArray(req.IngredientIDs),
		IngredientAmountsInGram: model.JSONBIntArray(req.IngredientAmountsInGram),
	}
	if recipe.IngredientIDs == nil {
		recipe.IngredientIDs = model.JSONBIntArray{}
	}
	if recipe.IngredientAmountsInGram == nil {
		recipe.IngredientAmountsInGram = model.JSONBIntArray{}
	}
	return recipe, nil
}

// checkText rejects values postgres would refuse. limit <= 0 means unbounded.
func checkText(field, value string, limit int) error {
	if limit > 0 && utf8.RuneCountInString(value) > limit {
		return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidRecipeField, field, limit)
	}
	if strings.IndexByte(value, 0) >= 0 {
		return fmt.Errorf("%w: %s must not contain NUL bytes", ErrInvalidRecipeField, field)
	}
	return nil
}
