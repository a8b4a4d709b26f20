package service

import (
	"context"

	"github.com/pageza/recipe-service/backend/internal/model"
	"github.com/pageza/recipe-service/backend/internal/types"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	GetRecipe(ctx context.Context, id string) (*model.Recipe, error)
	CreateRecipe(ctx context.Context, req *types.RecipeRequest) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, id string, req *types.RecipeRequest) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) (*model.Recipe, error)
}

var _ IRecipeService = (*RecipeService)(nil)
