package testhelpers

import (
	"github.com/pageza/recipe-service/backend/internal/types"
)

// ScrambledEggs returns the reference recipe used across the handler and store tests.
func ScrambledEggs() *types.RecipeRequest {
	return &types.RecipeRequest{
		Name:                    "Scrambled Eggs",
		Description:             "4 eggs, salt, pepper",
		ImagePath:               "../images/scrambled_eggs.jpg",
		IngredientIDs:           []int{100001, 100002, 100003},
		IngredientAmountsInGram: []int{50, 1400, 360},
	}
}
