package types

// RecipeRequest is the body accepted by create and update. Update replaces every field,
// so an omitted field is written as its zero value.
type RecipeRequest struct {
	Name                    string `json:"name" maxLength:"255" example:"Scrambled Eggs"`
	Description             string `json:"desc" example:"4 eggs, salt, pepper"`
	ImagePath               string `json:"imagePath" maxLength:"1024" example:"../images/scrambled_eggs.jpg"`
	IngredientIDs           []int  `json:"ingredientIds" example:"100001,100002,100003"`
	IngredientAmountsInGram []int  `json:"ingredientAmountsInGram" example:"50,1400,360"`
}
