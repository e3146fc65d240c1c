package repositories

import "github.com/avasquez/refinery/pkg/domain/entities"

// RecipeRepository provides access to blending recipes
type RecipeRepository interface {
	GetRecipe(name string) (*entities.BlendingRecipe, error)
	GetAllRecipes() ([]*entities.BlendingRecipe, error)
	SaveRecipe(recipe *entities.BlendingRecipe) error
}
