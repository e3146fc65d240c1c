package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/avasquez/refinery/pkg/domain/entities"
	"github.com/avasquez/refinery/pkg/domain/repositories"
)

// RecipeRepository is an in-memory implementation of repositories.RecipeRepository
type RecipeRepository struct {
	mutex   sync.RWMutex
	recipes map[string]*entities.BlendingRecipe
}

// NewRecipeRepository creates a new in-memory recipe repository
func NewRecipeRepository() *RecipeRepository {
	return &RecipeRepository{
		recipes: make(map[string]*entities.BlendingRecipe),
	}
}

// Verify interface compliance
var _ repositories.RecipeRepository = (*RecipeRepository)(nil)

// GetRecipe retrieves a recipe by name
func (r *RecipeRepository) GetRecipe(name string) (*entities.BlendingRecipe, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	recipe, exists := r.recipes[name]
	if !exists {
		return nil, fmt.Errorf("recipe not found: %s", name)
	}
	return recipe, nil
}

// GetAllRecipes retrieves every recipe in name order
func (r *RecipeRepository) GetAllRecipes() ([]*entities.BlendingRecipe, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	recipes := make([]*entities.BlendingRecipe, 0, len(r.recipes))
	for _, recipe := range r.recipes {
		recipes = append(recipes, recipe)
	}
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].Name < recipes[j].Name })
	return recipes, nil
}

// SaveRecipe stores a recipe, replacing any existing entry for the name
func (r *RecipeRepository) SaveRecipe(recipe *entities.BlendingRecipe) error {
	if recipe == nil {
		return fmt.Errorf("cannot save nil recipe")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.recipes[recipe.Name] = recipe
	return nil
}
