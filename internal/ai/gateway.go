// Package ai wraps the hosted generative gateway used for recipe text,
// category and image generation. Callers treat every call as an opaque
// request/response function; failures are recovered by the caller, never
// fatal.
package ai

import (
	"context"

	"github.com/mrlokans/recetario/internal/entities"
)

// GenerateRecipeInput describes a recipe generation request.
type GenerateRecipeInput struct {
	Ingredients string `json:"ingredients"`
	Vegetarian  bool   `json:"vegetarian,omitempty"`
	GlutenFree  bool   `json:"glutenFree,omitempty"`
	AirFryer    bool   `json:"airFryer,omitempty"`
}

// Gateway is the full generation surface the application consumes.
type Gateway interface {
	// GenerateRecipe produces a Spanish recipe from available ingredients,
	// including a generated image (placeholder on image failure).
	GenerateRecipe(ctx context.Context, input GenerateRecipeInput) (entities.Recipe, error)

	// GenerateRecipesByCategory produces n recipes for a named category.
	GenerateRecipesByCategory(ctx context.Context, category string, n int) ([]entities.Recipe, error)

	// GenerateCategories produces browsing categories with images.
	GenerateCategories(ctx context.Context, n int) ([]entities.Category, error)

	// SuggestMissingIngredients returns a comma-separated list of
	// ingredients that would improve the recipe.
	SuggestMissingIngredients(ctx context.Context, recipe, available string) (string, error)

	// SuggestSearchTerms returns search suggestions for a partial query.
	SuggestSearchTerms(ctx context.Context, query string) ([]string, error)

	// GenerateImage returns an image URL (a data URI) for the hint, or the
	// placeholder when the hint is empty.
	GenerateImage(ctx context.Context, hint string) (string, error)
}
