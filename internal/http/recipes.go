package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/recetario/internal/ai"
	"github.com/mrlokans/recetario/internal/categories"
)

const categoryRecipeCount = 3

type RecipesController struct {
	gateway    ai.Gateway
	categories *categories.Cache
}

func NewRecipesController(gateway ai.Gateway, cache *categories.Cache) *RecipesController {
	return &RecipesController{gateway: gateway, categories: cache}
}

// GenerateRecipe produces a recipe from the user's available ingredients.
// POST /api/recipes/generate
func (rc *RecipesController) GenerateRecipe(c *gin.Context) {
	if rc.gateway == nil {
		respondUnavailable(c, "recipe generation is not configured")
		return
	}

	var input ai.GenerateRecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid generation payload")
		return
	}
	if strings.TrimSpace(input.Ingredients) == "" {
		respondBadRequest(c, "ingredients are required")
		return
	}

	recipe, err := rc.gateway.GenerateRecipe(c.Request.Context(), input)
	if err != nil {
		respondInternalError(c, err, "generate recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// SuggestIngredients proposes missing ingredients for a recipe.
// POST /api/recipes/suggest-ingredients
func (rc *RecipesController) SuggestIngredients(c *gin.Context) {
	if rc.gateway == nil {
		respondUnavailable(c, "suggestions are not configured")
		return
	}

	var body struct {
		Recipe      string `json:"recipe"`
		Ingredients string `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Recipe == "" {
		respondBadRequest(c, "recipe is required")
		return
	}

	missing, err := rc.gateway.SuggestMissingIngredients(c.Request.Context(), body.Recipe, body.Ingredients)
	if err != nil {
		respondInternalError(c, err, "suggest ingredients")
		return
	}
	c.JSON(http.StatusOK, gin.H{"missingIngredients": missing})
}

// SuggestSearchTerms returns autocomplete suggestions for a partial query.
// GET /api/search/suggestions?q=
func (rc *RecipesController) SuggestSearchTerms(c *gin.Context) {
	if rc.gateway == nil {
		respondUnavailable(c, "suggestions are not configured")
		return
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondBadRequest(c, "q is required")
		return
	}

	suggestions, err := rc.gateway.SuggestSearchTerms(c.Request.Context(), query)
	if err != nil {
		respondInternalError(c, err, "suggest search terms")
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// ListCategories returns the cached AI-generated categories.
// GET /api/categories
func (rc *RecipesController) ListCategories(c *gin.Context) {
	if rc.categories == nil {
		respondUnavailable(c, "categories are not configured")
		return
	}

	list, err := rc.categories.Get(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": list})
}

// CategoryRecipes generates recipes for a cached category.
// GET /api/categories/:slug/recipes
func (rc *RecipesController) CategoryRecipes(c *gin.Context) {
	if rc.gateway == nil || rc.categories == nil {
		respondUnavailable(c, "recipe generation is not configured")
		return
	}

	category, found := rc.categories.Find(c.Param("slug"))
	if !found {
		respondNotFound(c, "category")
		return
	}

	recipes, err := rc.gateway.GenerateRecipesByCategory(c.Request.Context(), category.Name, categoryRecipeCount)
	if err != nil {
		respondInternalError(c, err, "generate category recipes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
