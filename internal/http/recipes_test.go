package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/recetario/internal/ai"
	"github.com/mrlokans/recetario/internal/categories"
	"github.com/mrlokans/recetario/internal/entities"
)

type stubGateway struct {
	recipe     entities.Recipe
	recipes    []entities.Recipe
	categories []entities.Category
	missing    string
	terms      []string
	err        error
}

func (g *stubGateway) GenerateRecipe(_ context.Context, _ ai.GenerateRecipeInput) (entities.Recipe, error) {
	return g.recipe, g.err
}

func (g *stubGateway) GenerateRecipesByCategory(_ context.Context, _ string, _ int) ([]entities.Recipe, error) {
	return g.recipes, g.err
}

func (g *stubGateway) GenerateCategories(_ context.Context, _ int) ([]entities.Category, error) {
	return g.categories, g.err
}

func (g *stubGateway) SuggestMissingIngredients(_ context.Context, _, _ string) (string, error) {
	return g.missing, g.err
}

func (g *stubGateway) SuggestSearchTerms(_ context.Context, _ string) ([]string, error) {
	return g.terms, g.err
}

func (g *stubGateway) GenerateImage(_ context.Context, _ string) (string, error) {
	return "", g.err
}

func setupRecipesRouter(t *testing.T, gateway ai.Gateway, cache *categories.Cache) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	controller := NewRecipesController(gateway, cache)
	router.POST("/api/recipes/generate", controller.GenerateRecipe)
	router.POST("/api/recipes/suggest-ingredients", controller.SuggestIngredients)
	router.GET("/api/search/suggestions", controller.SuggestSearchTerms)
	router.GET("/api/categories", controller.ListCategories)
	router.GET("/api/categories/:slug/recipes", controller.CategoryRecipes)
	return router
}

func TestRecipesController_GenerateRecipe(t *testing.T) {
	t.Run("returns the generated recipe", func(t *testing.T) {
		gateway := &stubGateway{recipe: entities.Recipe{
			RecipeName: "Lentejas con chorizo",
			ImageURL:   "https://img/l.png",
		}}
		router := setupRecipesRouter(t, gateway, nil)

		w := postJSON(t, router, "/api/recipes/generate", ai.GenerateRecipeInput{
			Ingredients: "lentejas, chorizo, cebolla",
		})

		require.Equal(t, http.StatusOK, w.Code)
		var recipe entities.Recipe
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))
		assert.Equal(t, "Lentejas con chorizo", recipe.RecipeName)
	})

	t.Run("requires ingredients", func(t *testing.T) {
		router := setupRecipesRouter(t, &stubGateway{}, nil)

		w := postJSON(t, router, "/api/recipes/generate", ai.GenerateRecipeInput{Ingredients: "  "})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("gateway failure surfaces as 500", func(t *testing.T) {
		router := setupRecipesRouter(t, &stubGateway{err: errors.New("quota exceeded")}, nil)

		w := postJSON(t, router, "/api/recipes/generate", ai.GenerateRecipeInput{Ingredients: "arroz"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("unconfigured gateway returns 503", func(t *testing.T) {
		router := setupRecipesRouter(t, nil, nil)

		w := postJSON(t, router, "/api/recipes/generate", ai.GenerateRecipeInput{Ingredients: "arroz"})

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestRecipesController_SuggestIngredients(t *testing.T) {
	router := setupRecipesRouter(t, &stubGateway{missing: "azafrán, caldo de pescado"}, nil)

	w := postJSON(t, router, "/api/recipes/suggest-ingredients", map[string]string{
		"recipe":      "Paella",
		"ingredients": "arroz, pollo",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"missingIngredients":"azafrán, caldo de pescado"}`, w.Body.String())
}

func TestRecipesController_SuggestSearchTerms(t *testing.T) {
	t.Run("returns suggestions", func(t *testing.T) {
		router := setupRecipesRouter(t, &stubGateway{terms: []string{"tortilla de patatas", "tortilla francesa"}}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/search/suggestions?q=tort", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"suggestions":["tortilla de patatas","tortilla francesa"]}`, w.Body.String())
	})

	t.Run("requires a query", func(t *testing.T) {
		router := setupRecipesRouter(t, &stubGateway{}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/search/suggestions", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRecipesController_Categories(t *testing.T) {
	gateway := &stubGateway{
		categories: []entities.Category{{Name: "Arroces", Slug: "arroces", ImageHint: "rice dishes"}},
		recipes:    []entities.Recipe{{RecipeName: "Arroz a banda"}},
	}
	cache := categories.NewCache(gateway, 1)
	require.NoError(t, cache.Refresh(context.Background()))
	router := setupRecipesRouter(t, gateway, cache)

	t.Run("lists cached categories", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/categories", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Categories []entities.Category `json:"categories"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Categories, 1)
		assert.Equal(t, "arroces", body.Categories[0].Slug)
	})

	t.Run("generates recipes for a known category", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/categories/arroces/recipes", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Recipes []entities.Recipe `json:"recipes"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Recipes, 1)
	})

	t.Run("unknown category slug returns 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/categories/sopas/recipes", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
