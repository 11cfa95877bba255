package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/recetario/internal/ai"
	"github.com/mrlokans/recetario/internal/backfill"
	"github.com/mrlokans/recetario/internal/categories"
	"github.com/mrlokans/recetario/internal/favorites"
)

// RouterConfig contains all dependencies needed to create the HTTP router.
type RouterConfig struct {
	Store      *favorites.Store
	Backfill   *backfill.Service
	Gateway    ai.Gateway
	Categories *categories.Cache
	Version    string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	healthController := NewHealthController(cfg.Store, cfg.Version)
	router.GET("/health", healthController.Status)

	favoritesController := NewFavoritesController(cfg.Store, cfg.Backfill)
	router.GET("/api/favorites", favoritesController.ListFavorites)
	router.POST("/api/favorites", favoritesController.AddFavorite)
	router.GET("/api/favorites/:name", favoritesController.IsFavorite)
	router.PATCH("/api/favorites/:name", favoritesController.UpdateFavorite)
	router.DELETE("/api/favorites/:name", favoritesController.RemoveFavorite)

	foldersController := NewFoldersController(cfg.Store)
	router.GET("/api/folders", foldersController.ListFolders)
	router.POST("/api/folders", foldersController.CreateFolder)
	router.DELETE("/api/folders/:id", foldersController.DeleteFolder)
	router.PUT("/api/favorites/:name/folder", foldersController.MoveRecipe)

	recipesController := NewRecipesController(cfg.Gateway, cfg.Categories)
	router.POST("/api/recipes/generate", recipesController.GenerateRecipe)
	router.POST("/api/recipes/suggest-ingredients", recipesController.SuggestIngredients)
	router.GET("/api/search/suggestions", recipesController.SuggestSearchTerms)
	router.GET("/api/categories", recipesController.ListCategories)
	router.GET("/api/categories/:slug/recipes", recipesController.CategoryRecipes)

	return router
}
