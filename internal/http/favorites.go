package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/recetario/internal/backfill"
	"github.com/mrlokans/recetario/internal/entities"
	"github.com/mrlokans/recetario/internal/favorites"
)

type FavoritesController struct {
	store    *favorites.Store
	backfill *backfill.Service
}

func NewFavoritesController(store *favorites.Store, backfillService *backfill.Service) *FavoritesController {
	return &FavoritesController{store: store, backfill: backfillService}
}

// ListFavorites returns the full favorites snapshot: saved recipes, folders
// and the recipe→folder mapping. Listing is the observation point for image
// backfill: recipes still carrying the placeholder get their generation
// kicked off here, at most once each.
// GET /api/favorites
func (fc *FavoritesController) ListFavorites(c *gin.Context) {
	snapshot := fc.store.Snapshot()

	if fc.backfill != nil {
		for _, recipe := range snapshot.Favorites {
			fc.backfill.Observe(c.Request.Context(), recipe)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites":       snapshot.Favorites,
		"folders":         snapshot.Folders,
		"recipeFolderMap": snapshot.RecipeFolderMap,
	})
}

// AddFavorite saves a recipe. Saving an already-saved name is a no-op.
// POST /api/favorites
func (fc *FavoritesController) AddFavorite(c *gin.Context) {
	var recipe entities.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		respondBadRequest(c, "invalid recipe payload")
		return
	}
	if recipe.RecipeName == "" {
		respondBadRequest(c, "recipeName is required")
		return
	}
	if recipe.ImageURL == "" {
		recipe.ImageURL = entities.PlaceholderImageURL
	}

	fc.store.AddFavorite(c.Request.Context(), recipe)
	respondCreated(c, recipe)
}

// RemoveFavorite deletes a saved recipe and clears its folder assignment.
// DELETE /api/favorites/:name
func (fc *FavoritesController) RemoveFavorite(c *gin.Context) {
	name := c.Param("name")
	fc.store.RemoveFavorite(c.Request.Context(), name)
	respondSuccess(c, "favorite removed")
}

// UpdateFavorite merges partial fields into a saved recipe.
// PATCH /api/favorites/:name
func (fc *FavoritesController) UpdateFavorite(c *gin.Context) {
	name := c.Param("name")

	var update entities.RecipeUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBadRequest(c, "invalid update payload")
		return
	}

	fc.store.UpdateFavorite(c.Request.Context(), name, update)

	recipe, found := fc.store.Favorite(name)
	if !found {
		respondNotFound(c, "recipe")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// IsFavorite reports whether a recipe is saved.
// GET /api/favorites/:name
func (fc *FavoritesController) IsFavorite(c *gin.Context) {
	name := c.Param("name")
	c.JSON(http.StatusOK, gin.H{"isFavorite": fc.store.IsFavorite(name)})
}
