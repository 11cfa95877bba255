package favorites

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/recetario/internal/entities"
)

func setupTestStore(t *testing.T) (*Store, string, func()) {
	t.Helper()
	dbPath := "./test_favorites_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	backend, err := NewLocalBackend(dbPath)
	require.NoError(t, err)

	store := NewStore(backend)
	require.NoError(t, store.Open(context.Background()))

	cleanup := func() {
		store.Close()
		os.Remove(dbPath)
	}
	return store, dbPath, cleanup
}

func testRecipe(name string) entities.Recipe {
	return entities.Recipe{
		RecipeName:           name,
		IngredientsList:      "- 2 huevos\n- 500g patatas",
		Instructions:         "1. Pelar las patatas\n2. Freír",
		EstimatedCookingTime: "30 minutos",
		ImageHint:            "spanish omelette",
		ImageURL:             entities.PlaceholderImageURL,
	}
}

func TestStore_AddFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a recipe and makes it queryable", func(t *testing.T) {
		store, _, cleanup := setupTestStore(t)
		defer cleanup()

		store.AddFavorite(ctx, testRecipe("Tortilla de patatas"))

		assert.True(t, store.IsFavorite("Tortilla de patatas"))
		assert.Len(t, store.Favorites(), 1)
	})

	t.Run("second add with same name is a no-op", func(t *testing.T) {
		store, _, cleanup := setupTestStore(t)
		defer cleanup()

		recipe := testRecipe("Paella")
		store.AddFavorite(ctx, recipe)

		changed := recipe
		changed.Instructions = "totally different"
		store.AddFavorite(ctx, changed)

		favs := store.Favorites()
		require.Len(t, favs, 1)
		assert.Equal(t, "1. Pelar las patatas\n2. Freír", favs[0].Instructions)
	})

	t.Run("new favorite has no folder assignment", func(t *testing.T) {
		store, _, cleanup := setupTestStore(t)
		defer cleanup()

		store.AddFavorite(ctx, testRecipe("Gazpacho"))

		assert.Equal(t, "", store.FolderFor("Gazpacho"))
	})
}

func TestStore_RemoveFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("removes recipe and clears folder mapping", func(t *testing.T) {
		store, _, cleanup := setupTestStore(t)
		defer cleanup()

		store.AddFavorite(ctx, testRecipe("Paella"))
		folder, created := store.CreateFolder(ctx, "Arroces")
		require.True(t, created)
		store.MoveRecipeToFolder(ctx, "Paella", folder.ID)

		store.RemoveFavorite(ctx, "Paella")

		assert.False(t, store.IsFavorite("Paella"))
		assert.Equal(t, "", store.FolderFor("Paella"))
		assert.NotContains(t, store.Snapshot().RecipeFolderMap, "Paella")
	})

	t.Run("removing a non-member leaves the store unchanged", func(t *testing.T) {
		store, _, cleanup := setupTestStore(t)
		defer cleanup()

		store.AddFavorite(ctx, testRecipe("Paella"))
		before := store.Snapshot()

		store.RemoveFavorite(ctx, "No existe")

		assert.Equal(t, before, store.Snapshot())
	})
}

func TestStore_UpdateFavorite(t *testing.T) {
	ctx := context.Background()

	t.Run("merges image url into existing recipe", func(t *testing.T) {
		store, _, cleanup := setupTestStore(t)
		defer cleanup()

		store.AddFavorite(ctx, testRecipe("Tortilla de patatas"))

		url := "https://img/real.png"
		store.UpdateFavorite(ctx, "Tortilla de patatas", entities.RecipeUpdate{ImageURL: &url})

		recipe, found := store.Favorite("Tortilla de patatas")
		require.True(t, found)
		assert.Equal(t, "https://img/real.png", recipe.ImageURL)
		// untouched fields survive the merge
		assert.Equal(t, "30 minutos", recipe.EstimatedCookingTime)
	})

	t.Run("update of unknown recipe is a no-op", func(t *testing.T) {
		store, _, cleanup := setupTestStore(t)
		defer cleanup()

		url := "https://img/real.png"
		store.UpdateFavorite(ctx, "No existe", entities.RecipeUpdate{ImageURL: &url})

		assert.Empty(t, store.Favorites())
	})
}

func TestStore_Persistence(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh store instance reproduces folders and mapping", func(t *testing.T) {
		dbPath := "./test_roundtrip.db"
		defer os.Remove(dbPath)

		backend, err := NewLocalBackend(dbPath)
		require.NoError(t, err)
		store := NewStore(backend)
		require.NoError(t, store.Open(ctx))

		store.AddFavorite(ctx, testRecipe("Paella"))
		store.AddFavorite(ctx, testRecipe("Gazpacho"))
		folder, _ := store.CreateFolder(ctx, "Verano")
		store.MoveRecipeToFolder(ctx, "Gazpacho", folder.ID)
		expected := store.Snapshot()
		require.NoError(t, store.Close())

		backend2, err := NewLocalBackend(dbPath)
		require.NoError(t, err)
		store2 := NewStore(backend2)
		require.NoError(t, store2.Open(ctx))
		defer store2.Close()

		assert.Equal(t, expected, store2.Snapshot())
	})
}
