package backfill

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/recetario/internal/entities"
	"github.com/mrlokans/recetario/internal/favorites"
)

// Full loop: save a recipe with a placeholder, observe it, and verify the
// generated image lands in the durable store.
func TestBackfillEndToEnd(t *testing.T) {
	ctx := context.Background()
	dbPath := "./test_backfill_e2e.db"
	defer os.Remove(dbPath)

	backend, err := favorites.NewLocalBackend(dbPath)
	require.NoError(t, err)
	store := favorites.NewStore(backend)
	require.NoError(t, store.Open(ctx))

	gateway := &mockGateway{url: "https://img/real.png"}
	service := NewService(gateway, store)

	store.AddFavorite(ctx, entities.Recipe{
		RecipeName: "Tortilla de patatas",
		ImageHint:  "spanish omelette",
		ImageURL:   "https://placehold.co/x.png",
	})

	for _, recipe := range store.Favorites() {
		service.Observe(ctx, recipe)
	}

	assert.True(t, store.IsFavorite("Tortilla de patatas"))
	recipe, found := store.Favorite("Tortilla de patatas")
	require.True(t, found)
	assert.Equal(t, "https://img/real.png", recipe.ImageURL)
	assert.Equal(t, 1, gateway.callCount())

	// the upgraded image survives a reload from disk
	require.NoError(t, store.Close())
	backend2, err := favorites.NewLocalBackend(dbPath)
	require.NoError(t, err)
	store2 := favorites.NewStore(backend2)
	require.NoError(t, store2.Open(ctx))
	defer store2.Close()

	reloaded, found := store2.Favorite("Tortilla de patatas")
	require.True(t, found)
	assert.Equal(t, "https://img/real.png", reloaded.ImageURL)
}
