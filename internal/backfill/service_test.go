package backfill

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/recetario/internal/entities"
)

type mockGateway struct {
	mu    sync.Mutex
	calls int
	url   string
	err   error
}

func (m *mockGateway) GenerateImage(ctx context.Context, hint string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.url, m.err
}

func (m *mockGateway) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockUpdater struct {
	mu      sync.Mutex
	updates map[string]entities.RecipeUpdate
}

func newMockUpdater() *mockUpdater {
	return &mockUpdater{updates: make(map[string]entities.RecipeUpdate)}
}

func (m *mockUpdater) UpdateFavorite(ctx context.Context, name string, update entities.RecipeUpdate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates[name] = update
}

func placeholderRecipe(name, hint string) entities.Recipe {
	return entities.Recipe{
		RecipeName: name,
		ImageHint:  hint,
		ImageURL:   entities.PlaceholderImageURL,
	}
}

func TestService_Observe(t *testing.T) {
	ctx := context.Background()

	t.Run("issues at most one gateway call per recipe", func(t *testing.T) {
		gateway := &mockGateway{url: "https://img/real.png"}
		service := NewService(gateway, newMockUpdater())

		recipe := placeholderRecipe("Tortilla de patatas", "spanish omelette")
		service.Observe(ctx, recipe)
		service.Observe(ctx, recipe)

		assert.Equal(t, 1, gateway.callCount())
	})

	t.Run("writes generated url back through the updater", func(t *testing.T) {
		gateway := &mockGateway{url: "https://img/real.png"}
		updater := newMockUpdater()
		service := NewService(gateway, updater)

		started := service.Observe(ctx, placeholderRecipe("Paella", "seafood paella"))

		assert.True(t, started)
		require.Contains(t, updater.updates, "Paella")
		require.NotNil(t, updater.updates["Paella"].ImageURL)
		assert.Equal(t, "https://img/real.png", *updater.updates["Paella"].ImageURL)
		assert.Equal(t, StateResolved, service.State("Paella"))
	})

	t.Run("recipe with real image is marked resolved without a call", func(t *testing.T) {
		gateway := &mockGateway{url: "https://img/real.png"}
		service := NewService(gateway, newMockUpdater())

		recipe := entities.Recipe{
			RecipeName: "Gazpacho",
			ImageHint:  "cold soup",
			ImageURL:   "https://img/gazpacho.png",
		}
		started := service.Observe(ctx, recipe)

		assert.False(t, started)
		assert.Zero(t, gateway.callCount())
		assert.Equal(t, StateResolved, service.State("Gazpacho"))
	})

	t.Run("recipe without a hint is left alone", func(t *testing.T) {
		gateway := &mockGateway{url: "https://img/real.png"}
		service := NewService(gateway, newMockUpdater())

		started := service.Observe(ctx, placeholderRecipe("Misterio", ""))

		assert.False(t, started)
		assert.Zero(t, gateway.callCount())
		assert.Equal(t, StateNeedsImage, service.State("Misterio"))
	})

	t.Run("gateway failure keeps placeholder and allows a later attempt", func(t *testing.T) {
		gateway := &mockGateway{err: fmt.Errorf("quota exceeded")}
		updater := newMockUpdater()
		service := NewService(gateway, updater)

		recipe := placeholderRecipe("Fabada", "bean stew")
		service.Observe(ctx, recipe)

		assert.Empty(t, updater.updates)
		assert.Equal(t, StateNeedsImage, service.State("Fabada"))

		// recovery: a later observation may try again, exactly once
		gateway.mu.Lock()
		gateway.err = nil
		gateway.url = "https://img/fabada.png"
		gateway.mu.Unlock()

		service.Observe(ctx, recipe)
		assert.Equal(t, 2, gateway.callCount())
		assert.Equal(t, StateResolved, service.State("Fabada"))
	})

	t.Run("resolved recipe is never fetched again", func(t *testing.T) {
		gateway := &mockGateway{url: "https://img/real.png"}
		service := NewService(gateway, newMockUpdater())

		recipe := placeholderRecipe("Paella", "seafood paella")
		service.Observe(ctx, recipe)
		require.Equal(t, StateResolved, service.State("Paella"))

		// placeholder observed again (e.g. stale snapshot): no new call
		service.Observe(ctx, recipe)
		assert.Equal(t, 1, gateway.callCount())
	})
}

func TestService_Dispatcher(t *testing.T) {
	ctx := context.Background()

	t.Run("routes fetches through the dispatcher", func(t *testing.T) {
		gateway := &mockGateway{url: "https://img/real.png"}
		service := NewService(gateway, newMockUpdater())

		var dispatched []string
		service.SetDispatcher(func(recipeName, hint string) error {
			dispatched = append(dispatched, recipeName)
			return nil
		})

		started := service.Observe(ctx, placeholderRecipe("Paella", "seafood paella"))

		assert.True(t, started)
		assert.Equal(t, []string{"Paella"}, dispatched)
		assert.Zero(t, gateway.callCount())
		assert.Equal(t, StateFetching, service.State("Paella"))
	})

	t.Run("dispatch failure returns to needs-image", func(t *testing.T) {
		gateway := &mockGateway{url: "https://img/real.png"}
		service := NewService(gateway, newMockUpdater())
		service.SetDispatcher(func(recipeName, hint string) error {
			return fmt.Errorf("queue unavailable")
		})

		started := service.Observe(ctx, placeholderRecipe("Paella", "seafood paella"))

		assert.False(t, started)
		assert.Equal(t, StateNeedsImage, service.State("Paella"))
	})
}
