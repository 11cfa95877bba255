// Package backfill lazily generates missing recipe images: the first time a
// saved recipe is observed with the placeholder image and a usable hint, one
// image-generation call is issued and the result is written back into the
// favorites store.
package backfill

import (
	"context"
	"log"
	"sync"

	"github.com/mrlokans/recetario/internal/entities"
)

// ImageState is the per-recipe position in the backfill lifecycle.
type ImageState int

const (
	// StateNeedsImage means the recipe still shows the placeholder and no
	// fetch is in flight.
	StateNeedsImage ImageState = iota
	// StateFetching means a generation call is outstanding.
	StateFetching
	// StateResolved means the recipe has a real image; it is never fetched
	// again.
	StateResolved
)

// ImageGenerator is the external gateway call: a short hint in, an image URL
// out.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, hint string) (string, error)
}

// FavoriteUpdater writes the generated URL back into the saved recipe.
type FavoriteUpdater interface {
	UpdateFavorite(ctx context.Context, name string, update entities.RecipeUpdate)
}

// Dispatcher hands a fetch off for asynchronous execution. The server wires
// this to the task queue; when nil the fetch runs inline.
type Dispatcher func(recipeName, hint string) error

// Service tracks every observed recipe in an explicit state table keyed by
// recipe name, guaranteeing at most one outstanding generation call per
// recipe no matter how often the recipe is re-observed.
type Service struct {
	gateway  ImageGenerator
	store    FavoriteUpdater
	dispatch Dispatcher

	mu     sync.Mutex
	states map[string]ImageState
}

func NewService(gateway ImageGenerator, store FavoriteUpdater) *Service {
	return &Service{
		gateway: gateway,
		store:   store,
		states:  make(map[string]ImageState),
	}
}

// SetDispatcher routes fetches through an asynchronous executor instead of
// running them inline. Must be called before the first Observe.
func (s *Service) SetDispatcher(d Dispatcher) {
	s.dispatch = d
}

// Observe inspects a recipe and starts a backfill if it needs one. Returns
// true when a fetch was started. Recipes with a real image are marked
// resolved; recipes without a hint are left alone (there is nothing to
// prompt the gateway with).
func (s *Service) Observe(ctx context.Context, recipe entities.Recipe) bool {
	if !entities.IsPlaceholderImage(recipe.ImageURL) {
		s.setState(recipe.RecipeName, StateResolved)
		return false
	}
	if recipe.ImageHint == "" {
		return false
	}

	s.mu.Lock()
	if s.states[recipe.RecipeName] != StateNeedsImage {
		s.mu.Unlock()
		return false
	}
	s.states[recipe.RecipeName] = StateFetching
	s.mu.Unlock()

	if s.dispatch != nil {
		if err := s.dispatch(recipe.RecipeName, recipe.ImageHint); err != nil {
			log.Printf("backfill: dispatch for %q failed: %v", recipe.RecipeName, err)
			s.setState(recipe.RecipeName, StateNeedsImage)
			return false
		}
		return true
	}

	return s.Process(ctx, recipe.RecipeName, recipe.ImageHint) == nil
}

// Process performs the generation call and writes the result back. On
// failure the recipe keeps its placeholder and drops back to needs-image so
// a later observation may try again; no retry is scheduled here.
func (s *Service) Process(ctx context.Context, recipeName, hint string) error {
	url, err := s.gateway.GenerateImage(ctx, hint)
	if err != nil || entities.IsPlaceholderImage(url) {
		if err != nil {
			log.Printf("backfill: image generation for %q failed, keeping placeholder: %v", recipeName, err)
		}
		s.setState(recipeName, StateNeedsImage)
		return nil
	}

	s.store.UpdateFavorite(ctx, recipeName, entities.RecipeUpdate{ImageURL: &url})
	s.setState(recipeName, StateResolved)
	return nil
}

// State returns the recipe's current backfill state.
func (s *Service) State(recipeName string) ImageState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[recipeName]
}

func (s *Service) setState(recipeName string, state ImageState) {
	s.mu.Lock()
	s.states[recipeName] = state
	s.mu.Unlock()
}
