package favorites

import (
	"context"
	"log"
	"sync"

	"github.com/mrlokans/recetario/internal/entities"
)

// Store owns the in-memory favorites snapshot and funnels every mutation
// through the configured persistence backend. All mutations are
// read-modify-write operations on the latest snapshot under one mutex, so a
// concurrent folder deletion and a move targeting the same folder can never
// race into a map entry pointing at a dead folder.
//
// Persistence errors are logged and swallowed: the mutation stays applied to
// the snapshot and the store keeps serving (in-memory-only degradation).
type Store struct {
	backend Backend

	mu          sync.RWMutex
	state       entities.AppState
	unsubscribe func()
}

func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		state:   entities.AppState{AppData: entities.AppData{RecipeFolderMap: entities.RecipeFolderMap{}}},
	}
}

// Open loads the initial snapshot and starts the change subscription. Remote
// deliveries (including this client's own confirmed writes) replace the
// snapshot wholesale; re-applying identical content is harmless.
func (s *Store) Open(ctx context.Context) error {
	state, err := s.backend.Load(ctx)
	if err != nil {
		log.Printf("favorites: initial load failed, starting empty: %v", err)
		state = entities.AppState{}
	}
	s.applySnapshot(state)

	unsubscribe, err := s.backend.Subscribe(ctx, s.applySnapshot)
	if err != nil {
		log.Printf("favorites: subscription unavailable: %v", err)
		return nil
	}
	s.unsubscribe = unsubscribe
	return nil
}

// Close stops the subscription and releases the backend.
func (s *Store) Close() error {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	return s.backend.Close()
}

func (s *Store) applySnapshot(state entities.AppState) {
	if state.RecipeFolderMap == nil {
		state.RecipeFolderMap = entities.RecipeFolderMap{}
	}
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// AddFavorite saves the recipe unless one with the same name already exists.
// A newly added recipe starts with no folder assignment.
func (s *Store) AddFavorite(ctx context.Context, recipe entities.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, fav := range s.state.Favorites {
		if fav.RecipeName == recipe.RecipeName {
			return
		}
	}

	s.state.Favorites = append(s.state.Favorites, recipe)
	if err := s.backend.SaveRecipe(ctx, recipe); err != nil {
		log.Printf("favorites: save %q failed: %v", recipe.RecipeName, err)
	}
}

// RemoveFavorite deletes the recipe and clears its folder assignment. Absent
// recipes are a no-op.
func (s *Store) RemoveFavorite(ctx context.Context, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	kept := make([]entities.Recipe, 0, len(s.state.Favorites))
	for _, fav := range s.state.Favorites {
		if fav.RecipeName == name {
			found = true
			continue
		}
		kept = append(kept, fav)
	}
	if !found {
		return
	}
	s.state.Favorites = kept

	if err := s.backend.DeleteRecipe(ctx, name); err != nil {
		log.Printf("favorites: delete %q failed: %v", name, err)
	}

	if _, mapped := s.state.RecipeFolderMap[name]; mapped {
		delete(s.state.RecipeFolderMap, name)
		s.persistAppData(ctx)
	}
}

// UpdateFavorite merges the supplied fields into the saved recipe. Unknown
// names are a no-op.
func (s *Store) UpdateFavorite(ctx context.Context, name string, update entities.RecipeUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, fav := range s.state.Favorites {
		if fav.RecipeName != name {
			continue
		}
		if update.ImageURL != nil {
			fav.ImageURL = *update.ImageURL
		}
		if update.ImageHint != nil {
			fav.ImageHint = *update.ImageHint
		}
		s.state.Favorites[i] = fav

		if err := s.backend.SaveRecipe(ctx, fav); err != nil {
			log.Printf("favorites: update %q failed: %v", name, err)
		}
		return
	}
}

// IsFavorite reports whether a recipe with the given name is saved.
func (s *Store) IsFavorite(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, fav := range s.state.Favorites {
		if fav.RecipeName == name {
			return true
		}
	}
	return false
}

// Favorite returns the saved recipe by name.
func (s *Store) Favorite(name string) (entities.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, fav := range s.state.Favorites {
		if fav.RecipeName == name {
			return fav, true
		}
	}
	return entities.Recipe{}, false
}

// Favorites returns the saved recipes in insertion order.
func (s *Store) Favorites() []entities.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone().Favorites
}

// Snapshot returns a copy of the full current state.
func (s *Store) Snapshot() entities.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// persistAppData writes the folder aggregate; the caller holds the mutex.
func (s *Store) persistAppData(ctx context.Context) {
	if err := s.backend.SaveAppData(ctx, s.state.AppData); err != nil {
		log.Printf("favorites: appData write failed: %v", err)
	}
}
