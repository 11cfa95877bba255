package favorites

import (
	"context"

	"github.com/google/uuid"

	"github.com/mrlokans/recetario/internal/entities"
)

// CreateFolder creates a folder with a fresh unique id. Folder names are
// unique per user: creating an existing name returns the existing folder and
// false. IDs are random, not wall-clock based, so rapid successive calls
// cannot collide.
func (s *Store) CreateFolder(ctx context.Context, name string) (entities.Folder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, folder := range s.state.Folders {
		if folder.Name == name {
			return folder, false
		}
	}

	folder := entities.Folder{
		ID:   "folder-" + uuid.NewString(),
		Name: name,
	}
	s.state.Folders = append(s.state.Folders, folder)
	s.persistAppData(ctx)
	return folder, true
}

// DeleteFolder removes the folder and reassigns every recipe mapped to it to
// "no folder". Both changes land in the same AppData write, so no reader can
// observe a recipe pointing at a deleted folder. Unknown ids are a no-op.
func (s *Store) DeleteFolder(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	kept := make([]entities.Folder, 0, len(s.state.Folders))
	for _, folder := range s.state.Folders {
		if folder.ID == id {
			found = true
			continue
		}
		kept = append(kept, folder)
	}
	if !found {
		return
	}
	s.state.Folders = kept

	for name, folderID := range s.state.RecipeFolderMap {
		if folderID == id {
			delete(s.state.RecipeFolderMap, name)
		}
	}

	s.persistAppData(ctx)
}

// MoveRecipeToFolder assigns the recipe to the folder, or clears the
// assignment when folderID is empty. Moving to a folder that does not exist
// is a no-op: the aggregate is single-user and self-healing, so invariant
// violations degrade silently instead of erroring.
func (s *Store) MoveRecipeToFolder(ctx context.Context, recipeName, folderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if folderID == "" {
		if _, mapped := s.state.RecipeFolderMap[recipeName]; !mapped {
			return
		}
		delete(s.state.RecipeFolderMap, recipeName)
		s.persistAppData(ctx)
		return
	}

	if !s.folderExists(folderID) {
		return
	}

	s.state.RecipeFolderMap[recipeName] = folderID
	s.persistAppData(ctx)
}

// Folders returns the user's folders in creation order.
func (s *Store) Folders() []entities.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone().Folders
}

// FolderFor returns the folder id the recipe is assigned to, or "" for
// "no folder".
func (s *Store) FolderFor(recipeName string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.RecipeFolderMap[recipeName]
}

// folderExists checks folder liveness; the caller holds the mutex.
func (s *Store) folderExists(id string) bool {
	for _, folder := range s.state.Folders {
		if folder.ID == id {
			return true
		}
	}
	return false
}
