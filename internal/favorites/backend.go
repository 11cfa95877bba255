// Package favorites implements the saved-recipe store: user favorites,
// organizational folders and the recipe→folder mapping, persisted through one
// of two interchangeable backends (device-local SQLite or a per-user
// Firestore namespace with realtime push).
package favorites

import (
	"context"

	"github.com/mrlokans/recetario/internal/entities"
)

// Backend is the durable persistence capability the store depends on. It is
// selected once at startup; the store never talks to storage directly.
//
// All write operations use upsert/idempotent semantics: saving the same
// recipe twice or deleting an absent one must succeed without effect.
type Backend interface {
	// Load returns the full persisted snapshot. A backend with no resolved
	// identity or no prior data returns an empty state, not an error.
	Load(ctx context.Context) (entities.AppState, error)

	// SaveRecipe creates or fully overwrites the record keyed by recipe name.
	SaveRecipe(ctx context.Context, recipe entities.Recipe) error

	// DeleteRecipe removes the record; absent records are not an error.
	DeleteRecipe(ctx context.Context, name string) error

	// SaveAppData atomically replaces the folder list and the recipe→folder
	// mapping in a single write.
	SaveAppData(ctx context.Context, data entities.AppData) error

	// Subscribe delivers the current snapshot immediately and again on every
	// subsequent change. Backends without push (local) deliver only the
	// initial snapshot. The returned function stops the subscription.
	Subscribe(ctx context.Context, onChange func(entities.AppState)) (func(), error)

	Close() error
}
