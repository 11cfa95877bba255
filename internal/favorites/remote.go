package favorites

import (
	"context"
	"log"
	"sync"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/mrlokans/recetario/internal/entities"
)

// FirestoreBackend persists the favorites state in a per-user Firestore
// namespace: recipes as documents keyed by recipe name under
// users/{uid}/favorites, and one users/{uid}/appData/state document holding
// the folder aggregate. Snapshot listeners push every remote change,
// including writes from other devices of the same identity, to the
// subscriber.
//
// Without a resolved identity all operations are no-ops and loads return an
// empty state; favorites silently stay unavailable rather than erroring.
type FirestoreBackend struct {
	client *firestore.Client
	userID string
}

// NewFirestoreBackend creates a backend for the given project and user.
// credentialsFile may be empty to use application default credentials.
func NewFirestoreBackend(ctx context.Context, projectID, credentialsFile, userID string) (*FirestoreBackend, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, err
	}

	return &FirestoreBackend{client: client, userID: userID}, nil
}

func (b *FirestoreBackend) Close() error {
	return b.client.Close()
}

func (b *FirestoreBackend) recipes() *firestore.CollectionRef {
	return b.client.Collection("users").Doc(b.userID).Collection("favorites")
}

func (b *FirestoreBackend) appData() *firestore.DocumentRef {
	return b.client.Collection("users").Doc(b.userID).Collection("appData").Doc("state")
}

func (b *FirestoreBackend) Load(ctx context.Context) (entities.AppState, error) {
	var state entities.AppState
	if b.userID == "" {
		return state, nil
	}

	iter := b.recipes().Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return entities.AppState{}, err
		}
		var recipe entities.Recipe
		if err := doc.DataTo(&recipe); err != nil {
			log.Printf("favorites: skipping undecodable recipe document %q: %v", doc.Ref.ID, err)
			continue
		}
		state.Favorites = append(state.Favorites, recipe)
	}

	doc, err := b.appData().Get(ctx)
	if err == nil {
		if err := doc.DataTo(&state.AppData); err != nil {
			log.Printf("favorites: undecodable appData document: %v", err)
		}
	}
	if state.RecipeFolderMap == nil {
		state.RecipeFolderMap = entities.RecipeFolderMap{}
	}

	return state, nil
}

func (b *FirestoreBackend) SaveRecipe(ctx context.Context, recipe entities.Recipe) error {
	if b.userID == "" {
		return nil
	}
	_, err := b.recipes().Doc(recipe.RecipeName).Set(ctx, recipe)
	return err
}

func (b *FirestoreBackend) DeleteRecipe(ctx context.Context, name string) error {
	if b.userID == "" {
		return nil
	}
	_, err := b.recipes().Doc(name).Delete(ctx)
	return err
}

func (b *FirestoreBackend) SaveAppData(ctx context.Context, data entities.AppData) error {
	if b.userID == "" {
		return nil
	}
	if data.RecipeFolderMap == nil {
		data.RecipeFolderMap = entities.RecipeFolderMap{}
	}
	_, err := b.appData().Set(ctx, data)
	return err
}

// Subscribe attaches snapshot listeners to the recipe collection and the
// appData document. The composed full snapshot is delivered immediately and
// again on every change; handlers must tolerate redeliveries with identical
// content.
func (b *FirestoreBackend) Subscribe(ctx context.Context, onChange func(entities.AppState)) (func(), error) {
	if b.userID == "" {
		onChange(entities.AppState{AppData: entities.AppData{RecipeFolderMap: entities.RecipeFolderMap{}}})
		return func() {}, nil
	}

	subCtx, cancel := context.WithCancel(ctx)

	var mu sync.Mutex
	var current entities.AppState
	current.RecipeFolderMap = entities.RecipeFolderMap{}

	publish := func() {
		mu.Lock()
		snapshot := current.Clone()
		mu.Unlock()
		onChange(snapshot)
	}

	go func() {
		snaps := b.recipes().Snapshots(subCtx)
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if subCtx.Err() == nil {
					log.Printf("favorites: recipe snapshot listener stopped: %v", err)
				}
				return
			}

			var recipes []entities.Recipe
			docs := snap.Documents
			for {
				doc, err := docs.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					log.Printf("favorites: recipe snapshot read failed: %v", err)
					break
				}
				var recipe entities.Recipe
				if err := doc.DataTo(&recipe); err != nil {
					log.Printf("favorites: skipping undecodable recipe document %q: %v", doc.Ref.ID, err)
					continue
				}
				recipes = append(recipes, recipe)
			}

			mu.Lock()
			current.Favorites = recipes
			mu.Unlock()
			publish()
		}
	}()

	go func() {
		snaps := b.appData().Snapshots(subCtx)
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if subCtx.Err() == nil {
					log.Printf("favorites: appData snapshot listener stopped: %v", err)
				}
				return
			}

			var data entities.AppData
			if snap.Exists() {
				if err := snap.DataTo(&data); err != nil {
					log.Printf("favorites: undecodable appData snapshot: %v", err)
					continue
				}
			}
			if data.RecipeFolderMap == nil {
				data.RecipeFolderMap = entities.RecipeFolderMap{}
			}

			mu.Lock()
			current.AppData = data
			mu.Unlock()
			publish()
		}
	}()

	return cancel, nil
}
