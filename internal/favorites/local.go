package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/recetario/internal/entities"
)

// LocalBackend persists the favorites state in a device-local SQLite
// database. The whole state lives under one versioned key and is rewritten
// atomically on every mutation, so an interrupted save can never leave the
// recipe list and the folder map out of step.
//
// Storage failures degrade to in-memory only: the mutation is applied to the
// backend's mirror, logged and otherwise swallowed. Favorites are a
// convenience layer and must never take the app down.
type LocalBackend struct {
	db *gorm.DB

	mu    sync.Mutex
	state entities.AppState
}

// NewLocalBackend opens (or creates) the local database at dbPath.
func NewLocalBackend(dbPath string) (*LocalBackend, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&entities.StoredValue{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &LocalBackend{db: db}, nil
}

func (b *LocalBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Load reads the consolidated snapshot, migrating the legacy three-key
// layout if present. Corrupt JSON is logged and treated as empty.
func (b *LocalBackend) Load(ctx context.Context) (entities.AppState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	raw, found := b.get(entities.StorageKeyFavoritesV2)
	if found {
		var state entities.AppState
		if err := json.Unmarshal([]byte(raw), &state); err != nil {
			log.Printf("favorites: corrupt %s record, starting empty: %v", entities.StorageKeyFavoritesV2, err)
			state = entities.AppState{}
		}
		b.state = state
		return state.Clone(), nil
	}

	state := b.migrateLegacy()
	b.state = state
	return state.Clone(), nil
}

// migrateLegacy consolidates the old split keys under the v2 key. Unreadable
// legacy values are skipped rather than failing the whole load.
func (b *LocalBackend) migrateLegacy() entities.AppState {
	var state entities.AppState
	migrated := false

	if raw, found := b.get(entities.StorageKeyFavorites); found {
		if err := json.Unmarshal([]byte(raw), &state.Favorites); err != nil {
			log.Printf("favorites: skipping corrupt legacy %s record: %v", entities.StorageKeyFavorites, err)
		}
		migrated = true
	}
	if raw, found := b.get(entities.StorageKeyFolders); found {
		if err := json.Unmarshal([]byte(raw), &state.Folders); err != nil {
			log.Printf("favorites: skipping corrupt legacy %s record: %v", entities.StorageKeyFolders, err)
		}
		migrated = true
	}
	if raw, found := b.get(entities.StorageKeyRecipeFolderMap); found {
		if err := json.Unmarshal([]byte(raw), &state.RecipeFolderMap); err != nil {
			log.Printf("favorites: skipping corrupt legacy %s record: %v", entities.StorageKeyRecipeFolderMap, err)
		}
		migrated = true
	}

	if migrated {
		if err := b.persist(state); err != nil {
			log.Printf("favorites: legacy migration write failed: %v", err)
		} else {
			for _, key := range []string{entities.StorageKeyFavorites, entities.StorageKeyFolders, entities.StorageKeyRecipeFolderMap} {
				b.db.Where("key = ?", key).Delete(&entities.StoredValue{})
			}
			log.Printf("favorites: migrated legacy storage layout to %s", entities.StorageKeyFavoritesV2)
		}
	}

	return state
}

func (b *LocalBackend) SaveRecipe(ctx context.Context, recipe entities.Recipe) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	replaced := false
	for i, fav := range b.state.Favorites {
		if fav.RecipeName == recipe.RecipeName {
			b.state.Favorites[i] = recipe
			replaced = true
			break
		}
	}
	if !replaced {
		b.state.Favorites = append(b.state.Favorites, recipe)
	}

	return b.persistLogged()
}

func (b *LocalBackend) DeleteRecipe(ctx context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.state.Favorites[:0]
	for _, fav := range b.state.Favorites {
		if fav.RecipeName != name {
			kept = append(kept, fav)
		}
	}
	b.state.Favorites = kept

	return b.persistLogged()
}

func (b *LocalBackend) SaveAppData(ctx context.Context, data entities.AppData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state.AppData = data
	return b.persistLogged()
}

// Subscribe delivers the current snapshot once. The local backend is single
// device and has no push notifications.
func (b *LocalBackend) Subscribe(ctx context.Context, onChange func(entities.AppState)) (func(), error) {
	b.mu.Lock()
	snapshot := b.state.Clone()
	b.mu.Unlock()

	onChange(snapshot)
	return func() {}, nil
}

func (b *LocalBackend) get(key string) (string, bool) {
	var record entities.StoredValue
	err := b.db.Where("key = ?", key).First(&record).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("favorites: read %q failed: %v", key, err)
		}
		return "", false
	}
	return record.Value, true
}

// persistLogged writes the mirror and downgrades failures to a log line so
// the mutation stays applied in memory.
func (b *LocalBackend) persistLogged() error {
	if err := b.persist(b.state); err != nil {
		log.Printf("favorites: local write failed, keeping in-memory state: %v", err)
	}
	return nil
}

func (b *LocalBackend) persist(state entities.AppState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	var record entities.StoredValue
	result := b.db.Where("key = ?", entities.StorageKeyFavoritesV2).First(&record)
	if result.Error == gorm.ErrRecordNotFound {
		record = entities.StoredValue{
			Key:   entities.StorageKeyFavoritesV2,
			Value: string(payload),
		}
		return b.db.Create(&record).Error
	} else if result.Error != nil {
		return result.Error
	}

	record.Value = string(payload)
	return b.db.Save(&record).Error
}
