package entities

import (
	"time"
)

// StoredValue is a key→JSON record in the device-local database. The local
// persistence backend keeps the whole favorites state under a single
// versioned key so every mutation is one atomic write.
type StoredValue struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StoredValue) TableName() string {
	return "stored_values"
}

// Known storage keys
const (
	// StorageKeyFavoritesV2 holds the consolidated {favorites, folders,
	// recipeFolderMap} blob.
	StorageKeyFavoritesV2 = "favoriteRecipes_v2"

	// Legacy split layout, migrated into the v2 key on first load.
	StorageKeyFavorites       = "favorites"
	StorageKeyFolders         = "folders"
	StorageKeyRecipeFolderMap = "recipeFolderMap"
)
