package entities

import "strings"

// PlaceholderImageURL is the sentinel image assigned to recipes that have no
// generated image yet. Backfill detects it by host pattern, not exact match,
// so sized variants (e.g. 600x400) are also recognised.
const PlaceholderImageURL = "https://placehold.co/600x400.png"

const placeholderHost = "placehold.co"

// IsPlaceholderImage reports whether url is the placeholder sentinel.
func IsPlaceholderImage(url string) bool {
	return url == "" || strings.Contains(url, placeholderHost)
}

// Recipe is a single saved dish. Recipes are unique by name within one user's
// store; every field except ImageURL is immutable after save.
type Recipe struct {
	RecipeName                     string `json:"recipeName" firestore:"recipeName"`
	IngredientsList                string `json:"ingredientsList" firestore:"ingredientsList"`
	Instructions                   string `json:"instructions" firestore:"instructions"`
	EstimatedCookingTime           string `json:"estimatedCookingTime" firestore:"estimatedCookingTime"`
	NutritionalInformation         string `json:"nutritionalInformation" firestore:"nutritionalInformation"`
	AdditionalSuggestedIngredients string `json:"additionalSuggestedIngredients" firestore:"additionalSuggestedIngredients"`
	ImageHint                      string `json:"imageHint,omitempty" firestore:"imageHint"`
	ImageURL                       string `json:"imageUrl" firestore:"imageUrl"`
}

// RecipeUpdate carries a partial update for a saved recipe. Nil fields are
// left untouched.
type RecipeUpdate struct {
	ImageURL  *string `json:"imageUrl,omitempty"`
	ImageHint *string `json:"imageHint,omitempty"`
}

// Folder is a user-named grouping bucket for saved recipes.
type Folder struct {
	ID   string `json:"id" firestore:"id"`
	Name string `json:"name" firestore:"name"`
}

// RecipeFolderMap associates a recipe name with at most one folder ID.
// A missing or empty entry means "no folder".
type RecipeFolderMap map[string]string

// AppData groups the folder list and the recipe→folder mapping so they can be
// persisted in a single atomic write.
type AppData struct {
	Folders         []Folder        `json:"folders" firestore:"folders"`
	RecipeFolderMap RecipeFolderMap `json:"recipeFolderMap" firestore:"recipeFolderMap"`
}

// AppState is the full favorites snapshot: saved recipes in insertion order
// plus the folder aggregate. It is what backends load, save and push through
// change subscriptions.
type AppState struct {
	Favorites []Recipe `json:"favorites"`
	AppData
}

// Clone returns a deep copy so callers can never mutate a shared snapshot.
func (s AppState) Clone() AppState {
	out := AppState{}
	if s.Favorites != nil {
		out.Favorites = make([]Recipe, len(s.Favorites))
		copy(out.Favorites, s.Favorites)
	}
	if s.Folders != nil {
		out.Folders = make([]Folder, len(s.Folders))
		copy(out.Folders, s.Folders)
	}
	if s.RecipeFolderMap != nil {
		out.RecipeFolderMap = make(RecipeFolderMap, len(s.RecipeFolderMap))
		for k, v := range s.RecipeFolderMap {
			out.RecipeFolderMap[k] = v
		}
	}
	return out
}

// Category is an AI-generated browsing category for the home page.
type Category struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	ImageHint string `json:"imageHint"`
	ImageURL  string `json:"imageUrl"`
}
