package config

const (
	// DefaultDatabasePath is the default path for the local favorites database
	DefaultDatabasePath = "./recetario.db"

	// DefaultTextModel is the Gemini model used for structured text generation
	DefaultTextModel = "gemini-1.5-flash"

	// DefaultImageModel is the Gemini model used for recipe image generation
	DefaultImageModel = "gemini-2.0-flash-preview-image-generation"
)
