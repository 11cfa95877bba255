package exporters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrlokans/recetario/internal/entities"
)

// ExportResult summarises a markdown export run.
type ExportResult struct {
	RecipesProcessed int `json:"recipes_processed"`
	RecipesFailed    int `json:"recipes_failed"`
}

// MarkdownExporter writes saved recipes as markdown files, one per recipe,
// grouped into subdirectories by folder name.
type MarkdownExporter struct {
	OutputDir string
}

func NewMarkdownExporter(outputDir string) *MarkdownExporter {
	return &MarkdownExporter{OutputDir: outputDir}
}

// Export writes every favorite in the snapshot. Recipes without a folder
// land in the "sin-carpeta" subdirectory.
func (exporter *MarkdownExporter) Export(state entities.AppState) (ExportResult, error) {
	result := ExportResult{}

	if err := os.MkdirAll(exporter.OutputDir, 0755); err != nil {
		return result, fmt.Errorf("failed to create export directory: %w", err)
	}

	folderNames := make(map[string]string, len(state.Folders))
	for _, folder := range state.Folders {
		folderNames[folder.ID] = folder.Name
	}

	for _, recipe := range state.Favorites {
		folderName := folderNames[state.RecipeFolderMap[recipe.RecipeName]]
		if folderName == "" {
			folderName = "sin-carpeta"
		}

		if err := exporter.exportRecipe(recipe, folderName); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to export %q: %v\n", recipe.RecipeName, err)
			result.RecipesFailed++
			continue
		}
		result.RecipesProcessed++
	}

	return result, nil
}

func (exporter *MarkdownExporter) exportRecipe(recipe entities.Recipe, folderName string) error {
	dir := filepath.Join(exporter.OutputDir, sanitizeFilename(folderName))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create folder directory: %w", err)
	}

	outputPath := filepath.Join(dir, sanitizeFilename(recipe.RecipeName)+".md")

	var sb strings.Builder
	fmt.Fprintf(&sb, "---\n")
	fmt.Fprintf(&sb, "content_type: recipe\n")
	fmt.Fprintf(&sb, "created_at: %s\n", time.Now().Format("2006-01-02"))
	fmt.Fprintf(&sb, "title: %s\n", recipe.RecipeName)
	fmt.Fprintf(&sb, "cooking_time: %s\n", recipe.EstimatedCookingTime)
	fmt.Fprintf(&sb, "---\n\n")
	fmt.Fprintf(&sb, "# %s\n\n", recipe.RecipeName)
	fmt.Fprintf(&sb, "## Ingredientes\n\n%s\n\n", recipe.IngredientsList)
	fmt.Fprintf(&sb, "## Instrucciones\n\n%s\n\n", recipe.Instructions)
	if recipe.NutritionalInformation != "" {
		fmt.Fprintf(&sb, "## Información nutricional\n\n%s\n\n", recipe.NutritionalInformation)
	}
	if recipe.AdditionalSuggestedIngredients != "" {
		fmt.Fprintf(&sb, "## Ingredientes sugeridos\n\n%s\n", recipe.AdditionalSuggestedIngredients)
	}

	return os.WriteFile(outputPath, []byte(sb.String()), 0644)
}

// sanitizeFilename replaces characters that are unsafe in file names.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"\"", "-",
		"<", "-",
		">", "-",
		"|", "-",
	)
	return strings.TrimSpace(replacer.Replace(name))
}
