package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/recetario/internal/config"
	"github.com/mrlokans/recetario/internal/exporters"
	"github.com/mrlokans/recetario/internal/favorites"
)

type ExportFavoritesCommand struct {
	DatabasePath string
	OutputDir    string
}

func NewExportFavoritesCommand() *ExportFavoritesCommand {
	return &ExportFavoritesCommand{}
}

func (cmd *ExportFavoritesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export-favorites", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local favorites database")
	fs.StringVar(&cmd.OutputDir, "out", "./recetas", "Output directory for markdown files")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export-favorites [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export saved recipes as markdown files grouped by folder.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export-favorites -out ./recetas\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export-favorites -db ./recetario.db -out /tmp/recetas\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *ExportFavoritesCommand) Run() error {
	backend, err := favorites.NewLocalBackend(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("open local database: %w", err)
	}
	defer backend.Close()

	state, err := backend.Load(context.Background())
	if err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}
	if len(state.Favorites) == 0 {
		fmt.Println("No saved recipes to export.")
		return nil
	}

	exporter := exporters.NewMarkdownExporter(cmd.OutputDir)
	result, err := exporter.Export(state)
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d recipes to %s (%d failed)\n", result.RecipesProcessed, cmd.OutputDir, result.RecipesFailed)
	return nil
}
