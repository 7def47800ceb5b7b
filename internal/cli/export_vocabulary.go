package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/lexhover/lexhover/internal/collections"
	"github.com/lexhover/lexhover/internal/config"
	"github.com/lexhover/lexhover/internal/exporters"
	"github.com/lexhover/lexhover/internal/storage"
)

// ExportVocabularyCommand dumps the vocabulary collection to a file or
// stdout in csv, json or txt format.
type ExportVocabularyCommand struct {
	DatabasePath string
	Format       string
	OutputPath   string
}

func NewExportVocabularyCommand() *ExportVocabularyCommand {
	return &ExportVocabularyCommand{}
}

func (cmd *ExportVocabularyCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export-vocabulary", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the storage database")
	fs.StringVar(&cmd.Format, "format", "csv", "Export format: csv, json or txt")
	fs.StringVar(&cmd.OutputPath, "output", "", "Output file (defaults to stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export-vocabulary [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export the saved vocabulary collection.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export-vocabulary -format json -output words.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export-vocabulary -format txt\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *ExportVocabularyCommand) Run() error {
	format, err := exporters.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}

	store, err := storage.Open(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	items, err := collections.NewVocabulary(store).Items()
	if err != nil {
		return fmt.Errorf("failed to read vocabulary: %w", err)
	}

	content, err := exporters.ExportVocabulary(items, format)
	if err != nil {
		return err
	}

	if cmd.OutputPath == "" {
		fmt.Print(content)
		return nil
	}

	if err := os.WriteFile(cmd.OutputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cmd.OutputPath, err)
	}
	fmt.Printf("Exported %d vocabulary items to %s\n", len(items), cmd.OutputPath)
	return nil
}
