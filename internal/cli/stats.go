package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lexhover/lexhover/internal/collections"
	"github.com/lexhover/lexhover/internal/config"
	"github.com/lexhover/lexhover/internal/storage"
)

// StatsCommand prints history and vocabulary statistics.
type StatsCommand struct {
	DatabasePath string
}

func NewStatsCommand() *StatsCommand {
	return &StatsCommand{}
}

func (cmd *StatsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the storage database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s stats [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print translation history and vocabulary statistics.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *StatsCommand) Run() error {
	store, err := storage.Open(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	historyStats, err := collections.NewHistory(store).Stats()
	if err != nil {
		return fmt.Errorf("failed to read history stats: %w", err)
	}

	vocabStats, err := collections.NewVocabulary(store).Stats()
	if err != nil {
		return fmt.Errorf("failed to read vocabulary stats: %w", err)
	}

	fmt.Println("Translation History")
	fmt.Println("===================")
	fmt.Printf("Items: %d\n", historyStats.TotalItems)
	if historyStats.OldestTimestamp != nil {
		fmt.Printf("Oldest: %s\n", formatMillis(*historyStats.OldestTimestamp))
	}
	if historyStats.NewestTimestamp != nil {
		fmt.Printf("Newest: %s\n", formatMillis(*historyStats.NewestTimestamp))
	}

	fmt.Println("\nVocabulary")
	fmt.Println("==========")
	fmt.Printf("Items: %d\n", vocabStats.TotalItems)
	fmt.Printf("Favorites: %d\n", vocabStats.FavoritesCount)
	if vocabStats.LastAdded != nil {
		fmt.Printf("Last added: %s\n", formatMillis(*vocabStats.LastAdded))
	}
	if len(vocabStats.ByDifficulty) > 0 {
		fmt.Println("By difficulty:")
		for difficulty, count := range vocabStats.ByDifficulty {
			fmt.Printf("  %s: %d\n", difficulty, count)
		}
	}
	if len(vocabStats.ByLanguage) > 0 {
		fmt.Println("By language pair:")
		for pair, count := range vocabStats.ByLanguage {
			fmt.Printf("  %s: %d\n", pair, count)
		}
	}

	return nil
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Format(time.RFC3339)
}
