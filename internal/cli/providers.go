package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lexhover/lexhover/internal/config"
	"github.com/lexhover/lexhover/internal/providers"
	"github.com/lexhover/lexhover/internal/storage"
)

// ProvidersCommand lists the registered translation platforms and
// optionally probes their availability.
type ProvidersCommand struct {
	DatabasePath string
	Check        bool
	Timeout      time.Duration
}

func NewProvidersCommand() *ProvidersCommand {
	return &ProvidersCommand{}
}

func (cmd *ProvidersCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("providers", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the storage database")
	fs.BoolVar(&cmd.Check, "check", false, "Probe each platform with a canary translation")
	fs.DurationVar(&cmd.Timeout, "timeout", 30*time.Second, "Total timeout for the health probes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s providers [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List registered translation platforms.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s providers -check\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *ProvidersCommand) Run() error {
	store, err := storage.Open(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	registry := providers.NewRegistry(store)

	cfg, err := registry.TranslateConfig()
	if err != nil {
		return fmt.Errorf("failed to read translate config: %w", err)
	}

	fmt.Println("Translation Platforms")
	fmt.Println("=====================")
	fmt.Printf("Default: %s (%s -> %s)\n\n", cfg.Platform, cfg.SourceLanguage, cfg.TargetLanguage)

	if cmd.Check {
		ctx, cancel := context.WithTimeout(context.Background(), cmd.Timeout)
		defer cancel()

		for _, health := range registry.Health(ctx) {
			status := "unavailable"
			if health.Available {
				status = "available"
			}
			fmt.Printf("  %-10s %-20s %s\n", health.Code, health.Name, status)
		}
		return nil
	}

	for _, platform := range registry.Platforms() {
		fmt.Printf("  %-10s %-20s %d languages\n", platform.Code(), platform.Name(), len(platform.Languages()))
	}
	fmt.Printf("\nUse -check to probe availability.\n")
	return nil
}
