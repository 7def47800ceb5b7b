// Package exporters serializes the vocabulary collection into portable
// formats. Output is deterministic for identical input lists.
package exporters

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lexhover/lexhover/internal/entities"
)

// Format identifies a vocabulary export format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatTXT  Format = "txt"
)

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV, "":
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatTXT:
		return FormatTXT, nil
	}
	return "", fmt.Errorf("unsupported export format: %q", s)
}

// ExportVocabulary serializes items into the requested format.
func ExportVocabulary(items []entities.VocabularyItem, format Format) (string, error) {
	switch format {
	case FormatCSV:
		return exportCSV(items), nil
	case FormatJSON:
		return exportJSON(items)
	case FormatTXT:
		return exportTXT(items), nil
	}
	return "", fmt.Errorf("unsupported export format: %q", format)
}

var csvHeaders = []string{
	"Original Text",
	"Translated Text",
	"Source Language",
	"Target Language",
	"Platform",
	"Timestamp",
	"Favorite",
	"Tags",
	"Notes",
	"Review Count",
	"Difficulty",
}

// exportCSV quotes free-text fields and doubles embedded quotes.
func exportCSV(items []entities.VocabularyItem) string {
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, strings.Join(csvHeaders, ","))

	for _, item := range items {
		favorite := "No"
		if item.Favorite {
			favorite = "Yes"
		}
		row := []string{
			quoteCSV(item.OriginalText),
			quoteCSV(item.TranslatedText),
			item.SourceLanguage,
			item.TargetLanguage,
			item.Platform,
			time.UnixMilli(item.Timestamp).UTC().Format(time.RFC3339),
			favorite,
			quoteCSV(strings.Join(item.Tags, "; ")),
			quoteCSV(item.Notes),
			fmt.Sprintf("%d", item.ReviewCount),
			string(difficultyOrMedium(item.Difficulty)),
		}
		lines = append(lines, strings.Join(row, ","))
	}

	return strings.Join(lines, "\n")
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func exportJSON(items []entities.VocabularyItem) (string, error) {
	out, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode vocabulary: %w", err)
	}
	return string(out), nil
}

func exportTXT(items []entities.VocabularyItem) string {
	blocks := make([]string, 0, len(items))
	for _, item := range items {
		star := "☆"
		if item.Favorite {
			star = "★"
		}
		tags := "No tags"
		if len(item.Tags) > 0 {
			tags = strings.Join(item.Tags, ", ")
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s %s\n", star, item.OriginalText)
		fmt.Fprintf(&b, "  → %s\n", item.TranslatedText)
		fmt.Fprintf(&b, "  Languages: %s → %s\n", item.SourceLanguage, item.TargetLanguage)
		fmt.Fprintf(&b, "  Platform: %s\n", item.Platform)
		fmt.Fprintf(&b, "  Added: %s\n", time.UnixMilli(item.Timestamp).UTC().Format(time.RFC3339))
		fmt.Fprintf(&b, "  Tags: %s\n", tags)
		fmt.Fprintf(&b, "  Reviews: %d (%s)\n", item.ReviewCount, difficultyOrMedium(item.Difficulty))
		if item.Notes != "" {
			fmt.Fprintf(&b, "  Notes: %s\n", item.Notes)
		}
		b.WriteString(strings.Repeat("-", 50))
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n")
}

func difficultyOrMedium(d entities.Difficulty) entities.Difficulty {
	if d == "" {
		return entities.DifficultyMedium
	}
	return d
}
