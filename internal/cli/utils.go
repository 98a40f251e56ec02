// Package cli provides CLI utilities for Kondate.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hyperjump/kondate/internal/models"
	"github.com/hyperjump/kondate/pkg/utils"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
	// OutputCompact is one result per line, suitable for piping.
	OutputCompact SearchOutputFormat = "compact"
)

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case OutputCompact:
		writeSearchResultsCompact(w, response)
		return nil
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsCompact(w io.Writer, response *models.SearchResponse) {
	for i, recipe := range response.Results {
		marker := ""
		if recipe.Favorited {
			marker = " ★"
		}
		fmt.Fprintf(w, "%d\t%s\t%s%s\n", i+1, recipe.ID, recipe.Title, marker)
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d results for %q (%s mode, %d page(s) loaded)\n",
		response.TotalResults, response.Query, response.Mode, response.LastPage)
	if response.HasMore {
		fmt.Fprintln(w, "More results available.")
	}
	if response.APILimited {
		fmt.Fprintln(w, "API limit reached; results may be partial.")
	}
	if response.Notice != "" {
		fmt.Fprintf(w, "Notice: %s\n", response.Notice)
	}
	fmt.Fprintln(w)
	for i, recipe := range response.Results {
		writeOneRecipe(w, &recipe, i+1)
	}
}

func writeOneRecipe(w io.Writer, recipe *models.Recipe, rank int) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	marker := ""
	if recipe.Favorited {
		marker = " ★"
	}
	fmt.Fprintf(w, "[%d] %s%s\n", rank, recipe.Title, marker)
	fmt.Fprintf(w, "ID: %s\n", recipe.ID)
	if recipe.ReadyInMinutes > 0 {
		fmt.Fprintf(w, "Ready in %d min | Serves %d\n", recipe.ReadyInMinutes, recipe.Servings)
	}
	if len(recipe.Cuisines) > 0 {
		fmt.Fprintf(w, "Cuisines: %s\n", strings.Join(recipe.Cuisines, ", "))
	}
	if len(recipe.Diets) > 0 {
		fmt.Fprintf(w, "Diets: %s\n", strings.Join(recipe.Diets, ", "))
	}
	if recipe.SourceURL != "" {
		fmt.Fprintf(w, "%s\n", recipe.SourceURL)
	}
	if recipe.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", utils.Truncate(recipe.Summary, 200))
	}
	fmt.Fprintln(w)
}

// WriteFavorites writes a favorites listing to w in the given format.
func WriteFavorites(w io.Writer, favs []models.Recipe, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(favs)
	default:
		fmt.Fprintf(w, "\n%d favorite(s)\n\n", len(favs))
		for i, recipe := range favs {
			writeOneRecipe(w, &recipe, i+1)
		}
		return nil
	}
}

// PrintSearchResults prints search results to stdout in text format (backward compatible).
func PrintSearchResults(response *models.SearchResponse) {
	_ = WriteSearchResults(os.Stdout, response, OutputText)
}

// TruncateWords returns up to maxWords from the space-separated string.
func TruncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
