package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tcgtrack/tcg-price-tracker/pkg/catalog"
	"github.com/tcgtrack/tcg-price-tracker/pkg/parse"
	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

var parseCatalogPath string

var parseCmd = &cobra.Command{
	Use:   "parse [title]",
	Short: "Classify a listing title and print the result as JSON",
	Long: "Classifies a single listing title against the card catalog without " +
		"touching the database. Useful for checking how a title will parse.",
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseCatalogPath, "catalog", "",
		"catalog YAML path (default: embedded catalog)")
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	var (
		cat *catalog.Catalog
		err error
	)
	if parseCatalogPath != "" {
		cat, err = catalog.LoadFile(parseCatalogPath)
	} else {
		cat, err = catalog.LoadEmbedded()
	}
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	title := strings.Join(args, " ")
	parsed, err := parse.NewClassifier(cat).Classify(&domain.RawListing{Title: title})
	if err != nil {
		return fmt.Errorf("classifying title: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(parsed)
}
