package catalog

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

//go:embed data/catalog.yaml
var dataFS embed.FS

// catalogFile is the YAML shape of a reference-data file.
type catalogFile struct {
	Sets             []domain.CatalogSet            `yaml:"sets"`
	Cards            []domain.CatalogCard           `yaml:"cards"`
	GradingCompanies []domain.CatalogGradingCompany `yaml:"grading_companies"`
}

// LoadEmbedded builds a Catalog from the reference data compiled into the
// binary.
func LoadEmbedded() (*Catalog, error) {
	data, err := dataFS.ReadFile("data/catalog.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded catalog: %w", err)
	}
	return parseYAML(data)
}

// LoadFile builds a Catalog from an external reference-data file, used to
// override the embedded data without rebuilding.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // catalog path from trusted config
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return parseYAML(data)
}

func parseYAML(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	return Build(f.Sets, f.Cards, f.GradingCompanies)
}
