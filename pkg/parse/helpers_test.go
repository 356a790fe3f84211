package parse_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tcgtrack/tcg-price-tracker/pkg/catalog"
)

// testCatalog loads the embedded reference catalog once per test that needs
// it. The embedded data ships with the binary, so tests exercising it cover
// the same lookups production does.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat, err := catalog.LoadEmbedded()
	require.NoError(t, err)
	return cat
}
