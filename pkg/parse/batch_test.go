package parse_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgtrack/tcg-price-tracker/pkg/parse"
	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

func TestParseBatch(t *testing.T) {
	t.Parallel()

	c := parse.NewClassifier(testCatalog(t))

	listings := []domain.RawListing{
		{SourceID: "a", Title: "PSA 10 One Piece OP01-121 Monkey D. Luffy SEC Romance Dawn"},
		{SourceID: "b", Title: ""},
		{SourceID: "c", Title: "One Piece TCG OP-01 Romance Dawn Booster Box English Sealed"},
		{SourceID: "d", Title: "One Piece OP05-119 Monkey D. Luffy Gear 5 SEC"},
	}

	res, err := parse.ParseBatch(context.Background(), c, listings, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Records, 3)

	// Input order survives concurrent scheduling.
	assert.Equal(t, "a", res.Records[0].Raw.SourceID)
	assert.Equal(t, "c", res.Records[1].Raw.SourceID)
	assert.Equal(t, "d", res.Records[2].Raw.SourceID)

	assert.Equal(t, domain.ProductGraded, res.Records[0].Parsed.ProductType)
	assert.Equal(t, domain.ProductSealed, res.Records[1].Parsed.ProductType)
	assert.Equal(t, domain.ProductRaw, res.Records[2].Parsed.ProductType)
}

func TestParseBatch_DefaultConcurrency(t *testing.T) {
	t.Parallel()

	c := parse.NewClassifier(testCatalog(t))

	listings := []domain.RawListing{
		{SourceID: "a", Title: "op01-121 monkey d luffy"},
	}

	res, err := parse.ParseBatch(context.Background(), c, listings, 0)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Zero(t, res.Skipped)
}

func TestParseBatch_Empty(t *testing.T) {
	t.Parallel()

	c := parse.NewClassifier(testCatalog(t))

	res, err := parse.ParseBatch(context.Background(), c, nil, 4)
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.Zero(t, res.Skipped)
}

func TestParseBatch_Cancelled(t *testing.T) {
	t.Parallel()

	c := parse.NewClassifier(testCatalog(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	listings := []domain.RawListing{
		{SourceID: "a", Title: "op01-121 monkey d luffy"},
	}

	_, err := parse.ParseBatch(ctx, c, listings, 1)
	require.ErrorIs(t, err, context.Canceled)
}
