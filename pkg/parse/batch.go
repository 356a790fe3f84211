package parse

import (
	"context"

	"golang.org/x/sync/errgroup"

	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

const defaultBatchConcurrency = 4

// ParsedRecord pairs a raw listing with its parse result.
type ParsedRecord struct {
	Raw    domain.RawListing
	Parsed domain.ParsedListing
}

// BatchResult is the outcome of parsing a batch of raw listings.
type BatchResult struct {
	Records []ParsedRecord
	Skipped int // malformed records dropped (empty title)
}

// ParseBatch classifies a batch of raw listings concurrently. Each parse is
// independent and every worker shares the classifier's read-only catalog
// snapshot, so no coordination is needed beyond the work split.
//
// A malformed record is counted and skipped, never failing the batch; the
// only error returned is context cancellation. Result order follows input
// order regardless of scheduling.
func ParseBatch(
	ctx context.Context,
	c *Classifier,
	listings []domain.RawListing,
	concurrency int,
) (BatchResult, error) {
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}

	parsed := make([]*domain.ParsedListing, len(listings))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range listings {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := c.Classify(&listings[i])
			if err != nil {
				// MalformedInput: skip this record, keep the batch going.
				return nil
			}
			parsed[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return BatchResult{}, err
	}

	res := BatchResult{Records: make([]ParsedRecord, 0, len(listings))}
	for i, p := range parsed {
		if p == nil {
			res.Skipped++
			continue
		}
		res.Records = append(res.Records, ParsedRecord{Raw: listings[i], Parsed: *p})
	}

	return res, nil
}
