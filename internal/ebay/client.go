// Package ebay provides an eBay Finding API client for sold listings,
// abstracted behind an interface for testability.
package ebay

import (
	"context"

	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

// SearchRequest defines the parameters for a sold-listings search.
type SearchRequest struct {
	Query          string
	Page           int // 1-indexed
	EntriesPerPage int
}

// SearchResponse holds one page of sold listings.
type SearchResponse struct {
	Listings     []domain.RawListing
	Skipped      int // items dropped during conversion
	Page         int
	TotalPages   int
	TotalEntries int
}

// Client defines the interface for fetching sold listings.
type Client interface {
	// SearchSold fetches a single page of completed, sold items.
	SearchSold(ctx context.Context, req SearchRequest) (*SearchResponse, error)

	// SearchAllSold paginates through sold items up to maxPages.
	SearchAllSold(ctx context.Context, query string, maxPages int) ([]domain.RawListing, error)
}
