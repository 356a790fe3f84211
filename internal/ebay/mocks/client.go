// Package mocks provides a testify mock of the ebay.Client interface.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tcgtrack/tcg-price-tracker/internal/ebay"
	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

// Client is a mock implementation of ebay.Client.
type Client struct {
	mock.Mock
}

var _ ebay.Client = (*Client)(nil)

func (m *Client) SearchSold(
	ctx context.Context,
	req ebay.SearchRequest,
) (*ebay.SearchResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*ebay.SearchResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) SearchAllSold(
	ctx context.Context,
	query string,
	maxPages int,
) ([]domain.RawListing, error) {
	args := m.Called(ctx, query, maxPages)
	listings, _ := args.Get(0).([]domain.RawListing)
	return listings, args.Error(1)
}
