package ebay_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgtrack/tcg-price-tracker/internal/ebay"
)

const findingPage1 = `{
  "findCompletedItemsResponse": [{
    "ack": ["Success"],
    "searchResult": [{
      "@count": "2",
      "item": [
        {
          "itemId": ["1001"],
          "title": ["PSA 10 One Piece OP01-121 Monkey D. Luffy"],
          "viewItemURL": ["https://www.ebay.com/itm/1001"],
          "sellingStatus": [{"currentPrice": [{"@currencyId": "USD", "__value__": "149.99"}]}],
          "shippingInfo": [{"shippingServiceCost": [{"@currencyId": "USD", "__value__": "4.99"}]}],
          "listingInfo": [{"endTime": ["2024-01-15T14:30:00.000Z"]}]
        },
        {
          "itemId": ["1002"],
          "title": ["One Piece OP-01 Booster Box Sealed"],
          "viewItemURL": ["https://www.ebay.com/itm/1002"],
          "sellingStatus": [{"currentPrice": [{"@currencyId": "USD", "__value__": "89.00"}]}],
          "shippingInfo": [{"shippingType": ["Free"]}],
          "listingInfo": [{"endTime": ["2024-01-14T10:00:00.000Z"]}]
        }
      ]
    }],
    "paginationOutput": [{
      "pageNumber": ["1"],
      "totalPages": ["1"],
      "totalEntries": ["2"]
    }]
  }]
}`

const findingFailure = `{
  "findCompletedItemsResponse": [{
    "ack": ["Failure"],
    "errorMessage": [{"error": [{"errorId": ["1"], "message": ["Invalid app ID"]}]}]
  }]
}`

func TestFindingClient_SearchSold(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotQuery = r.URL.Query()
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(findingPage1))
	}))
	defer srv.Close()

	c := ebay.NewFindingClient("test-app-id", ebay.WithFindingURL(srv.URL))

	resp, err := c.SearchSold(context.Background(), ebay.SearchRequest{
		Query: "one piece card",
		Page:  1,
	})
	require.NoError(t, err)

	require.Len(t, resp.Listings, 2)
	assert.Zero(t, resp.Skipped)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Equal(t, 2, resp.TotalEntries)
	assert.Equal(t, "1001", resp.Listings[0].SourceID)
	assert.InDelta(t, 149.99, resp.Listings[0].Price, 0.001)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "findCompletedItems", gotQuery.Get("OPERATION-NAME"))
	assert.Equal(t, "test-app-id", gotQuery.Get("SECURITY-APPNAME"))
	assert.Equal(t, "JSON", gotQuery.Get("RESPONSE-DATA-FORMAT"))
	assert.Equal(t, "one piece card", gotQuery.Get("keywords"))
	assert.Equal(t, "SoldItemsOnly", gotQuery.Get("itemFilter(0).name"))
	assert.Equal(t, "true", gotQuery.Get("itemFilter(0).value"))
	assert.Equal(t, "1", gotQuery.Get("paginationInput.pageNumber"))
}

func TestFindingClient_APIFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(findingFailure))
	}))
	defer srv.Close()

	c := ebay.NewFindingClient("bad-app-id", ebay.WithFindingURL(srv.URL))

	_, err := c.SearchSold(context.Background(), ebay.SearchRequest{Query: "one piece"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid app ID")
}

func TestFindingClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := ebay.NewFindingClient("test-app-id", ebay.WithFindingURL(srv.URL))

	_, err := c.SearchSold(context.Background(), ebay.SearchRequest{Query: "one piece"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestFindingClient_SearchAllSold(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(findingPage1))
	}))
	defer srv.Close()

	c := ebay.NewFindingClient("test-app-id", ebay.WithFindingURL(srv.URL))

	// totalPages is 1, so pagination stops after the first page even with a
	// higher maxPages.
	listings, err := c.SearchAllSold(context.Background(), "one piece card", 5)
	require.NoError(t, err)
	assert.Len(t, listings, 2)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFindingClient_RateLimited(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(findingPage1))
	}))
	defer srv.Close()

	rl := ebay.NewRateLimiter(100, 10, 1)
	c := ebay.NewFindingClient("test-app-id",
		ebay.WithFindingURL(srv.URL),
		ebay.WithRateLimiter(rl),
	)

	_, err := c.SearchSold(context.Background(), ebay.SearchRequest{Query: "one piece"})
	require.NoError(t, err)

	_, err = c.SearchSold(context.Background(), ebay.SearchRequest{Query: "one piece"})
	require.ErrorIs(t, err, ebay.ErrDailyLimitReached)
}
