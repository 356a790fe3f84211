package ebay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tcgtrack/tcg-price-tracker/internal/metrics"
	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

const (
	defaultFindingURL     = "https://svcs.ebay.com/services/search/FindingService/v1"
	defaultGlobalID       = "EBAY-US"
	defaultEntriesPerPage = 100

	findingServiceVersion = "1.13.0"
	operationName         = "findCompletedItems"
)

// FindingClient implements Client using the eBay Finding API. The Finding
// API authenticates with the application ID alone; no OAuth flow is needed.
type FindingClient struct {
	appID       string
	findingURL  string
	globalID    string
	entries     int
	client      *http.Client
	rateLimiter *RateLimiter
	log         *slog.Logger
}

// FindingOption configures the FindingClient.
type FindingOption func(*FindingClient)

// WithFindingURL overrides the default Finding API endpoint.
func WithFindingURL(u string) FindingOption {
	return func(c *FindingClient) {
		c.findingURL = u
	}
}

// WithGlobalID overrides the default marketplace global ID.
func WithGlobalID(id string) FindingOption {
	return func(c *FindingClient) {
		c.globalID = id
	}
}

// WithEntriesPerPage overrides the default page size.
func WithEntriesPerPage(n int) FindingOption {
	return func(c *FindingClient) {
		c.entries = n
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) FindingOption {
	return func(c *FindingClient) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter that controls per-second and daily
// API call limits. When set, every search goes through Wait() first.
func WithRateLimiter(r *RateLimiter) FindingOption {
	return func(c *FindingClient) {
		c.rateLimiter = r
	}
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) FindingOption {
	return func(c *FindingClient) {
		c.log = l
	}
}

// NewFindingClient creates a sold-listings client authenticated by appID.
func NewFindingClient(appID string, opts ...FindingOption) *FindingClient {
	c := &FindingClient{
		appID:      appID,
		findingURL: defaultFindingURL,
		globalID:   defaultGlobalID,
		entries:    defaultEntriesPerPage,
		client:     &http.Client{Timeout: 30 * time.Second},
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchSold implements Client.SearchSold with a findCompletedItems call
// filtered to sold items.
func (c *FindingClient) SearchSold(
	ctx context.Context,
	req SearchRequest,
) (*SearchResponse, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.EbayDailyLimitHits.Inc()
			}
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		metrics.EbayAPICallsTotal.Inc()
		metrics.EbayDailyUsage.Set(float64(c.rateLimiter.DailyCount()))
	}

	u := c.buildSearchURL(req)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"eBay API error (status %d): %s",
			resp.StatusCode,
			string(body),
		)
	}

	return c.parseResponse(body, req.Page)
}

// SearchAllSold implements Client.SearchAllSold, paginating until the last
// page or maxPages, whichever comes first.
func (c *FindingClient) SearchAllSold(
	ctx context.Context,
	query string,
	maxPages int,
) ([]domain.RawListing, error) {
	if maxPages <= 0 {
		maxPages = 1
	}

	var all []domain.RawListing
	for page := 1; page <= maxPages; page++ {
		resp, err := c.SearchSold(ctx, SearchRequest{Query: query, Page: page})
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}

		all = append(all, resp.Listings...)
		c.log.Debug("fetched sold listings page",
			"query", query,
			"page", page,
			"total_pages", resp.TotalPages,
			"items", len(resp.Listings),
			"skipped", resp.Skipped,
		)

		if page >= resp.TotalPages {
			break
		}
	}
	return all, nil
}

func (c *FindingClient) buildSearchURL(req SearchRequest) string {
	entries := req.EntriesPerPage
	if entries <= 0 {
		entries = c.entries
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}

	params := url.Values{}
	params.Set("OPERATION-NAME", operationName)
	params.Set("SERVICE-VERSION", findingServiceVersion)
	params.Set("SECURITY-APPNAME", c.appID)
	params.Set("RESPONSE-DATA-FORMAT", "JSON")
	params.Set("REST-PAYLOAD", "")
	params.Set("GLOBAL-ID", c.globalID)
	params.Set("keywords", req.Query)
	params.Set("itemFilter(0).name", "SoldItemsOnly")
	params.Set("itemFilter(0).value", "true")
	params.Set("sortOrder", "EndTimeSoonest")
	params.Set("paginationInput.entriesPerPage", strconv.Itoa(entries))
	params.Set("paginationInput.pageNumber", strconv.Itoa(page))

	return c.findingURL + "?" + params.Encode()
}

func (c *FindingClient) parseResponse(body []byte, page int) (*SearchResponse, error) {
	var apiResp findCompletedItemsResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}
	if len(apiResp.Body) == 0 {
		return nil, fmt.Errorf("empty findCompletedItems response")
	}
	rb := &apiResp.Body[0]

	if ack := first(rb.Ack); ack != "Success" && ack != "Warning" {
		return nil, fmt.Errorf("eBay API error: %s", apiErrorMessage(rb))
	}

	resp := &SearchResponse{Page: page}
	if len(rb.SearchResult) > 0 {
		resp.Listings, resp.Skipped = ToRawListings(rb.SearchResult[0].Items)
	}
	if len(rb.PaginationOutput) > 0 {
		po := &rb.PaginationOutput[0]
		resp.TotalPages, _ = strconv.Atoi(first(po.TotalPages))
		resp.TotalEntries, _ = strconv.Atoi(first(po.TotalEntries))
	}
	return resp, nil
}

func apiErrorMessage(rb *findingResponseBody) string {
	if len(rb.ErrorMessage) > 0 && len(rb.ErrorMessage[0].Error) > 0 {
		if msg := first(rb.ErrorMessage[0].Error[0].Message); msg != "" {
			return msg
		}
	}
	return "unknown error"
}
