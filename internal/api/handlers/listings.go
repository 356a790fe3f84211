package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tcgtrack/tcg-price-tracker/internal/store"
	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

// ListingsHandler handles listing query endpoints.
type ListingsHandler struct {
	store store.Store
}

// NewListingsHandler creates a new ListingsHandler.
func NewListingsHandler(s store.Store) *ListingsHandler {
	return &ListingsHandler{store: s}
}

// --- Input/Output types ---

// ListListingsInput is the input for listing listings with optional filters.
type ListListingsInput struct {
	ProductType    string    `query:"product_type"    doc:"Filter by product type"         enum:"raw,graded,sealed,unknown,"`
	SetCode        string    `query:"set_code"        doc:"Filter by canonical set code"`
	CardNumber     string    `query:"card_number"     doc:"Filter by canonical card number"`
	GradingCompany string    `query:"grading_company" doc:"Filter by grading company"`
	Confidence     string    `query:"confidence"      doc:"Filter by parse confidence"     enum:"high,medium,low,"`
	MinPrice       float64   `query:"min_price"       doc:"Minimum sale price"             minimum:"0"`
	MaxPrice       float64   `query:"max_price"       doc:"Maximum sale price"             minimum:"0"`
	SoldAfter      time.Time `query:"sold_after"      doc:"Only listings sold after this time (RFC 3339)"`
	Limit          int       `query:"limit"           doc:"Number of results (default 50)" minimum:"1" maximum:"500"`
	Offset         int       `query:"offset"          doc:"Pagination offset"              minimum:"0"`
	OrderBy        string    `query:"order_by"        doc:"Sort field"                     enum:"sold_at,price,first_seen_at,"`
}

// ListListingsOutput is the response for listing listings.
type ListListingsOutput struct {
	Body struct {
		Listings []domain.Listing `json:"listings"`
		Total    int              `json:"total"`
		Limit    int              `json:"limit"`
		Offset   int              `json:"offset"`
	}
}

// GetListingInput is the input for getting a single listing.
type GetListingInput struct {
	ID string `path:"id" doc:"Listing UUID"`
}

// GetListingOutput is the response for getting a single listing.
type GetListingOutput struct {
	Body domain.Listing
}

// --- Handlers ---

// ListListings returns listings with optional parse-result and price filters.
func (h *ListingsHandler) ListListings(
	ctx context.Context,
	input *ListListingsInput,
) (*ListListingsOutput, error) {
	q := &store.ListingQuery{
		Offset:  input.Offset,
		OrderBy: input.OrderBy,
	}

	if input.ProductType != "" {
		q.ProductType = &input.ProductType
	}
	if input.SetCode != "" {
		q.SetCode = &input.SetCode
	}
	if input.CardNumber != "" {
		q.CardNumber = &input.CardNumber
	}
	if input.GradingCompany != "" {
		q.GradingCompany = &input.GradingCompany
	}
	if input.Confidence != "" {
		q.Confidence = &input.Confidence
	}
	if input.MinPrice != 0 {
		q.MinPrice = &input.MinPrice
	}
	if input.MaxPrice != 0 {
		q.MaxPrice = &input.MaxPrice
	}
	if !input.SoldAfter.IsZero() {
		q.SoldAfter = &input.SoldAfter
	}
	if input.Limit != 0 {
		q.Limit = input.Limit
	}

	listings, total, err := h.store.ListListings(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing query failed: " + err.Error())
	}
	if listings == nil {
		listings = []domain.Listing{}
	}

	resp := &ListListingsOutput{}
	resp.Body.Listings = listings
	resp.Body.Total = total
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset

	return resp, nil
}

// GetListing returns a single listing by ID.
func (h *ListingsHandler) GetListing(
	ctx context.Context,
	input *GetListingInput,
) (*GetListingOutput, error) {
	listing, err := h.store.GetListingByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("listing not found")
		}
		return nil, huma.Error500InternalServerError("fetching listing failed: " + err.Error())
	}

	return &GetListingOutput{Body: *listing}, nil
}

// RegisterListingRoutes registers listing endpoints with the Huma API.
func RegisterListingRoutes(api huma.API, h *ListingsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-listings",
		Method:      http.MethodGet,
		Path:        "/api/v1/listings",
		Summary:     "List listings",
		Description: "Returns sold listings with optional filters on parse result, price, and sale time.",
		Tags:        []string{"listings"},
	}, h.ListListings)

	huma.Register(api, huma.Operation{
		OperationID: "get-listing",
		Method:      http.MethodGet,
		Path:        "/api/v1/listings/{id}",
		Summary:     "Get a listing by ID",
		Description: "Returns a single listing by its UUID.",
		Tags:        []string{"listings"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetListing)
}
