package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tcgtrack/tcg-price-tracker/pkg/catalog"
	"github.com/tcgtrack/tcg-price-tracker/pkg/parse"
	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

// ParseHandler classifies ad-hoc listing titles against the current catalog
// snapshot.
type ParseHandler struct {
	catalog *catalog.Provider
}

// NewParseHandler creates a new ParseHandler.
func NewParseHandler(p *catalog.Provider) *ParseHandler {
	return &ParseHandler{catalog: p}
}

// ParseInput is the request body for the parse endpoint.
type ParseInput struct {
	Body struct {
		Title string `json:"title" minLength:"1" doc:"Listing title to classify" example:"PSA 10 One Piece OP01-121 Monkey D. Luffy SEC Romance Dawn"`
	}
}

// ParseOutput is the response body for the parse endpoint.
type ParseOutput struct {
	Body domain.ParsedListing
}

// Parse classifies one listing title and returns the structured result,
// including any diagnostics accumulated along the way.
func (h *ParseHandler) Parse(
	_ context.Context,
	input *ParseInput,
) (*ParseOutput, error) {
	classifier := parse.NewClassifier(h.catalog.Snapshot())

	parsed, err := classifier.Classify(&domain.RawListing{Title: input.Body.Title})
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("unparseable title: " + err.Error())
	}

	return &ParseOutput{Body: *parsed}, nil
}

// RegisterParseRoutes registers parse endpoints with the Huma API.
func RegisterParseRoutes(api huma.API, h *ParseHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "parse-title",
		Method:      http.MethodPost,
		Path:        "/api/v1/parse",
		Summary:     "Classify a listing title",
		Description: "Classifies a single listing title into a product type and " +
			"resolves set, card, grading, and sealed-product details.",
		Tags:   []string{"parse"},
		Errors: []int{http.StatusUnprocessableEntity},
	}, h.Parse)
}
