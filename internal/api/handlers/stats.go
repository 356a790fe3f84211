package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

// StatsProvider defines the store methods required by the stats handler.
type StatsProvider interface {
	GetParseStats(ctx context.Context) (*domain.ParseStats, error)
}

// StatsHandler handles parse-quality statistics requests.
type StatsHandler struct {
	store StatsProvider
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(s StatsProvider) *StatsHandler {
	return &StatsHandler{store: s}
}

// ParseStatsOutput is the response for parse statistics.
type ParseStatsOutput struct {
	Body domain.ParseStats
}

// ParseStats returns aggregate parse outcomes across stored listings.
func (h *StatsHandler) ParseStats(
	ctx context.Context,
	_ *struct{},
) (*ParseStatsOutput, error) {
	stats, err := h.store.GetParseStats(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("fetching parse stats failed: " + err.Error())
	}

	return &ParseStatsOutput{Body: *stats}, nil
}

// RegisterStatsRoutes registers stats endpoints with the Huma API.
func RegisterStatsRoutes(api huma.API, h *StatsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "parse-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats/parse",
		Summary:     "Get parse statistics",
		Description: "Returns listing counts by product type and confidence, " +
			"plus the number of listings carrying diagnostics.",
		Tags:   []string{"stats"},
		Errors: []int{http.StatusInternalServerError},
	}, h.ParseStats)
}
