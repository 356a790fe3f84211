package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tcgtrack/tcg-price-tracker/internal/api/handlers"
	storeMocks "github.com/tcgtrack/tcg-price-tracker/internal/store/mocks"
	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

func TestStatsHandler_ParseStats(t *testing.T) {
	t.Parallel()

	t.Run("returns aggregated stats", func(t *testing.T) {
		t.Parallel()

		ms := &storeMocks.Store{}
		ms.On("GetParseStats", mock.Anything).
			Return(&domain.ParseStats{
				Total:         10,
				ByProductType: map[string]int{"graded": 4, "raw": 5, "unknown": 1},
				ByConfidence:  map[string]int{"high": 7, "medium": 2, "low": 1},
				WithDiags:     3,
			}, nil).
			Once()

		_, api := humatest.New(t)
		handlers.RegisterStatsRoutes(api, handlers.NewStatsHandler(ms))

		resp := api.Get("/api/v1/stats/parse")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"total":10`)
		assert.Contains(t, resp.Body.String(), `"graded":4`)
		assert.Contains(t, resp.Body.String(), `"with_diagnostics":3`)
		ms.AssertExpectations(t)
	})

	t.Run("store error returns 500", func(t *testing.T) {
		t.Parallel()

		ms := &storeMocks.Store{}
		ms.On("GetParseStats", mock.Anything).
			Return(nil, assert.AnError).
			Once()

		_, api := humatest.New(t)
		handlers.RegisterStatsRoutes(api, handlers.NewStatsHandler(ms))

		resp := api.Get("/api/v1/stats/parse")
		require.Equal(t, http.StatusInternalServerError, resp.Code)
	})
}
