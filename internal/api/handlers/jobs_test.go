package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tcgtrack/tcg-price-tracker/internal/api/handlers"
	storeMocks "github.com/tcgtrack/tcg-price-tracker/internal/store/mocks"
	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

func TestJobsHandler_GetJobHistory(t *testing.T) {
	t.Parallel()

	t.Run("returns run history", func(t *testing.T) {
		t.Parallel()

		ms := &storeMocks.Store{}
		ms.On("ListJobRuns", mock.Anything, "ingestion", 20).
			Return([]domain.JobRun{
				{
					ID:        "run-1",
					JobName:   "ingestion",
					StartedAt: time.Now(),
					Status:    "success",
				},
			}, nil).
			Once()

		_, api := humatest.New(t)
		handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(ms))

		resp := api.Get("/api/v1/jobs/ingestion")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"job_name":"ingestion"`)
		ms.AssertExpectations(t)
	})

	t.Run("no runs yields empty array", func(t *testing.T) {
		t.Parallel()

		ms := &storeMocks.Store{}
		ms.On("ListJobRuns", mock.Anything, "reparse", 20).
			Return(nil, nil).
			Once()

		_, api := humatest.New(t)
		handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(ms))

		resp := api.Get("/api/v1/jobs/reparse")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, "[]", resp.Body.String())
	})

	t.Run("explicit limit is passed through", func(t *testing.T) {
		t.Parallel()

		ms := &storeMocks.Store{}
		ms.On("ListJobRuns", mock.Anything, "ingestion", 5).
			Return([]domain.JobRun{}, nil).
			Once()

		_, api := humatest.New(t)
		handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(ms))

		resp := api.Get("/api/v1/jobs/ingestion?limit=5")
		require.Equal(t, http.StatusOK, resp.Code)
		ms.AssertExpectations(t)
	})

	t.Run("limit above maximum is rejected", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(&storeMocks.Store{}))

		resp := api.Get("/api/v1/jobs/ingestion?limit=500")
		require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("store error returns 500", func(t *testing.T) {
		t.Parallel()

		ms := &storeMocks.Store{}
		ms.On("ListJobRuns", mock.Anything, "ingestion", 20).
			Return(nil, assert.AnError).
			Once()

		_, api := humatest.New(t)
		handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(ms))

		resp := api.Get("/api/v1/jobs/ingestion")
		require.Equal(t, http.StatusInternalServerError, resp.Code)
	})
}
