// Package mocks provides a testify mock of the store.Store interface for
// unit tests that need no database.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tcgtrack/tcg-price-tracker/internal/store"
	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

// Store is a mock implementation of store.Store.
type Store struct {
	mock.Mock
}

var _ store.Store = (*Store)(nil)

func (m *Store) UpsertListing(ctx context.Context, l *domain.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *Store) GetListing(ctx context.Context, sourceID string) (*domain.Listing, error) {
	args := m.Called(ctx, sourceID)
	if l, ok := args.Get(0).(*domain.Listing); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) GetListingByID(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*domain.Listing); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) ListListings(
	ctx context.Context,
	opts *store.ListingQuery,
) ([]domain.Listing, int, error) {
	args := m.Called(ctx, opts)
	listings, _ := args.Get(0).([]domain.Listing)
	return listings, args.Int(1), args.Error(2)
}

func (m *Store) ListListingsPage(
	ctx context.Context,
	limit, offset int,
) ([]domain.Listing, error) {
	args := m.Called(ctx, limit, offset)
	listings, _ := args.Get(0).([]domain.Listing)
	return listings, args.Error(1)
}

func (m *Store) CountListings(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *Store) GetParseStats(ctx context.Context) (*domain.ParseStats, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*domain.ParseStats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) InsertJobRun(ctx context.Context, jobName string) (string, error) {
	args := m.Called(ctx, jobName)
	return args.String(0), args.Error(1)
}

func (m *Store) CompleteJobRun(
	ctx context.Context,
	id string,
	status string,
	errText string,
	rowsAffected int,
) error {
	args := m.Called(ctx, id, status, errText, rowsAffected)
	return args.Error(0)
}

func (m *Store) ListJobRuns(
	ctx context.Context,
	jobName string,
	limit int,
) ([]domain.JobRun, error) {
	args := m.Called(ctx, jobName, limit)
	runs, _ := args.Get(0).([]domain.JobRun)
	return runs, args.Error(1)
}

func (m *Store) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Store) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
