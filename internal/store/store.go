// Package store defines the datastore abstraction for tcg-price-tracker.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running database.
package store

import (
	"context"
	"errors"
	"time"

	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ListingQuery defines optional filters for listing queries.
type ListingQuery struct {
	ProductType    *string
	SetCode        *string
	CardNumber     *string
	GradingCompany *string
	Confidence     *string
	MinPrice       *float64
	MaxPrice       *float64
	SoldAfter      *time.Time
	Limit          int // default 50
	Offset         int
	OrderBy        string // "sold_at", "price", "first_seen_at"
}

// Store defines all data access operations for tcg-price-tracker.
type Store interface {
	// Listings
	UpsertListing(ctx context.Context, l *domain.Listing) error
	GetListing(ctx context.Context, sourceID string) (*domain.Listing, error)
	GetListingByID(ctx context.Context, id string) (*domain.Listing, error)
	ListListings(ctx context.Context, opts *ListingQuery) ([]domain.Listing, int, error)
	// ListListingsPage pages through every stored listing in insertion order,
	// used by reparse runs.
	ListListingsPage(ctx context.Context, limit, offset int) ([]domain.Listing, error)
	CountListings(ctx context.Context) (int, error)
	GetParseStats(ctx context.Context) (*domain.ParseStats, error)

	// Scheduler
	InsertJobRun(ctx context.Context, jobName string) (id string, err error)
	CompleteJobRun(ctx context.Context, id string, status string, errText string, rowsAffected int) error
	ListJobRuns(ctx context.Context, jobName string, limit int) ([]domain.JobRun, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
