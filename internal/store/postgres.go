package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
//
// TODO(test): PostgresStore methods require live Postgres, tested via integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// UpsertListing inserts or updates a listing by source_id. On conflict the
// raw fields and the parse result are refreshed; first_seen_at is preserved.
func (s *PostgresStore) UpsertListing(ctx context.Context, l *domain.Listing) error {
	args := pgx.NamedArgs{
		"source_id":       l.SourceID,
		"title":           l.Title,
		"source_url":      l.SourceURL,
		"price":           l.Price,
		"shipping_price":  l.ShippingPrice,
		"sold_at":         nullableTime(l.SoldAt),
		"product_type":    string(l.ProductType),
		"card_name":       l.CardName,
		"set_code":        l.SetCode,
		"card_number":     l.CardNumber,
		"grading_company": l.GradingCompany,
		"grade":           l.Grade,
		"sealed_type":     string(l.SealedType),
		"cleaned_title":   l.CleanedTitle,
		"confidence":      string(l.Confidence),
		"diagnostics":     l.Diagnostics,
	}

	return s.pool.QueryRow(ctx, queryUpsertListing, args).Scan(
		&l.ID, &l.FirstSeenAt, &l.UpdatedAt,
	)
}

// GetListing retrieves a listing by its source (eBay item) ID.
func (s *PostgresStore) GetListing(ctx context.Context, sourceID string) (*domain.Listing, error) {
	l := &domain.Listing{}
	if err := scanListing(s.pool.QueryRow(ctx, queryGetListingBySourceID, sourceID), l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("listing %s: %w", sourceID, ErrNotFound)
		}
		return nil, err
	}
	return l, nil
}

// GetListingByID retrieves a listing by its internal UUID.
func (s *PostgresStore) GetListingByID(ctx context.Context, id string) (*domain.Listing, error) {
	l := &domain.Listing{}
	if err := scanListing(s.pool.QueryRow(ctx, queryGetListingByID, id), l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("listing %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return l, nil
}

// ListListings queries listings with optional filters, returning results and
// total count.
func (s *PostgresStore) ListListings(
	ctx context.Context,
	opts *ListingQuery,
) ([]domain.Listing, int, error) {
	dataSQL, countSQL, args := opts.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting listings: %w", err)
	}

	listings, err := s.queryListings(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// ListListingsPage returns one page of listings in stable insertion order.
func (s *PostgresStore) ListListingsPage(
	ctx context.Context,
	limit, offset int,
) ([]domain.Listing, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	return s.queryListings(ctx, queryListListingsPage, limit, max(offset, 0))
}

// CountListings returns the total number of stored listings.
func (s *PostgresStore) CountListings(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, queryCountListings).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting listings: %w", err)
	}
	return n, nil
}

// GetParseStats aggregates parse outcomes across all stored listings.
func (s *PostgresStore) GetParseStats(ctx context.Context) (*domain.ParseStats, error) {
	stats := &domain.ParseStats{
		ByProductType: make(map[string]int),
		ByConfidence:  make(map[string]int),
	}

	byType, err := s.groupCounts(ctx, queryStatsByProductType)
	if err != nil {
		return nil, fmt.Errorf("stats by product type: %w", err)
	}
	stats.ByProductType = byType
	for _, n := range byType {
		stats.Total += n
	}

	byConf, err := s.groupCounts(ctx, queryStatsByConfidence)
	if err != nil {
		return nil, fmt.Errorf("stats by confidence: %w", err)
	}
	stats.ByConfidence = byConf

	if err := s.pool.QueryRow(ctx, queryStatsWithDiagnostics).Scan(&stats.WithDiags); err != nil {
		return nil, fmt.Errorf("stats with diagnostics: %w", err)
	}

	return stats, nil
}

// InsertJobRun records the start of a scheduled job and returns the run ID.
func (s *PostgresStore) InsertJobRun(ctx context.Context, jobName string) (string, error) {
	var id string
	if err := s.pool.QueryRow(ctx, queryInsertJobRun, jobName).Scan(&id); err != nil {
		return "", fmt.Errorf("inserting job run: %w", err)
	}
	return id, nil
}

// CompleteJobRun marks a job run finished with its status and row count.
func (s *PostgresStore) CompleteJobRun(
	ctx context.Context,
	id string,
	status string,
	errText string,
	rowsAffected int,
) error {
	if _, err := s.pool.Exec(ctx, queryCompleteJobRun, id, status, errText, rowsAffected); err != nil {
		return fmt.Errorf("completing job run: %w", err)
	}
	return nil
}

// ListJobRuns returns recent runs of the named job, newest first.
func (s *PostgresStore) ListJobRuns(
	ctx context.Context,
	jobName string,
	limit int,
) ([]domain.JobRun, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.pool.Query(ctx, queryListJobRuns, jobName, limit)
	if err != nil {
		return nil, fmt.Errorf("querying job runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.JobRun
	for rows.Next() {
		var r domain.JobRun
		if err := rows.Scan(
			&r.ID, &r.JobName, &r.StartedAt, &r.CompletedAt,
			&r.Status, &r.ErrorText, &r.RowsAffected,
		); err != nil {
			return nil, fmt.Errorf("scanning job run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating job runs: %w", err)
	}

	return runs, nil
}

func (s *PostgresStore) queryListings(
	ctx context.Context,
	sql string,
	args ...any,
) ([]domain.Listing, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := scanListing(rows, &l); err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating listings: %w", err)
	}

	return listings, nil
}

func (s *PostgresStore) groupCounts(ctx context.Context, sql string) (map[string]int, error) {
	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

// scannable covers pgx.Row and pgx.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanListing(row scannable, l *domain.Listing) error {
	var productType, sealedType, confidence string
	var soldAt *time.Time

	err := row.Scan(
		&l.ID, &l.SourceID, &l.Title, &l.SourceURL,
		&l.Price, &l.ShippingPrice, &soldAt,
		&productType, &l.CardName, &l.SetCode, &l.CardNumber,
		&l.GradingCompany, &l.Grade, &sealedType,
		&l.CleanedTitle, &confidence, &l.Diagnostics,
		&l.FirstSeenAt, &l.UpdatedAt,
	)
	if err != nil {
		return err
	}

	l.ProductType = domain.ProductType(productType)
	l.SealedType = domain.SealedType(sealedType)
	l.Confidence = domain.Confidence(confidence)
	if soldAt != nil {
		l.SoldAt = *soldAt
	}
	return nil
}

// nullableTime maps the zero time to SQL NULL.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
