// Package engine orchestrates ingestion from eBay, title parsing, and
// persistence, plus the periodic catalog reload and reparse jobs.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tcgtrack/tcg-price-tracker/internal/ebay"
	"github.com/tcgtrack/tcg-price-tracker/internal/metrics"
	"github.com/tcgtrack/tcg-price-tracker/internal/notify"
	"github.com/tcgtrack/tcg-price-tracker/internal/store"
	"github.com/tcgtrack/tcg-price-tracker/pkg/catalog"
	"github.com/tcgtrack/tcg-price-tracker/pkg/parse"
	domain "github.com/tcgtrack/tcg-price-tracker/pkg/types"
)

const (
	defaultMaxPages      = 1
	defaultConcurrency   = 4
	defaultReparsePage   = 200
	defaultStaggerOffset = 30 * time.Second

	jobIngestion = "ingestion"
	jobReparse   = "reparse"

	jobStatusSuccess = "success"
	jobStatusError   = "error"
)

// Engine runs the ingestion and reparse pipelines against injected
// collaborators.
type Engine struct {
	store    store.Store
	ebay     ebay.Client
	catalog  *catalog.Provider
	notifier notify.Notifier
	log      *slog.Logger

	queries       []string
	maxPages      int
	concurrency   int
	catalogPath   string
	staggerOffset time.Duration
	reparsePage   int
}

// NewEngine creates an Engine with injected dependencies.
func NewEngine(
	s store.Store,
	e ebay.Client,
	p *catalog.Provider,
	opts ...Option,
) *Engine {
	eng := &Engine{
		store:         s,
		ebay:          e,
		catalog:       p,
		log:           slog.Default(),
		maxPages:      defaultMaxPages,
		concurrency:   defaultConcurrency,
		staggerOffset: defaultStaggerOffset,
		reparsePage:   defaultReparsePage,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.notifier == nil {
		eng.notifier = notify.NewNoOpNotifier(eng.log)
	}
	return eng
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithQueries sets the search queries ingested each cycle.
func WithQueries(queries []string) Option {
	return func(e *Engine) {
		e.queries = queries
	}
}

// WithMaxPages sets the maximum result pages fetched per query.
func WithMaxPages(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxPages = n
		}
	}
}

// WithConcurrency sets the parse worker count.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithStaggerOffset sets the delay between queries within one cycle.
func WithStaggerOffset(d time.Duration) Option {
	return func(e *Engine) {
		e.staggerOffset = d
	}
}

// WithNotifier sets the job-outcome notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithCatalogPath points catalog reloads at a YAML file on disk instead of
// the embedded catalog.
func WithCatalogPath(path string) Option {
	return func(e *Engine) {
		e.catalogPath = path
	}
}

// RunIngestion fetches sold listings for every configured query, parses the
// titles, and upserts the results. A failing query is logged and skipped;
// hitting the daily API limit ends the cycle early without error.
func (eng *Engine) RunIngestion(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.IngestionDuration.Observe(time.Since(start).Seconds())
	}()

	runID := eng.startJobRun(ctx, jobIngestion)

	// One snapshot for the whole cycle so every query parses against the
	// same catalog.
	classifier := parse.NewClassifier(eng.catalog.Snapshot())

	var stored, skipped int
	var errs []error

	for i, query := range eng.queries {
		if err := ctx.Err(); err != nil {
			eng.completeJobRun(ctx, jobIngestion, runID, err, stored)
			return err
		}

		eng.log.Info("ingesting query", "query", query)

		n, s, err := eng.ingestQuery(ctx, classifier, query)
		stored += n
		skipped += s

		if err != nil {
			if errors.Is(err, ebay.ErrDailyLimitReached) {
				eng.log.Warn("daily API limit reached, stopping cycle",
					"query", query,
					"stored", stored,
				)
				break
			}
			eng.log.Error("query ingestion failed", "query", query, "error", err)
			metrics.IngestionErrorsTotal.Inc()
			errs = append(errs, fmt.Errorf("query %q: %w", query, err))
			continue
		}

		// Stagger between queries to avoid API bursts.
		if i < len(eng.queries)-1 && eng.staggerOffset > 0 {
			select {
			case <-ctx.Done():
				eng.completeJobRun(ctx, jobIngestion, runID, ctx.Err(), stored)
				return ctx.Err()
			case <-time.After(eng.staggerOffset):
			}
		}
	}

	eng.log.Info("ingestion cycle complete",
		"queries", len(eng.queries),
		"stored", stored,
		"skipped", skipped,
	)

	err := errors.Join(errs...)
	eng.completeJobRun(ctx, jobIngestion, runID, err, stored)
	return err
}

func (eng *Engine) ingestQuery(
	ctx context.Context,
	classifier *parse.Classifier,
	query string,
) (stored, skipped int, err error) {
	raws, err := eng.ebay.SearchAllSold(ctx, query, eng.maxPages)
	if err != nil {
		return 0, 0, fmt.Errorf("searching sold listings: %w", err)
	}

	batchStart := time.Now()
	batch, err := parse.ParseBatch(ctx, classifier, raws, eng.concurrency)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing batch: %w", err)
	}
	metrics.ParseBatchDuration.Observe(time.Since(batchStart).Seconds())
	metrics.ParseSkippedTotal.Add(float64(batch.Skipped))

	for i := range batch.Records {
		rec := &batch.Records[i]
		metrics.ParseOutcomesTotal.WithLabelValues(
			string(rec.Parsed.ProductType),
			string(rec.Parsed.Confidence),
		).Inc()

		listing := domain.NewListing(&rec.Raw, &rec.Parsed)
		if upsertErr := eng.store.UpsertListing(ctx, listing); upsertErr != nil {
			eng.log.Error("upsert failed",
				"source_id", listing.SourceID,
				"error", upsertErr,
			)
			metrics.IngestionErrorsTotal.Inc()
			continue
		}
		metrics.IngestionListingsTotal.Inc()
		stored++
	}

	return stored, batch.Skipped, nil
}

// RunReparse re-classifies every stored listing against the current catalog
// snapshot. Listings parsed before a catalog update pick up newly added sets
// and cards this way.
func (eng *Engine) RunReparse(ctx context.Context) error {
	runID := eng.startJobRun(ctx, jobReparse)

	classifier := parse.NewClassifier(eng.catalog.Snapshot())

	var updated int
	for offset := 0; ; offset += eng.reparsePage {
		if err := ctx.Err(); err != nil {
			eng.completeJobRun(ctx, jobReparse, runID, err, updated)
			return err
		}

		page, err := eng.store.ListListingsPage(ctx, eng.reparsePage, offset)
		if err != nil {
			err = fmt.Errorf("listing page at offset %d: %w", offset, err)
			eng.completeJobRun(ctx, jobReparse, runID, err, updated)
			return err
		}
		if len(page) == 0 {
			break
		}

		for i := range page {
			if eng.reparseListing(ctx, classifier, &page[i]) {
				updated++
			}
		}

		if len(page) < eng.reparsePage {
			break
		}
	}

	eng.log.Info("reparse complete", "updated", updated)
	eng.completeJobRun(ctx, jobReparse, runID, nil, updated)
	return nil
}

func (eng *Engine) reparseListing(
	ctx context.Context,
	classifier *parse.Classifier,
	l *domain.Listing,
) bool {
	raw := domain.RawListing{
		Title:         l.Title,
		Price:         l.Price,
		ShippingPrice: l.ShippingPrice,
		SoldAt:        l.SoldAt,
		SourceID:      l.SourceID,
		SourceURL:     l.SourceURL,
	}

	parsed, err := classifier.Classify(&raw)
	if err != nil {
		eng.log.Warn("reparse skipped", "source_id", l.SourceID, "error", err)
		return false
	}

	if err := eng.store.UpsertListing(ctx, domain.NewListing(&raw, parsed)); err != nil {
		eng.log.Error("reparse upsert failed", "source_id", l.SourceID, "error", err)
		return false
	}
	return true
}

// ReloadCatalog builds a fresh catalog and swaps it in atomically. Parses in
// flight keep their snapshot; later parses see the new catalog.
func (eng *Engine) ReloadCatalog() error {
	var (
		cat *catalog.Catalog
		err error
	)
	if eng.catalogPath != "" {
		cat, err = catalog.LoadFile(eng.catalogPath)
	} else {
		cat, err = catalog.LoadEmbedded()
	}
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	eng.catalog.Replace(cat)
	metrics.CatalogReloadsTotal.Inc()
	metrics.CatalogCards.Set(float64(cat.NumCards()))

	eng.log.Info("catalog reloaded",
		"sets", cat.NumSets(),
		"cards", cat.NumCards(),
	)
	return nil
}

// startJobRun records the start of a job. Bookkeeping failures never block
// the job itself.
func (eng *Engine) startJobRun(ctx context.Context, name string) string {
	id, err := eng.store.InsertJobRun(ctx, name)
	if err != nil {
		eng.log.Warn("recording job run failed", "job", name, "error", err)
		return ""
	}
	return id
}

func (eng *Engine) completeJobRun(
	ctx context.Context,
	name string,
	id string,
	runErr error,
	rows int,
) {
	status, errText := jobStatusSuccess, ""
	if runErr != nil {
		status, errText = jobStatusError, runErr.Error()
	}

	// The run row should still be closed out when the job was cancelled.
	ctx = context.WithoutCancel(ctx)

	if id != "" {
		if err := eng.store.CompleteJobRun(ctx, id, status, errText, rows); err != nil {
			eng.log.Warn("completing job run failed", "id", id, "error", err)
		}
	}

	// Successful runs are routine; only failures are worth a notification.
	if runErr == nil {
		return
	}
	ev := notify.JobEvent{JobName: name, Status: status, Error: errText, Rows: rows}
	if err := eng.notifier.NotifyJob(ctx, ev); err != nil {
		eng.log.Warn("job notification failed", "job", name, "error", err)
	}
}
