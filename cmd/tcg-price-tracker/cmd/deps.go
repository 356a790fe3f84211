package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tcgtrack/tcg-price-tracker/internal/config"
	"github.com/tcgtrack/tcg-price-tracker/internal/ebay"
	"github.com/tcgtrack/tcg-price-tracker/internal/engine"
	"github.com/tcgtrack/tcg-price-tracker/internal/metrics"
	"github.com/tcgtrack/tcg-price-tracker/internal/notify"
	"github.com/tcgtrack/tcg-price-tracker/internal/store"
	"github.com/tcgtrack/tcg-price-tracker/pkg/catalog"
	"github.com/tcgtrack/tcg-price-tracker/pkg/logger"
)

// loadConfig reads the config file and builds the logger from it.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, logger.New(cfg.Logging.Level, cfg.Logging.Format), nil
}

func openStore(ctx context.Context, cfg *config.Config) (*store.PostgresStore, error) {
	s, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return s, nil
}

// buildProvider loads the catalog from the configured path, or the embedded
// one when no path is set.
func buildProvider(cfg *config.Config) (*catalog.Provider, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	if cfg.Parser.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.Parser.CatalogPath)
	} else {
		cat, err = catalog.LoadEmbedded()
	}
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	metrics.CatalogCards.Set(float64(cat.NumCards()))
	return catalog.NewProvider(cat), nil
}

func buildEbayClient(cfg *config.Config, log *slog.Logger) ebay.Client {
	rl := ebay.NewRateLimiter(
		cfg.Ebay.RateLimit.PerSecond,
		cfg.Ebay.RateLimit.Burst,
		cfg.Ebay.RateLimit.DailyLimit,
	)

	return ebay.NewFindingClient(cfg.Ebay.AppID,
		ebay.WithFindingURL(cfg.Ebay.FindingURL),
		ebay.WithGlobalID(cfg.Ebay.GlobalID),
		ebay.WithEntriesPerPage(cfg.Ebay.EntriesPerPage),
		ebay.WithRateLimiter(rl),
		ebay.WithLogger(log),
	)
}

func buildNotifier(cfg *config.Config, log *slog.Logger) notify.Notifier {
	if cfg.Notify.DiscordWebhookURL != "" {
		return notify.NewDiscordNotifier(cfg.Notify.DiscordWebhookURL)
	}
	return notify.NewNoOpNotifier(log)
}

func buildEngine(
	s store.Store,
	cfg *config.Config,
	prov *catalog.Provider,
	log *slog.Logger,
) *engine.Engine {
	return engine.NewEngine(s, buildEbayClient(cfg, log), prov,
		engine.WithNotifier(buildNotifier(cfg, log)),
		engine.WithQueries(cfg.Ebay.Queries),
		engine.WithMaxPages(cfg.Ebay.MaxPages),
		engine.WithConcurrency(cfg.Parser.Concurrency),
		engine.WithStaggerOffset(cfg.Schedule.StaggerOffset),
		engine.WithCatalogPath(cfg.Parser.CatalogPath),
		engine.WithLogger(log),
	)
}
