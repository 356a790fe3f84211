package main

import "errors"

// KnownMetrics is the set of metric names exported by tcg-price-tracker
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"tcgpt_http_request_duration_seconds": true,
	"tcgpt_http_requests_total":           true,

	// Health metrics.
	"tcgpt_healthz_up": true,
	"tcgpt_readyz_up":  true,

	// Ingestion metrics.
	"tcgpt_ingestion_listings_total":   true,
	"tcgpt_ingestion_errors_total":     true,
	"tcgpt_ingestion_duration_seconds": true,

	// Parse metrics.
	"tcgpt_parse_outcomes_total":         true,
	"tcgpt_parse_skipped_total":          true,
	"tcgpt_parse_batch_duration_seconds": true,

	// Catalog metrics.
	"tcgpt_catalog_reloads_total": true,
	"tcgpt_catalog_cards":         true,

	// eBay API metrics.
	"tcgpt_ebay_api_calls_total":        true,
	"tcgpt_ebay_daily_usage":            true,
	"tcgpt_ebay_daily_limit_hits_total": true,

	// Recording rules.
	"tcgpt:http_requests:rate5m":      true,
	"tcgpt:http_errors:rate5m":        true,
	"tcgpt:ingestion_listings:rate5m": true,
	"tcgpt:ingestion_errors:rate5m":   true,
	"tcgpt:parse_skipped:rate5m":      true,
	"tcgpt:ebay_api_calls:rate5m":     true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
