package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CatalogCards returns a stat panel showing the number of cards in the active
// catalog snapshot.
func CatalogCards() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Catalog Cards").
		Description("Cards in the active catalog snapshot").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`tcgpt_catalog_cards{job="tcg-price-tracker"}`, "", "A")).
		Thresholds(ThresholdsRedGreen(1)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}

// CatalogReloads returns a timeseries panel showing catalog reloads over the
// last 24 hours.
func CatalogReloads() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Catalog Reloads (24h)").
		Description("Catalog reloads over the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`increase(tcgpt_catalog_reloads_total{job="tcg-price-tracker"}[24h])`,
			"reloads", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
