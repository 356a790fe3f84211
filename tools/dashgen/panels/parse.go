package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ParseOutcomes returns a timeseries panel breaking down parsed listings by
// product type and confidence.
func ParseOutcomes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Parse Outcomes").
		Description("Parsed listings per second by product type and confidence").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum(rate(tcgpt_parse_outcomes_total{job="tcg-price-tracker"}[5m])) by (product_type, confidence)`,
			"{{product_type}}/{{confidence}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ParseBatchDuration returns a timeseries panel showing p50 and p95 parse
// batch durations.
func ParseBatchDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Batch Duration").
		Description("Parse batch duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(tcgpt_parse_batch_duration_seconds_bucket{job="tcg-price-tracker"}[5m])) by (le))`,
			"p50",
			"A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(tcgpt_parse_batch_duration_seconds_bucket{job="tcg-price-tracker"}[5m])) by (le))`,
			"p95",
			"B",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ParseSkipped returns a timeseries panel showing the rate of malformed
// listings skipped by the parser.
func ParseSkipped() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Skipped Listings").
		Description("Malformed raw listings skipped per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`tcgpt:parse_skipped:rate5m`, "skipped/s", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.01, 0.1)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}
