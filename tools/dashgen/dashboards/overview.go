// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/tcgtrack/tcg-price-tracker/tools/dashgen/panels"
)

// BuildOverview constructs the TCG Price Tracker Overview dashboard with all
// metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("TCG Price Tracker Overview").
		Uid("tcgpt-overview").
		Tags([]string{"tcgpt", "tcg-price-tracker"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.QuotaGauge()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: eBay API.
	b.WithRow(dashboard.NewRowBuilder("eBay API").
		WithPanel(panels.APICallsRate()).
		WithPanel(panels.DailyUsage()).
		WithPanel(panels.LimitHits()))

	// Row 4: Ingestion.
	b.WithRow(dashboard.NewRowBuilder("Ingestion").
		WithPanel(panels.ListingsRate()).
		WithPanel(panels.IngestionErrors()).
		WithPanel(panels.CycleDuration()))

	// Row 5: Parsing.
	b.WithRow(dashboard.NewRowBuilder("Parsing").
		WithPanel(panels.ParseOutcomes()).
		WithPanel(panels.ParseBatchDuration()).
		WithPanel(panels.ParseSkipped()))

	// Row 6: Catalog.
	b.WithRow(dashboard.NewRowBuilder("Catalog").
		WithPanel(panels.CatalogCards()).
		WithPanel(panels.CatalogReloads()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
