// Package validate checks generated dashboards for malformed PromQL and
// references to metrics the application does not export.
package validate

import (
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	promsdk "github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/prometheus/prometheus/promql/parser"
)

// Result collects validation errors and warnings.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

// Dashboard validates every Prometheus query in the dashboard: each
// expression must parse as PromQL and every metric it selects must be listed
// in knownMetrics. Non-Prometheus targets produce a warning.
func Dashboard(dash dashboard.Dashboard, knownMetrics map[string]bool) Result {
	var result Result

	for _, p := range dash.Panels {
		switch {
		case p.RowPanel != nil:
			for i := range p.RowPanel.Panels {
				validatePanel(&p.RowPanel.Panels[i], knownMetrics, &result)
			}
		case p.Panel != nil:
			validatePanel(p.Panel, knownMetrics, &result)
		}
	}

	return result
}

func validatePanel(p *dashboard.Panel, knownMetrics map[string]bool, result *Result) {
	title := "untitled"
	if p.Title != nil {
		title = *p.Title
	}

	for _, target := range p.Targets {
		expr, ok := queryExpr(target)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("panel %q: non-Prometheus target %T", title, target))
			continue
		}
		validateExpr(title, expr, knownMetrics, result)
	}
}

func queryExpr(target any) (string, bool) {
	switch q := target.(type) {
	case promsdk.Dataquery:
		return q.Expr, true
	case *promsdk.Dataquery:
		return q.Expr, true
	default:
		return "", false
	}
}

func validateExpr(title, expr string, knownMetrics map[string]bool, result *Result) {
	ast, err := parser.ParseExpr(expr)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("panel %q: invalid PromQL %q: %v", title, expr, err))
		return
	}

	parser.Inspect(ast, func(node parser.Node, _ []parser.Node) error {
		vs, ok := node.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !metricKnown(vs.Name, knownMetrics) {
			result.Errors = append(result.Errors,
				fmt.Sprintf("panel %q: unknown metric %q", title, vs.Name))
		}
		return nil
	})
}

// metricKnown checks the name directly, then with the histogram series
// suffixes stripped.
func metricKnown(name string, knownMetrics map[string]bool) bool {
	if knownMetrics[name] {
		return true
	}
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if base, ok := strings.CutSuffix(name, suffix); ok && knownMetrics[base] {
			return true
		}
	}
	return false
}
