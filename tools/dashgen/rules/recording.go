package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "tcgpt-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "tcgpt-recording",
					Rules: []Rule{
						{
							Record: "tcgpt:http_requests:rate5m",
							Expr:   `sum(rate(tcgpt_http_requests_total[5m]))`,
						},
						{
							Record: "tcgpt:http_errors:rate5m",
							Expr:   `sum(rate(tcgpt_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "tcgpt:ingestion_listings:rate5m",
							Expr:   `rate(tcgpt_ingestion_listings_total[5m])`,
						},
						{
							Record: "tcgpt:ingestion_errors:rate5m",
							Expr:   `rate(tcgpt_ingestion_errors_total[5m])`,
						},
						{
							Record: "tcgpt:parse_skipped:rate5m",
							Expr:   `rate(tcgpt_parse_skipped_total[5m])`,
						},
						{
							Record: "tcgpt:ebay_api_calls:rate5m",
							Expr:   `rate(tcgpt_ebay_api_calls_total[5m])`,
						},
					},
				},
			},
		},
	}
}
