package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// tcg-price-tracker operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "tcgpt-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "tcgpt-alerts",
					Rules: []Rule{
						{
							Alert: "TcgptDown",
							Expr:  `absent(up{job="tcg-price-tracker"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "TCG Price Tracker is down",
								"description": "The tcg-price-tracker job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "TcgptReadinessDown",
							Expr:  `tcgpt_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "TCG Price Tracker readiness check is failing",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes.",
							},
						},
						{
							Alert: "TcgptHighErrorRate",
							Expr:  `tcgpt:http_errors:rate5m / tcgpt:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on TCG Price Tracker",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "TcgptIngestionErrors",
							Expr:  `tcgpt:ingestion_errors:rate5m > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Ingestion errors detected",
								"description": "The ingestion pipeline has been producing errors for more than 5 minutes.",
							},
						},
						{
							Alert: "TcgptParseSkippedElevated",
							Expr:  `tcgpt:parse_skipped:rate5m > 0.1`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Parser is skipping an elevated number of listings",
								"description": "Malformed raw listings are being skipped at more than 0.1/s for the last 5 minutes.",
							},
						},
						{
							Alert: "TcgptEbayQuotaHigh",
							Expr:  `tcgpt_ebay_daily_usage > 4000`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "eBay API daily usage is above 80% of the quota",
								"description": "Daily eBay API usage has exceeded 4000 calls (limit is 5000).",
							},
						},
						{
							Alert: "TcgptEbayLimitReached",
							Expr:  `increase(tcgpt_ebay_daily_limit_hits_total[5m]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "eBay API daily limit has been reached",
								"description": "The eBay Finding API daily quota has been exhausted. Ingestion is paused until the window rolls over.",
							},
						},
					},
				},
			},
		},
	}
}
